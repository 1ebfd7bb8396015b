package control_test

import (
	"context"
	"sync"

	"github.com/foliolabs/folio/internal/application/port"
	"github.com/foliolabs/folio/internal/domain/entity"
)

// fakeEngine returns a canned document or error.
type fakeEngine struct {
	mu       sync.Mutex
	doc      port.Document
	err      error
	loads    []port.Source
	lastOpts port.LoadOptions
}

func (e *fakeEngine) Load(_ context.Context, source port.Source, opts port.LoadOptions) (port.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loads = append(e.loads, source)
	e.lastOpts = opts
	if e.err != nil {
		return nil, e.err
	}
	return e.doc, nil
}

// fakeDocument serves canned values for every getter.
type fakeDocument struct {
	mu sync.Mutex

	numPages    int
	fingerprint string

	metadata     *entity.DocumentMetadata
	metadataErr  error
	metadataGate chan struct{} // when set, Metadata blocks until closed
	outline      []entity.OutlineItem
	attachments  map[string]entity.Attachment
	layers       *entity.LayerConfig
	pageLabels   []string
	pageLayout   entity.PageLayout
	pageMode     entity.PageMode
	openAction   *entity.OpenAction
	markInfo     *entity.MarkInfo
	scripts      []string

	contentLength int64
	downloadGate  chan struct{} // when set, DownloadInfo blocks until closed
	data          []byte
	dataErr       error
	saveData      []byte
	saveErr       error
	formDirty     bool

	destroyed int
}

func (d *fakeDocument) NumPages() int       { return d.numPages }
func (d *fakeDocument) Fingerprint() string { return d.fingerprint }

func (d *fakeDocument) Metadata(context.Context) (*entity.DocumentMetadata, error) {
	if d.metadataGate != nil {
		<-d.metadataGate
	}
	return d.metadata, d.metadataErr
}
func (d *fakeDocument) Outline(context.Context) ([]entity.OutlineItem, error) {
	return d.outline, nil
}
func (d *fakeDocument) Attachments(context.Context) (map[string]entity.Attachment, error) {
	return d.attachments, nil
}
func (d *fakeDocument) Layers(context.Context) (*entity.LayerConfig, error) {
	return d.layers, nil
}
func (d *fakeDocument) PageLabels(context.Context) ([]string, error) {
	return d.pageLabels, nil
}
func (d *fakeDocument) PageLayout(context.Context) (entity.PageLayout, error) {
	return d.pageLayout, nil
}
func (d *fakeDocument) PageMode(context.Context) (entity.PageMode, error) {
	return d.pageMode, nil
}
func (d *fakeDocument) OpenAction(context.Context) (*entity.OpenAction, error) {
	return d.openAction, nil
}
func (d *fakeDocument) MarkInfo(context.Context) (*entity.MarkInfo, error) {
	return d.markInfo, nil
}
func (d *fakeDocument) Scripts(context.Context) ([]string, error) {
	return d.scripts, nil
}
func (d *fakeDocument) DownloadInfo(ctx context.Context) (int64, error) {
	if d.downloadGate != nil {
		select {
		case <-d.downloadGate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return d.contentLength, nil
}
func (d *fakeDocument) Save(context.Context) ([]byte, error) {
	return d.saveData, d.saveErr
}
func (d *fakeDocument) Data(context.Context) ([]byte, error) {
	return d.data, d.dataErr
}
func (d *fakeDocument) FormDirty() bool { return d.formDirty }

func (d *fakeDocument) Destroy(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyed++
	return nil
}

func (d *fakeDocument) destroyCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

// fakeViewer implements port.PageViewer and records everything applied to
// it. The readiness channels start open or closed per the test's needs.
type fakeViewer struct {
	mu sync.Mutex

	firstPage chan struct{}
	onePage   chan struct{}
	pages     chan struct{}

	doc          port.Document
	equalSizes   bool
	presentation bool

	pageNumber int
	pageLabel  string
	labels     []string

	viewports    []port.Viewport
	destinations []string
	scaleValue   string
	scaleSets    []string
	reapplied    int
	increased    int
	decreased    int
	rotation     int
	scrollMode   entity.ScrollMode
	spreadMode   entity.SpreadMode
	focused      int
	updated      int
}

func newFakeViewer() *fakeViewer {
	return &fakeViewer{
		firstPage:  make(chan struct{}),
		onePage:    make(chan struct{}),
		pages:      make(chan struct{}),
		pageNumber: 1,
		equalSizes: true,
		scrollMode: entity.ScrollVertical,
	}
}

// readyAll marks every readiness stage reached before the open begins.
func (v *fakeViewer) readyAll() {
	close(v.firstPage)
	close(v.onePage)
	close(v.pages)
}

func (v *fakeViewer) SetDocument(doc port.Document) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doc = doc
}

func (v *fakeViewer) FirstPageReady() <-chan struct{}  { return v.firstPage }
func (v *fakeViewer) OnePageRendered() <-chan struct{} { return v.onePage }
func (v *fakeViewer) PagesReady() <-chan struct{}      { return v.pages }

func (v *fakeViewer) HasEqualPageSizes() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.equalSizes
}

func (v *fakeViewer) CurrentPageNumber() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageNumber
}

func (v *fakeViewer) CurrentPageLabel() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageLabel
}

func (v *fakeViewer) SetPageLabels(labels []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.labels = labels
}

func (v *fakeViewer) ApplyViewport(vp port.Viewport) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewports = append(v.viewports, vp)
	if vp.Page > 0 {
		v.pageNumber = vp.Page
	}
	if vp.Zoom != "" {
		v.scaleValue = vp.Zoom
	}
}

func (v *fakeViewer) ApplyDestination(dest string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.destinations = append(v.destinations, dest)
}

func (v *fakeViewer) CurrentScaleValue() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scaleValue
}

func (v *fakeViewer) SetScaleValue(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scaleValue = value
	v.scaleSets = append(v.scaleSets, value)
}

func (v *fakeViewer) ReapplyScale() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reapplied++
}

func (v *fakeViewer) IncreaseScale(steps int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.increased += steps
}

func (v *fakeViewer) DecreaseScale(steps int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.decreased += steps
}

func (v *fakeViewer) CurrentViewport() port.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return port.Viewport{Page: v.pageNumber, Zoom: v.scaleValue}
}

func (v *fakeViewer) SetRotation(angle int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rotation = angle
}

func (v *fakeViewer) CurrentRotation() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rotation
}

func (v *fakeViewer) SetScrollMode(mode entity.ScrollMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollMode = mode
}

func (v *fakeViewer) CurrentScrollMode() entity.ScrollMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollMode
}

func (v *fakeViewer) SetSpreadMode(mode entity.SpreadMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.spreadMode = mode
}

func (v *fakeViewer) CurrentSpreadMode() entity.SpreadMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.spreadMode
}

func (v *fakeViewer) IsInPresentationMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.presentation
}

func (v *fakeViewer) Focus() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused++
}

func (v *fakeViewer) Update() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updated++
}

type fakeThumbnails struct {
	mu     sync.Mutex
	doc    port.Document
	labels []string
	resets int
}

func (t *fakeThumbnails) SetDocument(doc port.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.doc = doc
}

func (t *fakeThumbnails) SetPageLabels(labels []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.labels = labels
}

func (t *fakeThumbnails) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resets++
}

type fakeOutline struct {
	mu       sync.Mutex
	rendered [][]entity.OutlineItem
	resets   int
}

func (o *fakeOutline) Render(outline []entity.OutlineItem) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rendered = append(o.rendered, outline)
}

func (o *fakeOutline) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resets++
}

type fakeAttachments struct {
	mu       sync.Mutex
	rendered []map[string]entity.Attachment
	resets   int
}

func (a *fakeAttachments) Render(attachments map[string]entity.Attachment) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rendered = append(a.rendered, attachments)
}

func (a *fakeAttachments) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resets++
}

type fakeLayers struct {
	mu       sync.Mutex
	rendered []*entity.LayerConfig
	resets   int
}

func (l *fakeLayers) Render(cfg *entity.LayerConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rendered = append(l.rendered, cfg)
}

func (l *fakeLayers) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resets++
}

type fakeSidebar struct {
	mu      sync.Mutex
	initial entity.SidebarView
	visible entity.SidebarView
	resets  int
}

func (s *fakeSidebar) SetInitialView(view entity.SidebarView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initial = view
	if view > entity.SidebarNone {
		s.visible = view
	}
}

func (s *fakeSidebar) VisibleView() entity.SidebarView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *fakeSidebar) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
}

type fakeToolbar struct {
	mu         sync.Mutex
	count      int
	hasLabels  bool
	pageNumber int
	pageLabel  string
	resets     int
}

func (t *fakeToolbar) SetPagesCount(count int, hasPageLabels bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count = count
	t.hasLabels = hasPageLabels
}

func (t *fakeToolbar) SetPageNumber(number int, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageNumber = number
	t.pageLabel = label
}

func (t *fakeToolbar) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resets++
}

type fakeFind struct {
	mu     sync.Mutex
	doc    port.Document
	resets int
}

func (f *fakeFind) SetDocument(doc port.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
}

func (f *fakeFind) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

type fakeLinks struct {
	mu       sync.Mutex
	doc      port.Document
	baseURL  string
	external bool
}

func (l *fakeLinks) SetDocument(doc port.Document, baseURL string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc = doc
	l.baseURL = baseURL
}

func (l *fakeLinks) SetExternalLinksEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.external = enabled
}

type fakeHistory struct {
	mu             sync.Mutex
	bookmark       string
	rotation       int
	initialized    []string
	resetRequested bool
	pushed         []string
	resets         int
}

func (h *fakeHistory) Initialize(fingerprint string, resetHistory bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.initialized = append(h.initialized, fingerprint)
	h.resetRequested = resetHistory
}

func (h *fakeHistory) InitialBookmark() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bookmark
}

func (h *fakeHistory) InitialRotation() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rotation
}

func (h *fakeHistory) Push(dest string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushed = append(h.pushed, dest)
}

func (h *fakeHistory) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resets++
}

type fakeScripting struct {
	mu         sync.Mutex
	doc        port.Document
	willSaves  int
	didSaves   int
	willPrints int
	destroys   int
}

func (s *fakeScripting) SetDocument(doc port.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

func (s *fakeScripting) DispatchWillSave(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.willSaves++
	return nil
}

func (s *fakeScripting) DispatchDidSave(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.didSaves++
	return nil
}

func (s *fakeScripting) DispatchWillPrint(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.willPrints++
	return nil
}

func (s *fakeScripting) Destroy(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroys++
	return nil
}

type fakeProperties struct {
	mu  sync.Mutex
	doc port.Document
}

func (p *fakeProperties) SetDocument(doc port.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = doc
}

type downloadCall struct {
	data     []byte
	url      string
	filename string
	byURL    bool
}

type fakeDownloads struct {
	mu    sync.Mutex
	calls []downloadCall
}

func (d *fakeDownloads) Download(_ context.Context, data []byte, url, filename string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, downloadCall{data: data, url: url, filename: filename})
	return nil
}

func (d *fakeDownloads) DownloadURL(_ context.Context, url, filename string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, downloadCall{url: url, filename: filename, byURL: true})
	return nil
}

func (d *fakeDownloads) all() []downloadCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]downloadCall(nil), d.calls...)
}

type fakePrintService struct {
	mu       sync.Mutex
	layouts  int
	destroys int
}

func (s *fakePrintService) Layout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts++
	return nil
}

func (s *fakePrintService) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroys++
	return nil
}

type fakePrintFactory struct {
	mu          sync.Mutex
	supported   bool
	service     *fakePrintService
	resolutions []int
}

func (f *fakePrintFactory) Supported() bool { return f.supported }

func (f *fakePrintFactory) Create(_ port.Document, resolution int) (port.PrintService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolutions = append(f.resolutions, resolution)
	return f.service, nil
}

func (f *fakePrintFactory) layoutCount() int {
	f.service.mu.Lock()
	defer f.service.mu.Unlock()
	return f.service.layouts
}

// fakeTelemetry records reported events.
type fakeTelemetry struct {
	mu     sync.Mutex
	events []port.TelemetryEvent
}

func (t *fakeTelemetry) Report(event port.TelemetryEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *fakeTelemetry) byType(eventType string) []port.TelemetryEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []port.TelemetryEvent
	for _, ev := range t.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// keyLocalizer echoes the message key, making assertions fully explicit.
type keyLocalizer struct{}

func (keyLocalizer) Get(key string) string { return key }

// memStateRepo is an in-memory repository.ViewStateRepository.
type memStateRepo struct {
	mu     sync.Mutex
	states map[string]*entity.ViewState
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{states: make(map[string]*entity.ViewState)}
}

func (r *memStateRepo) Get(_ context.Context, fingerprint string) (*entity.ViewState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[fingerprint]
	if !ok {
		return nil, nil
	}
	c := *state
	return &c, nil
}

func (r *memStateRepo) Set(_ context.Context, state *entity.ViewState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *state
	r.states[state.Fingerprint] = &c
	return nil
}

func (r *memStateRepo) Delete(_ context.Context, fingerprint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, fingerprint)
	return nil
}

func (r *memStateRepo) GetAll(context.Context) ([]*entity.ViewState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ViewState, 0, len(r.states))
	for _, s := range r.states {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *memStateRepo) DeleteAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.states))
	r.states = make(map[string]*entity.ViewState)
	return n, nil
}
