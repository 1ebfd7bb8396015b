// Package control contains the orchestration core of the viewer shell:
// the session lifecycle controller, the overlay manager, and the
// wheel-zoom controller. Everything here sequences and guards access to
// one document session; rendering and widgets live behind ports.
package control

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/foliolabs/folio/internal/app/events"
	"github.com/foliolabs/folio/internal/application/port"
	"github.com/foliolabs/folio/internal/application/usecase"
	"github.com/foliolabs/folio/internal/config"
	"github.com/foliolabs/folio/internal/domain/docurl"
	"github.com/foliolabs/folio/internal/domain/entity"
	"github.com/foliolabs/folio/internal/logging"
)

// State is the lifecycle state of the session controller.
type State int

const (
	StateEmpty State = iota
	StateOpening
	StateLoaded
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateLoaded:
		return "loaded"
	case StateClosing:
		return "closing"
	}
	return "empty"
}

// autoPrintPattern matches embedded script bodies that request printing;
// documents carrying one are auto-printed on load.
var autoPrintPattern = regexp.MustCompile(`\bprint\s*\(`)

// Telemetry label tables; labels must stay machine-friendly.
var knownVersions = []string{
	"1.0", "1.1", "1.2", "1.3", "1.4", "1.5", "1.6", "1.7", "1.8", "1.9",
	"2.0", "2.1", "2.2", "2.3",
}

var knownGenerators = []string{
	"acrobat distiller", "acrobat pdfwriter", "adobe livecycle",
	"adobe pdf library", "adobe photoshop", "ghostscript", "tcpdf", "cairo",
	"dvipdfm", "dvips", "pdftex", "pdfkit", "itext", "prince", "quarkxpress",
	"mac os x", "microsoft", "openoffice", "oracle", "luradocument",
	"pdf-xchange", "antenna house", "aspose.cells", "fpdf",
}

// SessionDeps are the injected collaborators of a SessionController.
// Viewer, Toolbar, Sidebar, Thumbnails, Outline, Attachments, Layers,
// Links, Find, Properties, Downloads and Localizer are required; History,
// Scripting, PrintFactory and Telemetry are optional.
type SessionDeps struct {
	Engine         port.Engine
	EngineDefaults port.LoadOptions

	ViewStates *usecase.RememberViewUseCase
	Bus        *events.Bus
	Localizer  port.Localizer
	Telemetry  port.TelemetrySink
	Clock      clockwork.Clock

	Viewer       port.PageViewer
	Thumbnails   port.ThumbnailViewer
	Outline      port.OutlineViewer
	Attachments  port.AttachmentViewer
	Layers       port.LayerViewer
	Sidebar      port.Sidebar
	Toolbar      port.Toolbar
	Find         port.FindController
	Links        port.LinkService
	History      port.History
	Scripting    port.ScriptingManager
	Properties   port.DocumentProperties
	Downloads    port.DownloadManager
	PrintFactory port.PrintServiceFactory
}

// SessionController sequences the open → load → steady-state → close
// transitions of exactly one document session and fans lifecycle events
// out to the dependent viewers. Open, Close and the load continuations of
// a single session are sequenced; within one load, independent fetches run
// concurrently and each re-validates the session through a Guard before
// publishing anything.
type SessionController struct {
	deps SessionDeps
	cfg  config.ViewerConfig

	mu            sync.Mutex
	state         State
	current       *entity.Session
	doc           port.Document
	sessionCancel context.CancelFunc
	idleCancels   []context.CancelFunc

	initialBookmark  string
	initialRotation  int
	isInitialViewSet bool
	saveInProgress   bool
	progressPercent  int

	fullyLoaded chan struct{}
	unblockOnce *sync.Once

	background sync.WaitGroup
}

// NewSessionController creates a controller in the Empty state.
func NewSessionController(deps SessionDeps, cfg config.ViewerConfig) *SessionController {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.EngineDefaults == nil {
		deps.EngineDefaults = port.LoadOptions{}
	}
	return &SessionController{
		deps:            deps,
		cfg:             cfg,
		initialRotation: -1,
	}
}

// State returns the current lifecycle state.
func (c *SessionController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the current session, or nil when the controller is
// empty.
func (c *SessionController) Current() *entity.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// guard captures an identity token for the given session.
func (c *SessionController) guard(id entity.SessionID) Guard {
	return Guard{c: c, id: id}
}

// DocumentFullyLoaded returns a channel closed once the current session's
// full page set has resolved, a load error occurred, or the session was
// closed. Returns nil when no session is active.
func (c *SessionController) DocumentFullyLoaded() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fullyLoaded
}

func (c *SessionController) unblockFullyLoaded() {
	c.mu.Lock()
	once, ch := c.unblockOnce, c.fullyLoaded
	c.mu.Unlock()
	if once != nil {
		once.Do(func() { close(ch) })
	}
}

// Open opens the document identified by source. Any current session is
// destroyed first, sequentially: its cleanup, including a best-effort save
// of modified form data, completes before the new session is constructed.
// Open returns once the new session is loaded and its initial view has
// been applied, or with the classified error when the load fails.
func (c *SessionController) Open(ctx context.Context, source port.Source, args port.LoadOptions) error {
	log := logging.FromContext(ctx)

	if err := c.Close(ctx); err != nil {
		return fmt.Errorf("close previous session: %w", err)
	}

	sess := entity.NewSession()
	switch {
	case source.URL != "" && source.OriginalURL != "":
		c.setTitleUsingURL(sess, source.OriginalURL, source.URL)
	case source.URL != "":
		c.setTitleUsingURL(sess, source.URL, source.URL)
	case len(source.Data) > 0:
		sess.Fingerprint = entity.Fingerprint(source.Data)
	}

	opts := c.deps.EngineDefaults.Clone()
	for k, v := range args {
		opts[k] = v
	}

	c.mu.Lock()
	c.state = StateOpening
	c.current = sess
	c.fullyLoaded = make(chan struct{})
	c.unblockOnce = &sync.Once{}
	// The session context outlives the Open call; it is cancelled when the
	// session is closed or superseded.
	sessCtx, cancel := context.WithCancel(logging.WithContext(context.Background(), *log))
	c.sessionCancel = cancel
	c.mu.Unlock()
	sessCtx = logging.WithSessionID(sessCtx, string(sess.ID))

	log.Info().Str("session_id", string(sess.ID)).Str("url", sess.URL).Msg("opening document")
	if sess.Title != "" {
		events.Publish(c.deps.Bus, events.TitleChanged{SessionID: sess.ID, Title: sess.Title})
	}

	doc, err := c.deps.Engine.Load(sessCtx, source, opts)
	if err != nil {
		g := c.guard(sess.ID)
		if !g.Valid() {
			// Superseded while loading; stale failures are dropped.
			return nil
		}
		kind := entity.ClassifyLoadError(err)
		c.documentError(kind, c.deps.Localizer.Get(kind.MessageKey()), err)
		c.unblockFullyLoaded()

		c.mu.Lock()
		c.sessionCancel = nil
		c.clearSessionLocked()
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("load document: %w", err)
	}

	if !c.guard(sess.ID).Run(func() {
		c.doc = doc
		c.state = StateLoaded
		if sess.Fingerprint == "" {
			sess.Fingerprint = doc.Fingerprint()
		}
	}) {
		_ = doc.Destroy(context.WithoutCancel(ctx))
		return nil
	}

	return c.load(sessCtx, sess, doc)
}

// Close closes the open document, if any. Safe to call on an empty
// controller. Modified form data is saved best-effort, pending idle work
// is cancelled, every dependent viewer is reset, and all session-scoped
// fields return to their initial values before Close returns.
func (c *SessionController) Close(ctx context.Context) error {
	log := logging.FromContext(ctx)

	c.unblockFullyLoaded()

	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosing
	sess, doc := c.current, c.doc
	c.mu.Unlock()

	if doc != nil && doc.FormDirty() {
		// Best effort; a failed save must never block close.
		if err := c.Save(ctx); err != nil {
			log.Warn().Err(err).Msg("saving form data on close failed")
		}
	}

	c.mu.Lock()
	c.cancelIdleWorkLocked()
	if c.sessionCancel != nil {
		c.sessionCancel()
		c.sessionCancel = nil
	}

	c.deps.Viewer.SetDocument(nil)
	c.deps.Thumbnails.SetDocument(nil)
	c.deps.Links.SetDocument(nil, "")
	c.deps.Links.SetExternalLinksEnabled(true)
	c.deps.Properties.SetDocument(nil)
	if c.deps.Scripting != nil {
		c.deps.Scripting.SetDocument(nil)
	}

	c.deps.Sidebar.Reset()
	c.deps.Outline.Reset()
	c.deps.Attachments.Reset()
	c.deps.Layers.Reset()
	c.deps.Find.Reset()
	c.deps.Toolbar.Reset()
	if c.deps.History != nil {
		c.deps.History.Reset()
	}

	c.clearSessionLocked()
	c.mu.Unlock()

	if doc != nil {
		if err := doc.Destroy(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("destroy document: %w", err)
		}
	}
	if c.deps.Scripting != nil {
		if err := c.deps.Scripting.Destroy(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("scripting teardown failed")
		}
	}

	log.Info().Str("session_id", string(sess.ID)).Msg("session closed")
	return nil
}

// Shutdown closes the current session and waits for all background
// continuations to drain.
func (c *SessionController) Shutdown(ctx context.Context) error {
	err := c.Close(ctx)
	c.background.Wait()
	return err
}

// clearSessionLocked resets every session-scoped field. Caller holds mu.
func (c *SessionController) clearSessionLocked() {
	c.current = nil
	c.doc = nil
	c.state = StateEmpty
	c.initialBookmark = ""
	c.initialRotation = -1
	c.isInitialViewSet = false
	c.saveInProgress = false
	c.progressPercent = 0
}

func (c *SessionController) cancelIdleWorkLocked() {
	for _, cancel := range c.idleCancels {
		cancel()
	}
	c.idleCancels = nil
}

func (c *SessionController) spawn(fn func()) {
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		fn()
	}()
}

// setTitleUsingURL derives the session's display title from the URL.
func (c *SessionController) setTitleUsingURL(sess *entity.Session, url, downloadURL string) {
	sess.URL = url
	sess.BaseURL = docurl.StripFragment(url)
	if downloadURL != "" {
		if downloadURL == url {
			sess.DownloadURL = sess.BaseURL
		} else {
			sess.DownloadURL = docurl.StripFragment(downloadURL)
		}
	}
	sess.Title = docurl.DisplayName(url)
}

// setTitleLocked updates the title and announces it. Caller holds mu.
func (c *SessionController) setTitleLocked(sess *entity.Session, title string) {
	sess.Title = title
	events.Publish(c.deps.Bus, events.TitleChanged{SessionID: sess.ID, Title: title})
}

// load is the continuation run once the engine has produced a document
// handle. It publishes the document to the dependent viewers immediately
// (they must tolerate partially populated sessions), applies the initial
// view as soon as the first page is available, and leaves the remaining
// resolution work to independently guarded background continuations.
func (c *SessionController) load(ctx context.Context, sess *entity.Session, doc port.Document) error {
	log := logging.FromContext(ctx)
	g := c.guard(sess.ID)

	numPages := doc.NumPages()
	c.deps.Toolbar.SetPagesCount(numPages, false)

	c.deps.Links.SetDocument(doc, sess.BaseURL)
	c.deps.Properties.SetDocument(doc)
	c.deps.Viewer.SetDocument(doc)
	c.deps.Thumbnails.SetDocument(doc)
	c.deps.Find.SetDocument(doc)
	if c.deps.Scripting != nil {
		c.deps.Scripting.SetDocument(doc)
	}

	// Fetch everything the initial view depends on concurrently; each
	// failure individually degrades to "no preference".
	var (
		stored     *entity.ViewState
		pageLayout entity.PageLayout
		pageMode   entity.PageMode
		openAction *entity.OpenAction
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		stored = c.deps.ViewStates.Restore(egCtx, sess.Fingerprint)
		return nil
	})
	eg.Go(func() error {
		if v, err := doc.PageLayout(egCtx); err == nil {
			pageLayout = v
		}
		return nil
	})
	eg.Go(func() error {
		if v, err := doc.PageMode(egCtx); err == nil {
			pageMode = v
		}
		return nil
	})
	eg.Go(func() error {
		if v, err := doc.OpenAction(egCtx); err == nil {
			openAction = v
		}
		return nil
	})
	_ = eg.Wait()

	// Transfer completion is tracked independently of page resolution.
	c.spawn(func() { c.watchDownload(ctx, sess, doc) })

	select {
	case <-c.deps.Viewer.FirstPageReady():
	case <-ctx.Done():
		return ctx.Err()
	}

	c.initializeHistory(sess, openAction)
	viewport, rotation, sidebar, scroll, spread := c.computeInitialView(stored, pageLayout, pageMode)

	// The bookmark must be read under the lock, before setInitialViewLocked
	// consumes it.
	var hasViewTarget bool
	if !g.Run(func() {
		hasViewTarget = viewport != nil || c.initialBookmark != ""
		c.setInitialViewLocked(viewport, rotation, sidebar, scroll, spread)
	}) {
		return nil
	}
	events.Publish(c.deps.Bus, events.DocumentInitialized{SessionID: sess.ID})
	c.deps.Viewer.Focus()
	// Rendering must always have started by now; never leave the document
	// blank on load.
	c.deps.Viewer.Update()

	c.spawn(func() { c.reapplyViewWhenPagesResolve(ctx, g, viewport, hasViewTarget) })
	c.spawn(func() { c.watchPagesLoaded(ctx, sess, doc, numPages, openAction) })
	c.spawn(func() { c.resolveAfterFirstRender(ctx, sess, doc) })
	c.spawn(func() { c.resolveMetadata(ctx, sess, doc) })
	c.spawn(func() { c.resolvePageLabels(ctx, sess, doc) })

	log.Debug().Int("pages", numPages).Str("fingerprint", sess.Fingerprint).Msg("document loaded")
	return nil
}

// initializeHistory binds the navigation history to the new document and
// captures any bookmark it wants restored. The browser history always
// takes precedence over the document's own open action.
func (c *SessionController) initializeHistory(sess *entity.Session, openAction *entity.OpenAction) {
	if c.deps.History == nil || c.cfg.DisableHistory {
		return
	}
	resetHistory := c.cfg.ViewOnLoad == config.ViewOnLoadInitial
	c.deps.History.Initialize(sess.Fingerprint, resetHistory)

	c.mu.Lock()
	defer c.mu.Unlock()
	if bookmark := c.deps.History.InitialBookmark(); bookmark != "" {
		c.initialBookmark = bookmark
		c.initialRotation = c.deps.History.InitialRotation()
	}
	if openAction != nil && openAction.Dest != "" && c.initialBookmark == "" {
		c.initialBookmark = openAction.Dest
		c.deps.History.Push(openAction.Dest)
	}
}

// computeInitialView resolves the initial viewport and view modes with the
// precedence history/bookmark > explicit options > stored state >
// document-declared > defaults. The document-declared page layout is only
// consulted while both scroll and spread mode are still unknown, and only
// its spread mode is taken; letting documents control the scroll mode
// interacts badly with wheel- and key-based page switching.
func (c *SessionController) computeInitialView(stored *entity.ViewState, pageLayout entity.PageLayout, pageMode entity.PageMode) (viewport *port.Viewport, rotation int, sidebar entity.SidebarView, scroll entity.ScrollMode, spread entity.SpreadMode) {
	rotation = -1
	sidebar = entity.SidebarView(c.cfg.SidebarViewOnLoad)
	scroll = entity.ScrollMode(c.cfg.ScrollModeOnLoad)
	spread = entity.SpreadMode(c.cfg.SpreadModeOnLoad)

	zoom := c.cfg.DefaultZoomValue
	if zoom != "" {
		viewport = &port.Viewport{Zoom: zoom}
	}

	if stored != nil && stored.Page > 0 && c.cfg.ViewOnLoad != config.ViewOnLoadInitial {
		storedZoom := zoom
		if storedZoom == "" {
			storedZoom = stored.Zoom
		}
		viewport = &port.Viewport{
			Page:       stored.Page,
			Zoom:       storedZoom,
			ScrollLeft: stored.ScrollLeft,
			ScrollTop:  stored.ScrollTop,
		}
		rotation = stored.Rotation
		// Explicit options always beat the stored state.
		if sidebar == entity.SidebarUnknown {
			sidebar = stored.SidebarView
		}
		if scroll == entity.ScrollUnknown {
			scroll = stored.ScrollMode
		}
		if spread == entity.SpreadUnknown {
			spread = stored.SpreadMode
		}
	}

	if pageMode != "" && sidebar == entity.SidebarUnknown {
		sidebar = pageMode.SidebarView()
	}
	if pageLayout != "" && scroll == entity.ScrollUnknown && spread == entity.SpreadUnknown {
		_, spread = pageLayout.ViewerModes()
	}
	return viewport, rotation, sidebar, scroll, spread
}

// setInitialViewLocked applies the computed initial view. Caller holds mu.
func (c *SessionController) setInitialViewLocked(viewport *port.Viewport, rotation int, sidebar entity.SidebarView, scroll entity.ScrollMode, spread entity.SpreadMode) {
	c.isInitialViewSet = true
	c.deps.Sidebar.SetInitialView(sidebar)

	if entity.IsValidScrollMode(scroll) {
		c.deps.Viewer.SetScrollMode(scroll)
	}
	if entity.IsValidSpreadMode(spread) {
		c.deps.Viewer.SetSpreadMode(spread)
	}

	if c.initialBookmark != "" {
		if entity.IsValidRotation(c.initialRotation) {
			c.deps.Viewer.SetRotation(c.initialRotation)
		}
		c.initialRotation = -1
		c.deps.Viewer.ApplyDestination(c.initialBookmark)
		c.initialBookmark = ""
	} else if viewport != nil {
		if entity.IsValidRotation(rotation) {
			c.deps.Viewer.SetRotation(rotation)
		}
		c.deps.Viewer.ApplyViewport(*viewport)
	}

	// Keep the displayed page number correct even when the active page did
	// not change during load.
	c.deps.Toolbar.SetPageNumber(c.deps.Viewer.CurrentPageNumber(), c.deps.Viewer.CurrentPageLabel())

	if c.deps.Viewer.CurrentScaleValue() == "" && c.cfg.DefaultZoomValue != "" {
		// Scale was not initialized: invalid bookmark or scale missing.
		c.deps.Viewer.SetScaleValue(c.cfg.DefaultZoomValue)
	}
}

// reapplyViewWhenPagesResolve corrects layout drift on documents with
// mixed page sizes: once every page has resolved, or after a bounded wait,
// the initial view is applied once more.
func (c *SessionController) reapplyViewWhenPagesResolve(ctx context.Context, g Guard, viewport *port.Viewport, hasViewTarget bool) {
	select {
	case <-c.deps.Viewer.PagesReady():
	case <-c.deps.Clock.After(c.cfg.ForcePagesLoadedTimeout):
	case <-ctx.Done():
		return
	}
	if !hasViewTarget {
		return
	}
	if c.deps.Viewer.HasEqualPageSizes() {
		return
	}
	g.Run(func() {
		c.deps.Viewer.ReapplyScale()
		if viewport != nil {
			c.deps.Viewer.ApplyViewport(*viewport)
		}
	})
}

// watchDownload tracks transfer completion and publishes DocumentLoaded
// once both the transfer and the first page are in.
func (c *SessionController) watchDownload(ctx context.Context, sess *entity.Session, doc port.Document) {
	length, err := doc.DownloadInfo(ctx)
	if err != nil {
		return
	}
	g := c.guard(sess.ID)
	g.Run(func() {
		sess.ContentLength = length
		sess.DownloadComplete = true
		c.progressPercent = 100
	})

	select {
	case <-c.deps.Viewer.FirstPageReady():
	case <-ctx.Done():
		return
	}
	g.Run(func() {
		events.Publish(c.deps.Bus, events.DocumentLoaded{SessionID: sess.ID})
	})
}

// watchPagesLoaded unblocks the external fully-loaded signal once the
// whole page set has resolved and evaluates auto-print triggers.
func (c *SessionController) watchPagesLoaded(ctx context.Context, sess *entity.Session, doc port.Document, numPages int, openAction *entity.OpenAction) {
	select {
	case <-c.deps.Viewer.PagesReady():
	case <-ctx.Done():
		return
	}

	g := c.guard(sess.ID)
	if !g.Run(func() {
		events.Publish(c.deps.Bus, events.PagesLoaded{SessionID: sess.ID, NumPages: numPages})
	}) {
		return
	}
	c.unblockFullyLoaded()

	c.evaluateAutoPrint(ctx, sess, doc, openAction)
}

// evaluateAutoPrint triggers printing for an explicit "Print" open action,
// or when an embedded document-level script asks for it.
func (c *SessionController) evaluateAutoPrint(ctx context.Context, sess *entity.Session, doc port.Document, openAction *entity.OpenAction) {
	log := logging.FromContext(ctx)

	triggerAutoPrint := openAction != nil && openAction.Action == "Print"

	if !c.cfg.EnableScripting {
		scripts, err := doc.Scripts(ctx)
		if err == nil && len(scripts) > 0 {
			for _, js := range scripts {
				if js == "" {
					continue
				}
				c.reportTelemetry(port.TelemetryEvent{Type: "unsupportedFeature", FeatureID: "javaScript"})
				break
			}
			if !triggerAutoPrint {
				for _, js := range scripts {
					if js != "" && autoPrintPattern.MatchString(js) {
						triggerAutoPrint = true
						break
					}
				}
			}
		}
	}

	if !triggerAutoPrint {
		return
	}
	if !c.guard(sess.ID).Valid() {
		return
	}
	log.Info().Msg("auto-print requested by document")
	c.triggerPrinting(ctx, doc)
}

// triggerPrinting creates a one-shot print service for the document.
func (c *SessionController) triggerPrinting(ctx context.Context, doc port.Document) {
	log := logging.FromContext(ctx)

	if c.deps.PrintFactory == nil || !c.deps.PrintFactory.Supported() {
		c.otherError(c.deps.Localizer.Get("printing_not_supported"), nil)
		return
	}
	if c.deps.Scripting != nil {
		if err := c.deps.Scripting.DispatchWillPrint(ctx); err != nil {
			log.Warn().Err(err).Msg("will-print dispatch failed")
		}
	}
	svc, err := c.deps.PrintFactory.Create(doc, c.cfg.PrintResolution)
	if err != nil {
		c.otherError(c.deps.Localizer.Get("printing_not_supported"), err)
		return
	}
	defer func() {
		if err := svc.Destroy(); err != nil {
			log.Warn().Err(err).Msg("print service teardown failed")
		}
	}()
	if err := svc.Layout(); err != nil {
		c.otherError(c.deps.Localizer.Get("printing_not_supported"), err)
	}
}

// resolveAfterFirstRender publishes outline, attachments and layer
// configuration once the first page has rendered, and schedules the
// idle-time telemetry collection. Each publication is independently
// guarded since the user may have opened a different document meanwhile.
func (c *SessionController) resolveAfterFirstRender(ctx context.Context, sess *entity.Session, doc port.Document) {
	select {
	case <-c.deps.Viewer.OnePageRendered():
	case <-ctx.Done():
		return
	}
	g := c.guard(sess.ID)
	c.reportTelemetry(port.TelemetryEvent{Type: "pageInfo"})

	c.spawn(func() {
		if outline, err := doc.Outline(ctx); err == nil {
			g.Run(func() { c.deps.Outline.Render(outline) })
		}
	})
	c.spawn(func() {
		if attachments, err := doc.Attachments(ctx); err == nil {
			g.Run(func() { c.deps.Attachments.Render(attachments) })
		}
	})
	c.spawn(func() {
		if layers, err := doc.Layers(ctx); err == nil && layers != nil {
			g.Run(func() { c.deps.Layers.Render(layers) })
		}
	})

	c.scheduleIdleTelemetry(ctx, sess, doc)
}

// idleTelemetryDelay defers the tagged-document collection until the
// viewer has settled after first render.
const idleTelemetryDelay = time.Second

// scheduleIdleTelemetry runs the tagged-document collection once the
// viewer has been idle for a moment. Unlike engine fetches, the handle is
// tracked and actively cancelled on close since it would otherwise fire
// after teardown.
func (c *SessionController) scheduleIdleTelemetry(ctx context.Context, sess *entity.Session, doc port.Document) {
	idleCtx, cancel := context.WithCancel(ctx)

	if !c.guard(sess.ID).Run(func() {
		c.idleCancels = append(c.idleCancels, cancel)
	}) {
		cancel()
		return
	}

	c.spawn(func() {
		select {
		case <-c.deps.Clock.After(idleTelemetryDelay):
		case <-idleCtx.Done():
			return
		}
		markInfo, err := doc.MarkInfo(idleCtx)
		if err != nil {
			return
		}
		if !c.guard(sess.ID).Valid() {
			return
		}
		tagged := markInfo != nil && markInfo.Marked
		c.reportTelemetry(port.TelemetryEvent{Type: "tagged", Tagged: tagged})
	})
}

// resolveMetadata resolves document info/metadata and applies the title
// precedence rules.
func (c *SessionController) resolveMetadata(ctx context.Context, sess *entity.Session, doc port.Document) {
	log := logging.FromContext(ctx)

	md, err := doc.Metadata(ctx)
	if err != nil || md == nil {
		// Leaves the metadata-dependent surfaces empty; never fatal.
		log.Debug().Err(err).Msg("metadata resolution failed")
		return
	}

	c.guard(sess.ID).Run(func() {
		sess.Info = &md.Info
		sess.Metadata = md.Metadata
		if sess.ContentDispositionFilename == "" {
			sess.ContentDispositionFilename = md.ContentDispositionFilename
		}
		if sess.ContentLength == 0 {
			sess.ContentLength = md.ContentLength
		}

		title := entity.EffectiveTitle(md.Info.Title, md.Metadata["dc:title"])
		switch {
		case title != "":
			display := title
			if sess.ContentDispositionFilename != "" {
				display = title + " - " + sess.ContentDispositionFilename
			}
			c.setTitleLocked(sess, display)
		case sess.ContentDispositionFilename != "":
			c.setTitleLocked(sess, sess.ContentDispositionFilename)
		}

		c.reportTelemetry(port.TelemetryEvent{
			Type:      "documentInfo",
			Version:   versionLabel(md.Info.FormatVersion),
			Generator: generatorLabel(md.Info.Producer),
			FormType:  md.Info.FormType(),
		})
		events.Publish(c.deps.Bus, events.MetadataLoaded{SessionID: sess.ID, Title: sess.Title})
	})
}

// resolvePageLabels publishes page labels unless they are disabled or add
// nothing over standard numbering.
func (c *SessionController) resolvePageLabels(ctx context.Context, sess *entity.Session, doc port.Document) {
	labels, err := doc.PageLabels(ctx)
	if err != nil || labels == nil || c.cfg.DisablePageLabels {
		return
	}
	if !entity.MeaningfulPageLabels(labels) {
		return
	}
	c.guard(sess.ID).Run(func() {
		c.deps.Viewer.SetPageLabels(labels)
		c.deps.Thumbnails.SetPageLabels(labels)
		c.deps.Toolbar.SetPagesCount(len(labels), true)
		c.deps.Toolbar.SetPageNumber(c.deps.Viewer.CurrentPageNumber(), c.deps.Viewer.CurrentPageLabel())
	})
}

func (c *SessionController) reportTelemetry(event port.TelemetryEvent) {
	if c.deps.Telemetry != nil {
		c.deps.Telemetry.Report(event)
	}
}

// documentError publishes a whole-document error state.
func (c *SessionController) documentError(kind entity.LoadErrorKind, message string, cause error) {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	events.Publish(c.deps.Bus, events.DocumentError{Kind: kind, Message: message, Detail: detail})
}

// otherError publishes an error that does not invalidate the document.
func (c *SessionController) otherError(message string, cause error) {
	c.documentError(entity.LoadErrorGeneric, message, cause)
}

func versionLabel(version string) string {
	for _, known := range knownVersions {
		if version == known {
			return "v" + strings.ReplaceAll(version, ".", "_")
		}
	}
	return "other"
}

func generatorLabel(producer string) string {
	if producer == "" {
		return "other"
	}
	producer = strings.ToLower(producer)
	for _, generator := range knownGenerators {
		if strings.Contains(producer, generator) {
			return strings.NewReplacer(" ", "_", ".", "_", "-", "_").Replace(generator)
		}
	}
	return "other"
}
