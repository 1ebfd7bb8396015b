package port

import "github.com/foliolabs/folio/internal/domain/entity"

// Viewport is a concrete view position within a document.
type Viewport struct {
	Page       int
	Zoom       string // numeric factor or named value
	ScrollLeft int
	ScrollTop  int
}

// PageViewer is the main page-rendering surface. It must tolerate a
// partially populated document: SetDocument is called before metadata or
// even the page set has resolved.
type PageViewer interface {
	// SetDocument attaches a document, or detaches with nil.
	SetDocument(doc Document)

	// FirstPageReady is closed once the first page is available.
	FirstPageReady() <-chan struct{}
	// OnePageRendered is closed once the first page has been rasterized.
	OnePageRendered() <-chan struct{}
	// PagesReady is closed once every page of the document has resolved.
	PagesReady() <-chan struct{}

	HasEqualPageSizes() bool

	CurrentPageNumber() int
	CurrentPageLabel() string
	SetPageLabels(labels []string)

	ApplyViewport(v Viewport)
	// ApplyDestination navigates to a serialized explicit destination
	// (history bookmark or document open-action).
	ApplyDestination(dest string)

	CurrentScaleValue() string
	SetScaleValue(value string)
	// ReapplyScale re-runs layout at the current scale; used once all page
	// dimensions are known on mixed-size documents.
	ReapplyScale()
	IncreaseScale(steps int)
	DecreaseScale(steps int)

	// CurrentViewport reports the live view position for persistence.
	CurrentViewport() Viewport

	SetRotation(angle int)
	CurrentRotation() int
	SetScrollMode(mode entity.ScrollMode)
	CurrentScrollMode() entity.ScrollMode
	SetSpreadMode(mode entity.SpreadMode)
	CurrentSpreadMode() entity.SpreadMode

	IsInPresentationMode() bool
	Focus()
	// Update forces a render pass; called after initialization so the
	// document is never left blank.
	Update()
}

// ThumbnailViewer renders page thumbnails for the sidebar.
type ThumbnailViewer interface {
	SetDocument(doc Document)
	SetPageLabels(labels []string)
	Reset()
}

// OutlineViewer renders the document outline tree.
type OutlineViewer interface {
	Render(outline []entity.OutlineItem)
	Reset()
}

// AttachmentViewer renders the document's embedded files.
type AttachmentViewer interface {
	Render(attachments map[string]entity.Attachment)
	Reset()
}

// LayerViewer renders the optional-content layer tree.
type LayerViewer interface {
	Render(config *entity.LayerConfig)
	Reset()
}

// Sidebar is the container switching between thumbnail/outline/attachment/
// layer views.
type Sidebar interface {
	SetInitialView(view entity.SidebarView)
	VisibleView() entity.SidebarView
	Reset()
}

// Toolbar mirrors the current page position and count.
type Toolbar interface {
	SetPagesCount(count int, hasPageLabels bool)
	SetPageNumber(number int, label string)
	Reset()
}

// FindController performs in-document text search.
type FindController interface {
	SetDocument(doc Document)
	Reset()
}

// LinkService resolves internal destinations and external links.
type LinkService interface {
	SetDocument(doc Document, baseURL string)
	SetExternalLinksEnabled(enabled bool)
}

// History integrates with the surrounding navigation history.
type History interface {
	// Initialize binds the history to a document; resetHistory discards any
	// stored position for it.
	Initialize(fingerprint string, resetHistory bool)
	// InitialBookmark returns the destination the history wants restored,
	// or "" when it has none.
	InitialBookmark() string
	// InitialRotation returns the rotation the history wants restored, or
	// -1 when it has none.
	InitialRotation() int
	// Push records an explicit destination.
	Push(dest string)
	Reset()
}

// DocumentProperties is the document-properties dialog data feed.
type DocumentProperties interface {
	SetDocument(doc Document)
}
