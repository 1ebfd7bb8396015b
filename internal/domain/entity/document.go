package entity

import "strconv"

// PageLayout is the document-declared page layout preference.
type PageLayout string

const (
	LayoutSinglePage     PageLayout = "SinglePage"
	LayoutOneColumn      PageLayout = "OneColumn"
	LayoutTwoColumnLeft  PageLayout = "TwoColumnLeft"
	LayoutTwoColumnRight PageLayout = "TwoColumnRight"
	LayoutTwoPageLeft    PageLayout = "TwoPageLeft"
	LayoutTwoPageRight   PageLayout = "TwoPageRight"
)

// ViewerModes converts a document-declared page layout into concrete
// scroll and spread modes.
func (l PageLayout) ViewerModes() (ScrollMode, SpreadMode) {
	scrollMode, spreadMode := ScrollVertical, SpreadNone

	switch l {
	case LayoutSinglePage:
		scrollMode = ScrollPage
	case LayoutOneColumn:
	case LayoutTwoPageLeft:
		scrollMode = ScrollPage
		spreadMode = SpreadOdd
	case LayoutTwoColumnLeft:
		spreadMode = SpreadOdd
	case LayoutTwoPageRight:
		scrollMode = ScrollPage
		spreadMode = SpreadEven
	case LayoutTwoColumnRight:
		spreadMode = SpreadEven
	}
	return scrollMode, spreadMode
}

// PageMode is the document-declared sidebar preference.
type PageMode string

const (
	PageModeUseNone        PageMode = "UseNone"
	PageModeUseThumbs      PageMode = "UseThumbs"
	PageModeUseOutlines    PageMode = "UseOutlines"
	PageModeUseAttachments PageMode = "UseAttachments"
	PageModeUseOC          PageMode = "UseOC"
	PageModeFullScreen     PageMode = "FullScreen"
)

// SidebarView converts a document-declared page mode into a sidebar view.
func (m PageMode) SidebarView() SidebarView {
	switch m {
	case PageModeUseNone, PageModeFullScreen:
		return SidebarNone
	case PageModeUseThumbs:
		return SidebarThumbs
	case PageModeUseOutlines:
		return SidebarOutline
	case PageModeUseAttachments:
		return SidebarAttachments
	case PageModeUseOC:
		return SidebarLayers
	}
	return SidebarNone
}

// OpenAction is the document-declared action to perform on open.
type OpenAction struct {
	Action string // e.g. "Print"
	Dest   string // serialized explicit destination, if any
}

// OutlineItem is one node of the document outline tree.
type OutlineItem struct {
	Title  string
	Dest   string
	URL    string
	Bold   bool
	Italic bool
	Items  []OutlineItem
}

// Attachment is one embedded file carried by the document.
type Attachment struct {
	Filename string
	Content  []byte
}

// LayerGroup is one toggleable optional-content group.
type LayerGroup struct {
	ID      string
	Name    string
	Visible bool
}

// LayerConfig is the document's optional-content configuration.
type LayerConfig struct {
	Name   string
	Groups []LayerGroup
}

// MarkInfo carries the document's mark information dictionary.
type MarkInfo struct {
	Marked bool
}

// FormType classifies the document's interactive form technology.
type FormType string

const (
	FormTypeNone     FormType = ""
	FormTypeAcroForm FormType = "acroform"
	FormTypeXFA      FormType = "xfa"
)

// DocumentInfo is the document-info dictionary as reported by the engine.
type DocumentInfo struct {
	Title               string
	Author              string
	Producer            string
	Creator             string
	FormatVersion       string
	IsAcroFormPresent   bool
	IsXFAPresent        bool
	IsSignaturesPresent bool
}

// FormType returns the form classification for telemetry reporting.
func (i DocumentInfo) FormType() FormType {
	switch {
	case i.IsXFAPresent:
		return FormTypeXFA
	case i.IsAcroFormPresent:
		return FormTypeAcroForm
	}
	return FormTypeNone
}

// DocumentMetadata bundles everything the engine resolves asynchronously
// about a document's identity: the info dictionary, the XMP metadata map,
// and transport-level details.
type DocumentMetadata struct {
	Info                       DocumentInfo
	Metadata                   map[string]string // XMP entries, e.g. "dc:title"
	ContentDispositionFilename string
	ContentLength              int64 // 0 when unknown
}

// MeaningfulPageLabels reports whether labels add information beyond the
// standard 1..n page numbering. Labels that are all-standard or all-empty
// are suppressed.
func MeaningfulPageLabels(labels []string) bool {
	numLabels := len(labels)
	if numLabels == 0 {
		return false
	}
	standardLabels, emptyLabels := 0, 0
	for i, label := range labels {
		if label == strconv.Itoa(i+1) {
			standardLabels++
		} else if label == "" {
			emptyLabels++
		} else {
			break
		}
	}
	return standardLabels < numLabels && emptyLabels < numLabels
}
