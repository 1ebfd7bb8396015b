package entity

import "time"

// SidebarView identifies which sidebar panel is visible.
type SidebarView int

const (
	SidebarUnknown     SidebarView = -1
	SidebarNone        SidebarView = 0
	SidebarThumbs      SidebarView = 1
	SidebarOutline     SidebarView = 2
	SidebarAttachments SidebarView = 3
	SidebarLayers      SidebarView = 4
)

// ScrollMode identifies how pages are laid out along the scroll axis.
type ScrollMode int

const (
	ScrollUnknown    ScrollMode = -1
	ScrollVertical   ScrollMode = 0
	ScrollHorizontal ScrollMode = 1
	ScrollWrapped    ScrollMode = 2
	ScrollPage       ScrollMode = 3
)

// SpreadMode identifies how pages are grouped into spreads.
type SpreadMode int

const (
	SpreadUnknown SpreadMode = -1
	SpreadNone    SpreadMode = 0
	SpreadOdd     SpreadMode = 1
	SpreadEven    SpreadMode = 2
)

// ViewState is the per-document view state persisted between sessions,
// keyed by the document's content fingerprint.
type ViewState struct {
	Fingerprint string
	Page        int
	Zoom        string // numeric factor or named value ("page-width", "auto", ...)
	ScrollLeft  int
	ScrollTop   int
	Rotation    int // 0, 90, 180, 270; -1 when unknown
	SidebarView SidebarView
	ScrollMode  ScrollMode
	SpreadMode  SpreadMode
	UpdatedAt   time.Time
}

// IsValidRotation reports whether angle is a multiple of 90 degrees.
func IsValidRotation(angle int) bool {
	return angle%90 == 0 && angle >= 0 && angle < 360
}

// IsValidScrollMode reports whether mode is a concrete scroll mode.
func IsValidScrollMode(mode ScrollMode) bool {
	return mode >= ScrollVertical && mode <= ScrollPage
}

// IsValidSpreadMode reports whether mode is a concrete spread mode.
func IsValidSpreadMode(mode SpreadMode) bool {
	return mode >= SpreadNone && mode <= SpreadEven
}
