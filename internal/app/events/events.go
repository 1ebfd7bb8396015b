package events

import "github.com/foliolabs/folio/internal/domain/entity"

// DocumentInitialized fires once the initial view has been applied.
type DocumentInitialized struct {
	SessionID entity.SessionID
}

// PagesLoaded fires once every page of the document has resolved.
type PagesLoaded struct {
	SessionID entity.SessionID
	NumPages  int
}

// DocumentLoaded fires once the underlying transfer has completed and the
// first page is available.
type DocumentLoaded struct {
	SessionID entity.SessionID
}

// MetadataLoaded fires once document info and metadata have resolved.
type MetadataLoaded struct {
	SessionID entity.SessionID
	Title     string
}

// DocumentError replaces the working view with an error state. Message is
// localized; Detail carries the technical cause when known.
type DocumentError struct {
	Kind    entity.LoadErrorKind
	Message string
	Detail  string
}

// Progress reports transfer progress as a monotonic percentage.
type Progress struct {
	SessionID entity.SessionID
	Percent   int
}

// TitleChanged fires whenever the effective document title changes.
type TitleChanged struct {
	SessionID entity.SessionID
	Title     string
}
