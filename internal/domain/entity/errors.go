package entity

import "errors"

// Engine load failure sentinels. Engine adapters wrap their own failures
// with one of these so the shell can classify without knowing the engine.
var (
	// ErrInvalidDocument marks malformed or corrupt input.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrMissingDocument marks a resource that could not be found.
	ErrMissingDocument = errors.New("missing document")
	// ErrUnexpectedTransport marks a network or transport-layer anomaly.
	ErrUnexpectedTransport = errors.New("unexpected transport response")
)

// LoadErrorKind classifies a whole-document load failure.
type LoadErrorKind int

const (
	LoadErrorGeneric LoadErrorKind = iota
	LoadErrorInvalid
	LoadErrorMissing
	LoadErrorTransport
)

// ClassifyLoadError maps an engine load failure to its kind.
func ClassifyLoadError(err error) LoadErrorKind {
	switch {
	case errors.Is(err, ErrInvalidDocument):
		return LoadErrorInvalid
	case errors.Is(err, ErrMissingDocument):
		return LoadErrorMissing
	case errors.Is(err, ErrUnexpectedTransport):
		return LoadErrorTransport
	}
	return LoadErrorGeneric
}

// MessageKey returns the localization key for the user-visible error text.
func (k LoadErrorKind) MessageKey() string {
	switch k {
	case LoadErrorInvalid:
		return "invalid_file_error"
	case LoadErrorMissing:
		return "missing_file_error"
	case LoadErrorTransport:
		return "unexpected_response_error"
	}
	return "loading_error"
}

func (k LoadErrorKind) String() string {
	switch k {
	case LoadErrorInvalid:
		return "invalid"
	case LoadErrorMissing:
		return "missing"
	case LoadErrorTransport:
		return "transport"
	}
	return "generic"
}
