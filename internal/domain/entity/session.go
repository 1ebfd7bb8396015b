package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionID uniquely identifies one document session for the whole life of
// the process. Asynchronous continuations capture it at launch and compare
// it against the current session before touching shared state.
type SessionID string

// NewSessionID returns a fresh session identity.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session is the identity and accumulated state of one open document.
// At most one session is current at any time; a newer session supersedes
// all asynchronous work launched for an older one.
type Session struct {
	ID          SessionID
	URL         string
	BaseURL     string
	DownloadURL string
	Title       string

	Fingerprint string

	// Resolved asynchronously; nil/zero until known.
	Info                       *DocumentInfo
	Metadata                   map[string]string
	ContentDispositionFilename string
	ContentLength              int64 // 0 until known
	DownloadComplete           bool

	StartedAt time.Time
}

// NewSession creates a session with a fresh identity.
func NewSession() *Session {
	return &Session{
		ID:        NewSessionID(),
		StartedAt: time.Now().UTC(),
	}
}

// Filename returns the preferred filename for downloads: the
// content-disposition filename when present, else one derived from the URL
// by the caller. Empty when neither is known.
func (s *Session) Filename(fromURL string) string {
	if s.ContentDispositionFilename != "" {
		return s.ContentDispositionFilename
	}
	return fromURL
}
