// Package port defines the interfaces folio consumes from external
// collaborators: the rendering engine, dependent viewers, and platform
// services. Adapters implement these; the shell never imports adapters.
package port

import (
	"context"

	"github.com/foliolabs/folio/internal/domain/entity"
)

// Source identifies the document to open: a URL, raw bytes, or a URL pair
// where OriginalURL is what the user asked for and URL is where the bytes
// actually live.
type Source struct {
	URL         string
	OriginalURL string
	Data        []byte
}

// LoadOptions are the merged engine parameters for one load: engine-level
// defaults first, then caller-supplied arguments on top.
type LoadOptions map[string]any

// Clone returns a shallow copy so per-open mutation never leaks into the
// defaults.
func (o LoadOptions) Clone() LoadOptions {
	out := make(LoadOptions, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Engine is the document loader. Load failures wrap one of the
// entity.Err* sentinels so the shell can classify them.
type Engine interface {
	Load(ctx context.Context, source Source, opts LoadOptions) (Document, error)
}

// Document is one loaded document handle produced by the engine. All
// getters may be called concurrently; each blocks until its data is
// resolved or ctx is done.
type Document interface {
	NumPages() int
	Fingerprint() string

	Metadata(ctx context.Context) (*entity.DocumentMetadata, error)
	Outline(ctx context.Context) ([]entity.OutlineItem, error)
	Attachments(ctx context.Context) (map[string]entity.Attachment, error)
	Layers(ctx context.Context) (*entity.LayerConfig, error)
	PageLabels(ctx context.Context) ([]string, error)
	PageLayout(ctx context.Context) (entity.PageLayout, error)
	PageMode(ctx context.Context) (entity.PageMode, error)
	OpenAction(ctx context.Context) (*entity.OpenAction, error)
	MarkInfo(ctx context.Context) (*entity.MarkInfo, error)
	Scripts(ctx context.Context) ([]string, error)

	// DownloadInfo blocks until the underlying transfer completes and
	// returns the final content length.
	DownloadInfo(ctx context.Context) (int64, error)

	// Save serializes the document including any modified form data.
	Save(ctx context.Context) ([]byte, error)
	// Data returns the raw document bytes.
	Data(ctx context.Context) ([]byte, error)
	// FormDirty reports whether form/annotation data was modified and not
	// yet saved.
	FormDirty() bool

	Destroy(ctx context.Context) error
}
