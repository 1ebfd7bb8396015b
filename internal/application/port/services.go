package port

import (
	"context"

	"github.com/foliolabs/folio/internal/domain/entity"
)

// TelemetryEvent is one fire-and-forget telemetry report.
type TelemetryEvent struct {
	Type      string // "documentInfo", "tagged", "unsupportedFeature", "pageInfo"
	Version   string
	Generator string
	FormType  entity.FormType
	Tagged    bool
	FeatureID string
}

// TelemetrySink receives telemetry reports. Never awaited for correctness.
type TelemetrySink interface {
	Report(event TelemetryEvent)
}

// DownloadManager hands document bytes, or a URL when the bytes are not
// available yet, to the surrounding platform's download machinery.
type DownloadManager interface {
	Download(ctx context.Context, data []byte, url, filename string) error
	DownloadURL(ctx context.Context, url, filename string) error
}

// PrintService renders one print job.
type PrintService interface {
	Layout() error
	Destroy() error
}

// PrintServiceFactory creates print services for loaded documents.
type PrintServiceFactory interface {
	Supported() bool
	Create(doc Document, resolution int) (PrintService, error)
}

// ScriptingManager drives document-embedded scripting. It is an external
// collaborator; the shell only sequences its lifecycle events.
type ScriptingManager interface {
	SetDocument(doc Document)
	DispatchWillSave(ctx context.Context) error
	DispatchDidSave(ctx context.Context) error
	DispatchWillPrint(ctx context.Context) error
	Destroy(ctx context.Context) error
}

// Localizer translates message keys into user-visible strings.
type Localizer interface {
	Get(key string) string
}

// Overlay is one dialog eligible for modal presentation.
type Overlay interface {
	// ShowModal presents the dialog modally.
	ShowModal() error
	// Dismiss closes the dialog.
	Dismiss() error
	// OnCancel registers the handler invoked when the dialog is dismissed
	// by a platform-level cancel (e.g. Escape) rather than through the
	// overlay manager.
	OnCancel(fn func())
}
