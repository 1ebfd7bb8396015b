// Package telemetry exposes document telemetry as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/foliolabs/folio/internal/application/port"
	"github.com/foliolabs/folio/internal/domain/entity"
)

// PrometheusSink implements port.TelemetrySink on Prometheus counters.
// Reports are counted, never sampled; label values come from the fixed
// version/generator tables so cardinality stays bounded.
type PrometheusSink struct {
	documentsOpened     *prometheus.CounterVec
	taggedDocuments     *prometheus.CounterVec
	unsupportedFeatures *prometheus.CounterVec
	pagesRendered       prometheus.Counter
}

var _ port.TelemetrySink = (*PrometheusSink)(nil)

// NewPrometheusSink creates a sink registering its collectors with reg.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	factory := promauto.With(reg)
	return &PrometheusSink{
		documentsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_documents_opened_total",
				Help: "Documents opened, by format version, generator and form type",
			},
			[]string{"version", "generator", "form_type"},
		),
		taggedDocuments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_tagged_documents_total",
				Help: "Documents inspected for accessibility tagging",
			},
			[]string{"tagged"},
		),
		unsupportedFeatures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_unsupported_features_total",
				Help: "Encounters with document features folio does not run",
			},
			[]string{"feature"},
		),
		pagesRendered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_first_page_rendered_total",
				Help: "Sessions that reached a rendered first page",
			},
		),
	}
}

// Report counts one telemetry event. Unknown event types are dropped.
func (s *PrometheusSink) Report(event port.TelemetryEvent) {
	switch event.Type {
	case "documentInfo":
		s.documentsOpened.WithLabelValues(
			event.Version, event.Generator, formTypeLabel(event.FormType)).Inc()
	case "tagged":
		label := "false"
		if event.Tagged {
			label = "true"
		}
		s.taggedDocuments.WithLabelValues(label).Inc()
	case "unsupportedFeature":
		s.unsupportedFeatures.WithLabelValues(event.FeatureID).Inc()
	case "pageInfo":
		s.pagesRendered.Inc()
	}
}

func formTypeLabel(ft entity.FormType) string {
	if ft == "" {
		return "none"
	}
	return string(ft)
}
