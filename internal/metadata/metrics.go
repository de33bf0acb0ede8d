package metadata

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"thothexport/internal/exporterr"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thothexport_exports_total",
		Help: "Export attempts by specification, scope and outcome.",
	}, []string{"specification", "scope", "outcome"})

	exportBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thothexport_export_bytes",
		Help:    "Size of generated records.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"specification"})
)

const (
	scopeWork      = "work"
	scopePublisher = "publisher"
)

func observeExport(specID, scope string, rec Record, err error) {
	exportsTotal.WithLabelValues(specID, scope, outcome(err)).Inc()
	if err == nil {
		exportBytes.WithLabelValues(specID).Observe(float64(len(rec.Body)))
	}
}

func outcome(err error) string {
	var incomplete *exporterr.IncompleteRecordError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &incomplete):
		return "incomplete"
	case errors.Is(err, exporterr.ErrNotImplemented):
		return "not_implemented"
	default:
		return "error"
	}
}
