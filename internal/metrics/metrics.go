// Package metrics provides Prometheus metrics for resolution selection and
// device discovery.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Selection kinds.
const (
	KindSelect  = "select"  // ad-hoc selection through the API
	KindPreview = "preview" // preview size during negotiation
	KindPicture = "picture" // picture size during negotiation
)

var (
	selectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "framefit",
		Name:      "selections_total",
		Help:      "Resolutions selected, by kind and deciding tier",
	}, []string{"kind", "tier"})

	selectionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "framefit",
		Name:      "selection_errors_total",
		Help:      "Selections rejected or failed, by kind",
	}, []string{"kind"})

	devicesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "framefit",
		Name:      "devices",
		Help:      "Capture devices currently known",
	})
)

// RecordSelection counts a successful selection.
func RecordSelection(kind, tier string) {
	selectionsTotal.WithLabelValues(kind, tier).Inc()
}

// RecordSelectionError counts a failed selection.
func RecordSelectionError(kind string) {
	selectionErrorsTotal.WithLabelValues(kind).Inc()
}

// SetDevices sets the number of known devices.
func SetDevices(n int) {
	devicesGauge.Set(float64(n))
}
