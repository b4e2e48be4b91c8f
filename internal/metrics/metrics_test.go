package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSelectionMetrics(t *testing.T) {
	before := testutil.ToFloat64(selectionsTotal.WithLabelValues(KindPreview, "exact"))
	RecordSelection(KindPreview, "exact")
	RecordSelection(KindPreview, "exact")

	got := testutil.ToFloat64(selectionsTotal.WithLabelValues(KindPreview, "exact"))
	if got != before+2 {
		t.Errorf("selections_total{preview,exact} = %v, want %v", got, before+2)
	}

	errBefore := testutil.ToFloat64(selectionErrorsTotal.WithLabelValues(KindSelect))
	RecordSelectionError(KindSelect)
	if got := testutil.ToFloat64(selectionErrorsTotal.WithLabelValues(KindSelect)); got != errBefore+1 {
		t.Errorf("selection_errors_total{select} = %v, want %v", got, errBefore+1)
	}
}

func TestSetDevices(t *testing.T) {
	SetDevices(3)
	if got := testutil.ToFloat64(devicesGauge); got != 3 {
		t.Errorf("devices = %v, want 3", got)
	}
	SetDevices(0)
	if got := testutil.ToFloat64(devicesGauge); got != 0 {
		t.Errorf("devices = %v, want 0", got)
	}
}
