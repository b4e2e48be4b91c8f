package collectors

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smazurov/framefit/internal/events"
)

func TestDeviceCollector(t *testing.T) {
	bus := events.New()
	c := NewDeviceCollector(bus)
	c.Start()
	c.Start()
	defer c.Stop()

	bus.Publish(events.DevicesChangedEvent{Count: 4})

	expected := `
# HELP framefit_devices Capture devices currently known
# TYPE framefit_devices gauge
framefit_devices 4
`
	deadline := time.Now().Add(time.Second)
	for {
		err := testutil.GatherAndCompare(prometheus.DefaultGatherer, strings.NewReader(expected), "framefit_devices")
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("framefit_devices not updated: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDeviceCollector_StopWithoutStart(t *testing.T) {
	NewDeviceCollector(events.New()).Stop()
}

func TestDeviceCollectorNilBus(t *testing.T) {
	c := NewDeviceCollector(nil)
	c.Start()
	c.Stop()
}
