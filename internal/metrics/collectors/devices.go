// Package collectors feeds metrics from the event bus.
package collectors

import (
	"sync"

	"github.com/smazurov/framefit/internal/events"
	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/metrics"
)

// DeviceCollector keeps the device gauge in step with DevicesChangedEvent.
type DeviceCollector struct {
	bus    *events.Bus
	logger logging.Logger
	mu     sync.Mutex
	unsub  func()
}

// NewDeviceCollector creates a collector listening on bus.
func NewDeviceCollector(bus *events.Bus) *DeviceCollector {
	return &DeviceCollector{
		bus:    bus,
		logger: logging.GetLogger("metrics"),
	}
}

// Start subscribes to device changes. Calling Start twice is a no-op.
func (c *DeviceCollector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsub != nil {
		return
	}
	c.unsub = c.bus.Subscribe(func(e events.DevicesChangedEvent) {
		c.logger.Debug("Device count changed", "count", e.Count)
		metrics.SetDevices(e.Count)
	})
}

// Stop unsubscribes from the bus.
func (c *DeviceCollector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}
