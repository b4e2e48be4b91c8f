package devices

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/smazurov/framefit/internal/events"
	"github.com/smazurov/framefit/internal/logging"
)

// Monitor tracks the device list of a Source and publishes a
// DevicesChangedEvent whenever it changes. On Linux, Run reacts to
// video4linux hotplug events from the kernel.
type Monitor struct {
	source Source
	bus    *events.Bus
	settle time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	known map[string]struct{}
}

// NewMonitor creates a monitor for source. bus may be nil.
func NewMonitor(source Source, bus *events.Bus) *Monitor {
	return &Monitor{
		source: source,
		bus:    bus,
		settle: time.Second,
		logger: logging.GetLogger("devices"),
		known:  make(map[string]struct{}),
	}
}

// Run publishes the initial device list and then follows hotplug events
// until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.Refresh()

	uevents := make(chan uevent, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenUEvents(ctx, uevents)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if ctx.Err() != nil {
				return nil
			}
			return err
		case ev := <-uevents:
			if ev.subsystem != "video4linux" || (ev.action != "add" && ev.action != "remove") {
				continue
			}
			m.logger.Debug("Hotplug event", "action", ev.action, "device", ev.devName)

			// Stable by-id symlinks appear after the kernel event.
			if ev.action == "add" {
				select {
				case <-time.After(m.settle):
				case <-ctx.Done():
					return nil
				}
			}
			m.Refresh()
		}
	}
}

// Refresh re-lists devices and publishes the difference to the previous list.
// It returns the number of devices now present.
func (m *Monitor) Refresh() int {
	devices, err := m.source.FindDevices()
	if err != nil {
		m.logger.Warn("Failed to list devices", "error", err)
		return -1
	}

	current := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		current[d.DeviceID] = struct{}{}
	}

	m.mu.Lock()
	added, removed := diffIDs(m.known, current)
	m.known = current
	m.mu.Unlock()

	if len(added) == 0 && len(removed) == 0 {
		return len(current)
	}

	m.logger.Info("Device list changed", "added", added, "removed", removed, "count", len(current))
	if m.bus != nil {
		m.bus.Publish(events.DevicesChangedEvent{
			Added:     added,
			Removed:   removed,
			Count:     len(current),
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
	return len(current)
}

// diffIDs returns the sorted IDs only in after and only in before.
func diffIDs(before, after map[string]struct{}) (added, removed []string) {
	added, removed = []string{}, []string{}
	for id := range after {
		if _, ok := before[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			removed = append(removed, id)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}
