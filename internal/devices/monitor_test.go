package devices

import (
	"reflect"
	"testing"
	"time"

	"github.com/smazurov/framefit/internal/events"
)

func TestParseUEvent(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   uevent
		wantOK bool
	}{
		{
			name: "video add",
			data: []byte("add@/devices/pci0000:00/usb1/video4linux/video0\x00ACTION=add\x00SUBSYSTEM=video4linux\x00DEVNAME=video0\x00"),
			want: uevent{
				action:    "add",
				kobj:      "/devices/pci0000:00/usb1/video4linux/video0",
				subsystem: "video4linux",
				devName:   "video0",
			},
			wantOK: true,
		},
		{
			name: "libudev header",
			data: append([]byte("libudev\x00\xfe\xed\x00"), []byte("remove@/devices/v/video2\x00SUBSYSTEM=video4linux\x00")...),
			want: uevent{
				action:    "remove",
				kobj:      "/devices/v/video2",
				subsystem: "video4linux",
			},
			wantOK: true,
		},
		{name: "empty", data: nil},
		{name: "no action", data: []byte("@/devices\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseUEvent(tt.data)
			if ok != tt.wantOK {
				t.Fatalf("parseUEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseUEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDiffIDs(t *testing.T) {
	before := map[string]struct{}{"a": {}, "b": {}}
	after := map[string]struct{}{"b": {}, "d": {}, "c": {}}

	added, removed := diffIDs(before, after)
	if !reflect.DeepEqual(added, []string{"c", "d"}) {
		t.Errorf("added = %v, want [c d]", added)
	}
	if !reflect.DeepEqual(removed, []string{"a"}) {
		t.Errorf("removed = %v, want [a]", removed)
	}
}

func TestMonitor_Refresh(t *testing.T) {
	src := &staticSource{devices: []DeviceInfo{{DeviceID: "cam0"}}}
	bus := events.New()
	changes := make(chan events.DevicesChangedEvent, 4)
	defer bus.Subscribe(func(e events.DevicesChangedEvent) { changes <- e })()

	m := NewMonitor(src, bus)
	if n := m.Refresh(); n != 1 {
		t.Errorf("Refresh() = %d, want 1", n)
	}
	select {
	case e := <-changes:
		if !reflect.DeepEqual(e.Added, []string{"cam0"}) || len(e.Removed) != 0 || e.Count != 1 {
			t.Errorf("first event = %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for initial event")
	}

	// Unchanged list publishes nothing.
	m.Refresh()

	src.devices = []DeviceInfo{{DeviceID: "cam1"}}
	m.Refresh()
	select {
	case e := <-changes:
		if !reflect.DeepEqual(e.Added, []string{"cam1"}) || !reflect.DeepEqual(e.Removed, []string{"cam0"}) {
			t.Errorf("second event = %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for change event")
	}

	select {
	case e := <-changes:
		t.Errorf("unexpected extra event %+v", e)
	case <-time.After(20 * time.Millisecond):
	}
}
