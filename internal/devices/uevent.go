package devices

import (
	"bytes"
	"strings"
)

// uevent is a kernel device event.
type uevent struct {
	action    string // "add", "remove", "change", ...
	kobj      string // /devices/pci0000:00/...
	subsystem string
	devName   string // "video0"
}

// parseUEvent parses a netlink kobject message of the form
// "ACTION@KOBJ\0KEY=VALUE\0...". Messages re-broadcast by udev carry a
// binary "libudev" header which is skipped.
func parseUEvent(data []byte) (uevent, bool) {
	if bytes.HasPrefix(data, []byte("libudev")) {
		// The payload starts after a NUL with a short "action@" token.
		for i := 0; i < len(data)-1; i++ {
			if data[i] != 0 {
				continue
			}
			rest := data[i+1:]
			if idx := bytes.IndexByte(rest, '@'); idx > 0 && idx < 20 && bytes.IndexByte(rest[:idx], 0) < 0 {
				data = rest
				break
			}
		}
	}

	parts := bytes.Split(data, []byte{0})
	header := string(parts[0])
	at := strings.Index(header, "@")
	if at < 1 {
		return uevent{}, false
	}

	ev := uevent{action: header[:at], kobj: header[at+1:]}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(string(part), "=")
		if !ok || key == "" {
			continue
		}
		switch key {
		case "SUBSYSTEM":
			ev.subsystem = value
		case "DEVNAME":
			ev.devName = value
		}
	}
	return ev, true
}
