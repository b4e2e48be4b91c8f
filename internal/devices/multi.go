package devices

import (
	"github.com/smazurov/framefit/internal/resolution"
)

// Multi combines sources. Devices are listed from every source in order;
// a device ID is answered by the first source that knows it.
type Multi []Source

// FindDevices concatenates the devices of all sources, skipping IDs already
// reported by an earlier source.
func (m Multi) FindDevices() ([]DeviceInfo, error) {
	var devices []DeviceInfo
	seen := make(map[string]struct{})
	for _, src := range m {
		found, err := src.FindDevices()
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			if _, ok := seen[d.DeviceID]; ok {
				continue
			}
			seen[d.DeviceID] = struct{}{}
			devices = append(devices, d)
		}
	}
	return devices, nil
}

// PreviewSizes asks each source in turn.
func (m Multi) PreviewSizes(deviceID string) ([]resolution.Resolution, error) {
	return m.first(deviceID, Source.PreviewSizes)
}

// PictureSizes asks each source in turn.
func (m Multi) PictureSizes(deviceID string) ([]resolution.Resolution, error) {
	return m.first(deviceID, Source.PictureSizes)
}

func (m Multi) first(deviceID string, query func(Source, string) ([]resolution.Resolution, error)) ([]resolution.Resolution, error) {
	for _, src := range m {
		sizes, err := query(src, deviceID)
		if IsNotFound(err) {
			continue
		}
		return sizes, err
	}
	return nil, notFound(deviceID)
}

// Open returns the standard source: V4L2 devices first, then the devices
// declared in profilesFile when it is set. The profile source is returned
// separately so callers can watch it; it is nil without a profile file.
func Open(profilesFile string) (Multi, *ProfileSource, error) {
	sources := Multi{NewV4L2Source()}
	if profilesFile == "" {
		return sources, nil, nil
	}

	profiles, err := NewProfileSource(profilesFile)
	if err != nil {
		return nil, nil, err
	}
	return append(sources, profiles), profiles, nil
}
