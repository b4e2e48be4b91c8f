//go:build !linux

package v4l2

import (
	"errors"

	"github.com/smazurov/framefit/internal/resolution"
)

// ErrUnsupported is returned for device queries on non-Linux platforms.
var ErrUnsupported = errors.New("v4l2: not supported on this platform")

// FindDevices returns no devices outside Linux.
func FindDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{}, nil
}

// GetFormats always fails outside Linux.
func GetFormats(string) ([]FormatInfo, error) {
	return nil, ErrUnsupported
}

// GetFrameSizes always fails outside Linux.
func GetFrameSizes(string, uint32) ([]resolution.Resolution, error) {
	return nil, ErrUnsupported
}
