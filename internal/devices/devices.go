// Package devices reports the frame sizes capture devices can deliver.
//
// A Source answers two questions per device: which sizes can stream as a
// live preview and which can be captured as still pictures. Sources are
// backed by V4L2 on Linux or by a profile file declaring sizes by hand.
package devices

import (
	"errors"
	"fmt"

	"github.com/smazurov/framefit/internal/resolution"
)

// Source is a device capability backend.
type Source interface {
	// FindDevices returns the devices this source knows about.
	FindDevices() ([]DeviceInfo, error)

	// PreviewSizes returns the sizes usable for a live preview stream.
	PreviewSizes(deviceID string) ([]resolution.Resolution, error)

	// PictureSizes returns the sizes usable for still capture. An empty
	// list means the device has no separate picture path.
	PictureSizes(deviceID string) ([]resolution.Resolution, error)
}

// DeviceInfo describes a device known to a Source.
type DeviceInfo struct {
	DeviceID   string
	DeviceName string
	DevicePath string // empty for profile devices
	Source     string // "v4l2" or "profile"
}

// Error codes for DeviceError.
const (
	ErrCodeNotFound    = "DEVICE_NOT_FOUND"
	ErrCodeSourceError = "SOURCE_ERROR"
)

// DeviceError reports a device lookup or query failure.
type DeviceError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DeviceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DeviceError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a DEVICE_NOT_FOUND DeviceError.
func IsNotFound(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr) && devErr.Code == ErrCodeNotFound
}

func notFound(deviceID string) *DeviceError {
	return &DeviceError{Code: ErrCodeNotFound, Message: fmt.Sprintf("device %q not found", deviceID)}
}

func sourceError(message string, cause error) *DeviceError {
	return &DeviceError{Code: ErrCodeSourceError, Message: message, Cause: cause}
}

// dedupe drops repeated sizes, keeping first-seen order.
func dedupe(sizes []resolution.Resolution) []resolution.Resolution {
	seen := make(map[resolution.Resolution]struct{}, len(sizes))
	out := make([]resolution.Resolution, 0, len(sizes))
	for _, s := range sizes {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
