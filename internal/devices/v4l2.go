package devices

import (
	"fmt"
	"log/slog"

	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/resolution"
	"github.com/smazurov/framefit/pkg/linuxav/v4l2"
)

// SourceV4L2 names devices discovered through V4L2.
const SourceV4L2 = "v4l2"

// v4l2Backend is the slice of pkg/linuxav/v4l2 the source depends on.
type v4l2Backend interface {
	FindDevices() ([]v4l2.DeviceInfo, error)
	GetFormats(devicePath string) ([]v4l2.FormatInfo, error)
	GetFrameSizes(devicePath string, pixelFormat uint32) ([]resolution.Resolution, error)
}

type systemV4L2 struct{}

func (systemV4L2) FindDevices() ([]v4l2.DeviceInfo, error) { return v4l2.FindDevices() }

func (systemV4L2) GetFormats(devicePath string) ([]v4l2.FormatInfo, error) {
	return v4l2.GetFormats(devicePath)
}

func (systemV4L2) GetFrameSizes(devicePath string, pixelFormat uint32) ([]resolution.Resolution, error) {
	return v4l2.GetFrameSizes(devicePath, pixelFormat)
}

// V4L2Source queries capture devices through V4L2 ioctls.
type V4L2Source struct {
	backend v4l2Backend
	logger  *slog.Logger
}

// NewV4L2Source creates a source backed by the system's V4L2 devices.
// On platforms without V4L2 it reports no devices.
func NewV4L2Source() *V4L2Source {
	return &V4L2Source{
		backend: systemV4L2{},
		logger:  logging.GetLogger("devices"),
	}
}

// FindDevices lists V4L2 capture devices.
func (s *V4L2Source) FindDevices() ([]DeviceInfo, error) {
	found, err := s.backend.FindDevices()
	if err != nil {
		return nil, sourceError("failed to enumerate V4L2 devices", err)
	}

	devices := make([]DeviceInfo, len(found))
	for i, d := range found {
		devices[i] = DeviceInfo{
			DeviceID:   d.DeviceID,
			DeviceName: d.DeviceName,
			DevicePath: d.DevicePath,
			Source:     SourceV4L2,
		}
	}
	return devices, nil
}

// PreviewSizes returns sizes from uncompressed formats, or from every
// format when the device only offers compressed ones.
func (s *V4L2Source) PreviewSizes(deviceID string) ([]resolution.Resolution, error) {
	return s.sizes(deviceID, func(f v4l2.FormatInfo) bool { return !f.Compressed() })
}

// PictureSizes returns sizes from JPEG formats, or from every format when
// the device has no JPEG output.
func (s *V4L2Source) PictureSizes(deviceID string) ([]resolution.Resolution, error) {
	return s.sizes(deviceID, func(f v4l2.FormatInfo) bool {
		return f.PixelFormat == v4l2.PixFmtMJPEG || f.PixelFormat == v4l2.PixFmtJPEG
	})
}

func (s *V4L2Source) sizes(deviceID string, prefer func(v4l2.FormatInfo) bool) ([]resolution.Resolution, error) {
	path, err := s.resolve(deviceID)
	if err != nil {
		return nil, err
	}

	formats, err := s.backend.GetFormats(path)
	if err != nil {
		return nil, sourceError(fmt.Sprintf("failed to list formats of %s", path), err)
	}

	var preferred, all []resolution.Resolution
	for _, format := range formats {
		sizes, err := s.backend.GetFrameSizes(path, format.PixelFormat)
		if err != nil {
			s.logger.Warn("Failed to enumerate frame sizes",
				"device_id", deviceID, "format", format.FourCC(), "error", err)
			continue
		}
		all = append(all, sizes...)
		if prefer(format) {
			preferred = append(preferred, sizes...)
		}
	}

	if len(preferred) > 0 {
		return dedupe(preferred), nil
	}
	return dedupe(all), nil
}

func (s *V4L2Source) resolve(deviceID string) (string, error) {
	devices, err := s.backend.FindDevices()
	if err != nil {
		return "", sourceError("failed to enumerate V4L2 devices", err)
	}
	for _, d := range devices {
		if d.DeviceID == deviceID || d.DevicePath == deviceID {
			return d.DevicePath, nil
		}
	}
	return "", notFound(deviceID)
}
