package v4l2

import "github.com/smazurov/framefit/internal/resolution"

// DeviceInfo contains information about a V4L2 device.
type DeviceInfo struct {
	DevicePath string
	DeviceName string
	DeviceID   string // Stable identifier (from /dev/v4l/by-id/ or synthetic)
	Caps       uint32
}

// FormatInfo contains information about a supported pixel format.
type FormatInfo struct {
	PixelFormat uint32
	FormatName  string
	Emulated    bool
}

// FourCC returns the four character code of the format.
func (f FormatInfo) FourCC() string {
	return FormatFourCC(f.PixelFormat)
}

// Compressed reports whether frames in this format are encoded (MJPEG, H264, ...).
func (f FormatInfo) Compressed() bool {
	return IsCompressed(f.PixelFormat)
}

// Common pixel formats.
const (
	PixFmtYUYV  = 0x56595559 // 'YUYV'
	PixFmtMJPEG = 0x47504A4D // 'MJPG'
	PixFmtJPEG  = 0x4745504A // 'JPEG'
	PixFmtH264  = 0x34363248 // 'H264'
	PixFmtHEVC  = 0x43564548 // 'HEVC'
	PixFmtNV12  = 0x3231564E // 'NV12'
)

// IsCompressed reports whether the pixel format carries encoded frames.
func IsCompressed(pixelFormat uint32) bool {
	switch pixelFormat {
	case PixFmtMJPEG, PixFmtJPEG, PixFmtH264, PixFmtHEVC:
		return true
	default:
		return false
	}
}

// FormatFourCC converts a 4-byte pixel format to a human-readable string.
func FormatFourCC(format uint32) string {
	b := make([]byte, 4)
	b[0] = byte(format & 0xFF)
	b[1] = byte((format >> 8) & 0xFF)
	b[2] = byte((format >> 16) & 0xFF)
	b[3] = byte((format >> 24) & 0xFF)
	return string(b)
}

// ladder is the set of sizes probed inside a stepwise or continuous range.
var ladder = []resolution.Resolution{
	{Width: 320, Height: 240},   // QVGA
	{Width: 640, Height: 480},   // VGA
	{Width: 800, Height: 600},   // SVGA
	{Width: 1024, Height: 768},  // XGA
	{Width: 1280, Height: 720},  // HD
	{Width: 1280, Height: 960},
	{Width: 1280, Height: 1024}, // SXGA
	{Width: 1920, Height: 1080}, // Full HD
	{Width: 1920, Height: 1200}, // WUXGA
	{Width: 2560, Height: 1440}, // QHD
	{Width: 3840, Height: 2160}, // 4K UHD
	{Width: 4096, Height: 2160}, // 4K DCI
}

// StepwiseRange is a frame size range reported by stepwise or continuous devices.
type StepwiseRange struct {
	MinWidth, MaxWidth, StepWidth    uint32
	MinHeight, MaxHeight, StepHeight uint32
}

// Expand returns the ladder sizes that fit inside the range and land on its step grid.
func (r StepwiseRange) Expand() []resolution.Resolution {
	var sizes []resolution.Resolution
	for _, size := range ladder {
		w, h := uint32(size.Width), uint32(size.Height)
		if w < r.MinWidth || w > r.MaxWidth || h < r.MinHeight || h > r.MaxHeight {
			continue
		}
		if r.StepWidth > 1 && (w-r.MinWidth)%r.StepWidth != 0 {
			continue
		}
		if r.StepHeight > 1 && (h-r.MinHeight)%r.StepHeight != 0 {
			continue
		}
		sizes = append(sizes, size)
	}
	return sizes
}
