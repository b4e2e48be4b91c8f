// Package v4l2 provides pure Go bindings to the Video4Linux2 (V4L2) API
// for capture device enumeration and frame size queries.
//
// This package does not use cgo, enabling simple cross-compilation for
// different Linux architectures (amd64, arm64, arm). On other platforms
// enumeration returns no devices.
//
// # Device Enumeration
//
//	devices, err := v4l2.FindDevices()
//	for _, dev := range devices {
//	    fmt.Printf("%s: %s\n", dev.DevicePath, dev.DeviceName)
//	}
//
// # Frame Sizes
//
//	formats, _ := v4l2.GetFormats("/dev/video0")
//	for _, f := range formats {
//	    sizes, _ := v4l2.GetFrameSizes("/dev/video0", f.PixelFormat)
//	}
package v4l2
