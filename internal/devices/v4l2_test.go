package devices

import (
	"errors"
	"reflect"
	"testing"

	"github.com/smazurov/framefit/internal/resolution"
	"github.com/smazurov/framefit/pkg/linuxav/v4l2"
)

type fakeV4L2 struct {
	devices []v4l2.DeviceInfo
	formats []v4l2.FormatInfo
	sizes   map[uint32][]resolution.Resolution
	sizeErr map[uint32]error
	findErr error
}

func (f *fakeV4L2) FindDevices() ([]v4l2.DeviceInfo, error) {
	return f.devices, f.findErr
}

func (f *fakeV4L2) GetFormats(string) ([]v4l2.FormatInfo, error) {
	return f.formats, nil
}

func (f *fakeV4L2) GetFrameSizes(_ string, pixelFormat uint32) ([]resolution.Resolution, error) {
	return f.sizes[pixelFormat], f.sizeErr[pixelFormat]
}

func newTestV4L2Source(backend *fakeV4L2) *V4L2Source {
	s := NewV4L2Source()
	s.backend = backend
	return s
}

func webcam() *fakeV4L2 {
	return &fakeV4L2{
		devices: []v4l2.DeviceInfo{
			{DevicePath: "/dev/video0", DeviceName: "HD Pro Webcam C920", DeviceID: "usb-cam-video-index0"},
		},
		formats: []v4l2.FormatInfo{
			{PixelFormat: v4l2.PixFmtYUYV},
			{PixelFormat: v4l2.PixFmtMJPEG},
		},
		sizes: map[uint32][]resolution.Resolution{
			v4l2.PixFmtYUYV:  {res(640, 480), res(1280, 720), res(640, 480)},
			v4l2.PixFmtMJPEG: {res(1920, 1080), res(1280, 720)},
		},
	}
}

func res(w, h int) resolution.Resolution {
	return resolution.New(w, h)
}

func TestV4L2Source_FindDevices(t *testing.T) {
	s := newTestV4L2Source(webcam())

	devices, err := s.FindDevices()
	if err != nil {
		t.Fatalf("FindDevices() error = %v", err)
	}
	want := []DeviceInfo{{
		DeviceID:   "usb-cam-video-index0",
		DeviceName: "HD Pro Webcam C920",
		DevicePath: "/dev/video0",
		Source:     SourceV4L2,
	}}
	if !reflect.DeepEqual(devices, want) {
		t.Errorf("FindDevices() = %+v, want %+v", devices, want)
	}
}

func TestV4L2Source_Sizes(t *testing.T) {
	s := newTestV4L2Source(webcam())

	preview, err := s.PreviewSizes("usb-cam-video-index0")
	if err != nil {
		t.Fatalf("PreviewSizes() error = %v", err)
	}
	if want := []resolution.Resolution{res(640, 480), res(1280, 720)}; !reflect.DeepEqual(preview, want) {
		t.Errorf("PreviewSizes() = %v, want %v", preview, want)
	}

	picture, err := s.PictureSizes("/dev/video0")
	if err != nil {
		t.Fatalf("PictureSizes() error = %v", err)
	}
	if want := []resolution.Resolution{res(1920, 1080), res(1280, 720)}; !reflect.DeepEqual(picture, want) {
		t.Errorf("PictureSizes() = %v, want %v", picture, want)
	}
}

func TestV4L2Source_FallsBackToAllFormats(t *testing.T) {
	backend := webcam()
	backend.formats = []v4l2.FormatInfo{{PixelFormat: v4l2.PixFmtH264}, {PixelFormat: v4l2.PixFmtMJPEG}}
	backend.sizes[v4l2.PixFmtH264] = []resolution.Resolution{res(1920, 1080)}
	s := newTestV4L2Source(backend)

	preview, err := s.PreviewSizes("usb-cam-video-index0")
	if err != nil {
		t.Fatalf("PreviewSizes() error = %v", err)
	}
	if want := []resolution.Resolution{res(1920, 1080), res(1280, 720)}; !reflect.DeepEqual(preview, want) {
		t.Errorf("PreviewSizes() = %v, want %v", preview, want)
	}

	backend.formats = []v4l2.FormatInfo{{PixelFormat: v4l2.PixFmtYUYV}}
	picture, err := s.PictureSizes("usb-cam-video-index0")
	if err != nil {
		t.Fatalf("PictureSizes() error = %v", err)
	}
	if want := []resolution.Resolution{res(640, 480), res(1280, 720)}; !reflect.DeepEqual(picture, want) {
		t.Errorf("PictureSizes() = %v, want %v", picture, want)
	}
}

func TestV4L2Source_SkipsFailingFormat(t *testing.T) {
	backend := webcam()
	backend.sizeErr = map[uint32]error{v4l2.PixFmtYUYV: errors.New("EIO")}
	s := newTestV4L2Source(backend)

	preview, err := s.PreviewSizes("usb-cam-video-index0")
	if err != nil {
		t.Fatalf("PreviewSizes() error = %v", err)
	}
	if want := []resolution.Resolution{res(1920, 1080), res(1280, 720)}; !reflect.DeepEqual(preview, want) {
		t.Errorf("PreviewSizes() = %v, want %v", preview, want)
	}
}

func TestV4L2Source_Errors(t *testing.T) {
	s := newTestV4L2Source(webcam())
	if _, err := s.PreviewSizes("missing"); !IsNotFound(err) {
		t.Errorf("PreviewSizes(missing) error = %v, want DEVICE_NOT_FOUND", err)
	}

	cause := errors.New("sysfs unreadable")
	s = newTestV4L2Source(&fakeV4L2{findErr: cause})
	_, err := s.FindDevices()
	var devErr *DeviceError
	if !errors.As(err, &devErr) || devErr.Code != ErrCodeSourceError {
		t.Fatalf("FindDevices() error = %v, want SOURCE_ERROR", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("FindDevices() error does not wrap cause: %v", err)
	}
}
