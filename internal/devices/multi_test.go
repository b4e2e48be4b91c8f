package devices

import (
	"errors"
	"reflect"
	"testing"

	"github.com/smazurov/framefit/internal/resolution"
)

type staticSource struct {
	devices []DeviceInfo
	preview map[string][]resolution.Resolution
	err     error
}

func (s *staticSource) FindDevices() ([]DeviceInfo, error) {
	return s.devices, s.err
}

func (s *staticSource) PreviewSizes(id string) ([]resolution.Resolution, error) {
	if s.err != nil {
		return nil, s.err
	}
	sizes, ok := s.preview[id]
	if !ok {
		return nil, notFound(id)
	}
	return sizes, nil
}

func (s *staticSource) PictureSizes(id string) ([]resolution.Resolution, error) {
	if _, err := s.PreviewSizes(id); err != nil {
		return nil, err
	}
	return nil, nil
}

func TestMulti(t *testing.T) {
	a := &staticSource{
		devices: []DeviceInfo{{DeviceID: "cam0", Source: "a"}},
		preview: map[string][]resolution.Resolution{"cam0": {res(640, 480)}},
	}
	b := &staticSource{
		devices: []DeviceInfo{{DeviceID: "cam0", Source: "b"}, {DeviceID: "cam1", Source: "b"}},
		preview: map[string][]resolution.Resolution{
			"cam0": {res(1920, 1080)},
			"cam1": {res(1280, 720)},
		},
	}
	m := Multi{a, b}

	devices, err := m.FindDevices()
	if err != nil {
		t.Fatalf("FindDevices() error = %v", err)
	}
	want := []DeviceInfo{{DeviceID: "cam0", Source: "a"}, {DeviceID: "cam1", Source: "b"}}
	if !reflect.DeepEqual(devices, want) {
		t.Errorf("FindDevices() = %+v, want %+v", devices, want)
	}

	sizes, err := m.PreviewSizes("cam0")
	if err != nil || !reflect.DeepEqual(sizes, []resolution.Resolution{res(640, 480)}) {
		t.Errorf("PreviewSizes(cam0) = %v, %v, want first source's sizes", sizes, err)
	}
	sizes, err = m.PreviewSizes("cam1")
	if err != nil || !reflect.DeepEqual(sizes, []resolution.Resolution{res(1280, 720)}) {
		t.Errorf("PreviewSizes(cam1) = %v, %v", sizes, err)
	}
	if _, err := m.PictureSizes("cam9"); !IsNotFound(err) {
		t.Errorf("PictureSizes(cam9) error = %v, want DEVICE_NOT_FOUND", err)
	}
}

func TestMulti_SourceErrorStopsLookup(t *testing.T) {
	broken := &staticSource{err: sourceError("boom", errors.New("io"))}
	m := Multi{broken, &staticSource{preview: map[string][]resolution.Resolution{"cam0": {res(1, 1)}}}}

	if _, err := m.PreviewSizes("cam0"); err == nil || IsNotFound(err) {
		t.Errorf("PreviewSizes() error = %v, want SOURCE_ERROR", err)
	}
	if _, err := m.FindDevices(); err == nil {
		t.Error("FindDevices() expected error")
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]resolution.Resolution{res(1, 2), res(3, 4), res(1, 2), res(2, 1)})
	want := []resolution.Resolution{res(1, 2), res(3, 4), res(2, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe() = %v, want %v", got, want)
	}
}
