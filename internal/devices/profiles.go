package devices

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/framefit/internal/config"
	"github.com/smazurov/framefit/internal/events"
	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/resolution"
	"gopkg.in/yaml.v3"
)

// SourceProfile names devices declared in a profile file.
const SourceProfile = "profile"

// ProfileFile is the on-disk layout of a profile file.
//
//	version = 1
//
//	[devices.cam0]
//	name = "Bench camera"
//	preview = ["1920x1080", "1280x720"]
//	picture = ["4000x3000", "1920x1080"]
type ProfileFile struct {
	Version int                `toml:"version" yaml:"version"`
	Devices map[string]Profile `toml:"devices" yaml:"devices"`
}

// Profile declares the sizes of one device.
type Profile struct {
	Name    string   `toml:"name,omitempty" yaml:"name,omitempty"`
	Preview []string `toml:"preview" yaml:"preview"`
	Picture []string `toml:"picture,omitempty" yaml:"picture,omitempty"`
}

type deviceProfile struct {
	name    string
	preview []resolution.Resolution
	picture []resolution.Resolution
}

// Profiles is a parsed, validated profile file.
type Profiles struct {
	devices map[string]deviceProfile
}

// Len returns the number of declared devices.
func (p *Profiles) Len() int {
	return len(p.devices)
}

// LoadProfiles reads a profile file. The format follows the extension:
// .yaml and .yml are YAML, anything else TOML. A missing file yields an
// empty set.
func LoadProfiles(path string) (*Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Profiles{devices: map[string]deviceProfile{}}, nil
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var file ProfileFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = toml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}

	return parseProfiles(file)
}

func parseProfiles(file ProfileFile) (*Profiles, error) {
	profiles := &Profiles{devices: make(map[string]deviceProfile, len(file.Devices))}
	for id, p := range file.Devices {
		if len(p.Preview) == 0 {
			return nil, fmt.Errorf("device %s: no preview sizes", id)
		}
		preview, err := resolution.ParseAll(p.Preview)
		if err != nil {
			return nil, fmt.Errorf("device %s preview: %w", id, err)
		}
		picture, err := resolution.ParseAll(p.Picture)
		if err != nil {
			return nil, fmt.Errorf("device %s picture: %w", id, err)
		}

		name := p.Name
		if name == "" {
			name = id
		}
		profiles.devices[id] = deviceProfile{
			name:    name,
			preview: dedupe(preview),
			picture: dedupe(picture),
		}
	}
	return profiles, nil
}

// ProfileSource serves devices declared in a profile file.
type ProfileSource struct {
	path     string
	mu       sync.RWMutex
	profiles *Profiles
	watcher  *config.Watcher[*Profiles]
	logger   *slog.Logger
}

// NewProfileSource loads path and returns a source serving its devices.
func NewProfileSource(path string) (*ProfileSource, error) {
	profiles, err := LoadProfiles(path)
	if err != nil {
		return nil, err
	}

	s := &ProfileSource{
		path:     path,
		profiles: profiles,
		logger:   logging.GetLogger("devices"),
	}
	s.logger.Info("Loaded device profiles", "path", path, "devices", profiles.Len())
	return s, nil
}

// Path returns the profile file path.
func (s *ProfileSource) Path() string {
	return s.path
}

// Reload re-reads the profile file. On error the previous profiles stay active.
func (s *ProfileSource) Reload() error {
	profiles, err := LoadProfiles(s.path)
	if err != nil {
		return err
	}
	s.swap(profiles)
	return nil
}

func (s *ProfileSource) swap(profiles *Profiles) {
	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()
}

// Watch reloads the profiles whenever the file changes and publishes a
// ProfilesReloadedEvent on bus after each successful reload. bus may be nil.
func (s *ProfileSource) Watch(bus *events.Bus, debounce time.Duration) error {
	opts := []config.WatcherOption[*Profiles]{}
	if debounce > 0 {
		opts = append(opts, config.WithDebounce[*Profiles](debounce))
	}

	w := config.NewConfigWatcher(s.path, LoadProfiles, s.logger, opts...)
	w.OnReload(func(profiles *Profiles) {
		s.swap(profiles)
		s.logger.Info("Reloaded device profiles", "path", s.path, "devices", profiles.Len())
		if bus != nil {
			bus.Publish(events.ProfilesReloadedEvent{
				Path:      s.path,
				Devices:   profiles.Len(),
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}
	})
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch profile file: %w", err)
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// Close stops watching the profile file.
func (s *ProfileSource) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop()
}

// FindDevices lists declared devices sorted by ID.
func (s *ProfileSource) FindDevices() ([]DeviceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]DeviceInfo, 0, len(s.profiles.devices))
	for id, p := range s.profiles.devices {
		devices = append(devices, DeviceInfo{
			DeviceID:   id,
			DeviceName: p.name,
			Source:     SourceProfile,
		})
	}
	slices.SortFunc(devices, func(a, b DeviceInfo) int {
		return strings.Compare(a.DeviceID, b.DeviceID)
	})
	return devices, nil
}

// PreviewSizes returns the declared preview sizes.
func (s *ProfileSource) PreviewSizes(deviceID string) ([]resolution.Resolution, error) {
	p, err := s.lookup(deviceID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.preview), nil
}

// PictureSizes returns the declared picture sizes, possibly empty.
func (s *ProfileSource) PictureSizes(deviceID string) ([]resolution.Resolution, error) {
	p, err := s.lookup(deviceID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.picture), nil
}

func (s *ProfileSource) lookup(deviceID string) (deviceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles.devices[deviceID]
	if !ok {
		return deviceProfile{}, notFound(deviceID)
	}
	return p, nil
}
