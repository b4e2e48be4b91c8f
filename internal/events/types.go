package events

// Event type constants for kelindar/event.
const (
	TypeSelection uint32 = iota + 1
	TypeNegotiated
	TypeNegotiationFailed
	TypeProfilesReloaded
	TypeDevicesChanged
	TypeConnected
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SelectionEvent is published for ad-hoc selections made through the API.
type SelectionEvent struct {
	Candidates []string `json:"candidates" example:"[\"1920x1080\",\"1280x720\"]" doc:"Candidate resolutions"`
	Target     string   `json:"target" example:"1080x1920" doc:"Requested resolution"`
	Resolution string   `json:"resolution" example:"1920x1080" doc:"Chosen resolution"`
	Tier       string   `json:"tier" example:"exact" doc:"Rule that chose the resolution"`
	Timestamp  string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SelectionEvent.
func (e SelectionEvent) Type() uint32 { return TypeSelection }

// NegotiatedEvent is published when preview and picture sizes were picked for a device.
type NegotiatedEvent struct {
	DeviceID    string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	Target      string `json:"target" example:"1080x1920" doc:"Requested resolution"`
	Preview     string `json:"preview" example:"1920x1080" doc:"Chosen preview size"`
	PreviewTier string `json:"preview_tier" example:"exact" doc:"Rule that chose the preview size"`
	Picture     string `json:"picture" example:"1920x1080" doc:"Chosen picture size"`
	PictureTier string `json:"picture_tier" example:"preview" doc:"Rule that chose the picture size"`
	Timestamp   string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NegotiatedEvent.
func (e NegotiatedEvent) Type() uint32 { return TypeNegotiated }

// NegotiationFailedEvent is published when a device could not be configured.
type NegotiationFailedEvent struct {
	DeviceID  string `json:"device_id" example:"cam0" doc:"Stable device identifier"`
	Target    string `json:"target" example:"1080x1920" doc:"Requested resolution"`
	Error     string `json:"error" example:"DEVICE_NOT_FOUND: no such device" doc:"Failure description"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NegotiationFailedEvent.
func (e NegotiationFailedEvent) Type() uint32 { return TypeNegotiationFailed }

// ProfilesReloadedEvent is published after the device profile file was reloaded.
type ProfilesReloadedEvent struct {
	Path      string `json:"path" example:"profiles.toml" doc:"Profile file path"`
	Devices   int    `json:"devices" example:"2" doc:"Number of devices declared"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ProfilesReloadedEvent.
func (e ProfilesReloadedEvent) Type() uint32 { return TypeProfilesReloaded }

// DevicesChangedEvent is published when capture devices appear or disappear.
type DevicesChangedEvent struct {
	Added     []string `json:"added" example:"[\"usb-046d_HD_Pro_Webcam_C920-video-index0\"]" doc:"Device IDs that appeared"`
	Removed   []string `json:"removed" example:"[]" doc:"Device IDs that disappeared"`
	Count     int      `json:"count" example:"1" doc:"Number of devices after the change"`
	Timestamp string   `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for DevicesChangedEvent.
func (e DevicesChangedEvent) Type() uint32 { return TypeDevicesChanged }

// ConnectedEvent opens every SSE stream so clients see the connection before
// any bus traffic. It is never published on the bus.
type ConnectedEvent struct {
	Message   string `json:"message" example:"SSE connection established" doc:"Connection status"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConnectedEvent.
func (e ConnectedEvent) Type() uint32 { return TypeConnected }
