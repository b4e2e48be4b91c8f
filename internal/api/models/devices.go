package models

// DeviceData describes a capture device.
type DeviceData struct {
	DeviceID   string `json:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
	DeviceName string `json:"device_name" example:"HD Pro Webcam C920" doc:"Human-readable device name"`
	DevicePath string `json:"device_path,omitempty" example:"/dev/video0" doc:"Device node, empty for profile devices"`
	Source     string `json:"source" enum:"v4l2,profile" example:"v4l2" doc:"Where the device was found"`
}

type DeviceListData struct {
	Devices []DeviceData `json:"devices" doc:"Known capture devices"`
	Count   int          `json:"count" example:"1" doc:"Number of devices"`
}

type DeviceListResponse struct {
	Body DeviceListData
}

// DevicePathInput selects a device by ID.
type DevicePathInput struct {
	DeviceID string `path:"device_id" example:"usb-046d_HD_Pro_Webcam_C920-video-index0" doc:"Stable device identifier"`
}

type DeviceSizesData struct {
	DeviceID string   `json:"device_id" example:"cam0" doc:"Stable device identifier"`
	Preview  []string `json:"preview" example:"[\"1920x1080\",\"1280x720\"]" doc:"Sizes usable for live preview"`
	Picture  []string `json:"picture" example:"[\"4000x3000\"]" doc:"Sizes usable for still capture"`
}

type DeviceSizesResponse struct {
	Body DeviceSizesData
}

type NegotiateRequestData struct {
	Target string `json:"target,omitempty" example:"1080x1920" doc:"Requested resolution; the server default is used when empty"`
}

type NegotiateRequest struct {
	DevicePathInput
	Body NegotiateRequestData `required:"false"`
}

type NegotiationData struct {
	DeviceID string        `json:"device_id" example:"cam0" doc:"Stable device identifier"`
	Target   string        `json:"target" example:"1080x1920" doc:"Target the sizes were chosen for"`
	Preview  SelectionData `json:"preview" doc:"Chosen preview size"`
	Picture  SelectionData `json:"picture" doc:"Chosen picture size"`
}

type NegotiationResponse struct {
	Body NegotiationData
}
