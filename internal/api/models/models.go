package models

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go compiler version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Target platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Selection models
type SelectRequestData struct {
	Candidates []string `json:"candidates" minItems:"1" example:"[\"1920x1080\",\"1280x720\",\"640x480\"]" doc:"Candidate resolutions as WIDTHxHEIGHT"`
	Target     string   `json:"target" example:"1080x1920" doc:"Requested resolution as WIDTHxHEIGHT; orientation is ignored"`
}

type SelectRequest struct {
	Body SelectRequestData
}

type SelectionData struct {
	Resolution string `json:"resolution" example:"1920x1080" doc:"Chosen resolution"`
	Tier       string `json:"tier" enum:"exact,aspect,fallback,preview" example:"exact" doc:"Rule that chose the resolution"`
}

type SelectResponse struct {
	Body SelectionData
}
