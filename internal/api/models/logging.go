package models

type LogLevelsData struct {
	Levels map[string]string `json:"levels" example:"{\"capture\":\"debug\",\"http\":\"info\"}" doc:"Effective level per module"`
}

type LogLevelsResponse struct {
	Body LogLevelsData
}

type SetLogLevelRequest struct {
	Module string `path:"module" example:"capture" doc:"Logger module name"`
	Body   struct {
		Level string `json:"level" enum:"debug,info,warn,error" example:"debug" doc:"New level"`
	}
}
