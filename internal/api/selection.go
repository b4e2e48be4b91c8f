package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/framefit/internal/api/models"
	"github.com/smazurov/framefit/internal/devices"
	"github.com/smazurov/framefit/internal/resolution"
)

func (s *Server) registerSelectRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "select-resolution",
		Method:      http.MethodPost,
		Path:        "/api/select",
		Summary:     "Select Resolution",
		Description: "Pick the candidate that best fits the target: exact size in either orientation, then the largest candidate within 0.05 of the target aspect ratio, then the largest candidate",
		Tags:        []string{"selection"},
		Security:    withAuth(),
		Errors:      []int{401, 422},
	}, func(_ context.Context, input *models.SelectRequest) (*models.SelectResponse, error) {
		candidates, err := resolution.ParseAll(input.Body.Candidates)
		if err != nil {
			return nil, mapError(err)
		}
		target, err := resolution.Parse(input.Body.Target)
		if err != nil {
			return nil, mapError(err)
		}

		sel, err := s.negotiator.Select(candidates, target)
		if err != nil {
			return nil, mapError(err)
		}
		return &models.SelectResponse{Body: toSelectionData(sel)}, nil
	})
}

func toSelectionData(sel resolution.Selection) models.SelectionData {
	return models.SelectionData{
		Resolution: sel.Resolution.String(),
		Tier:       string(sel.Tier),
	}
}

// mapError converts domain errors to HTTP errors.
func mapError(err error) error {
	var devErr *devices.DeviceError
	switch {
	case errors.Is(err, resolution.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	case errors.As(err, &devErr) && devErr.Code == devices.ErrCodeNotFound:
		return huma.Error404NotFound(devErr.Message, err)
	default:
		return huma.Error500InternalServerError("Internal error", err)
	}
}
