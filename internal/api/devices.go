package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/framefit/internal/api/models"
	"github.com/smazurov/framefit/internal/resolution"
)

func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List Devices",
		Description: "List capture devices from V4L2 and the profile file",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(_ context.Context, _ *struct{}) (*models.DeviceListResponse, error) {
		found, err := s.negotiator.Devices()
		if err != nil {
			return nil, mapError(err)
		}

		list := make([]models.DeviceData, len(found))
		for i, d := range found {
			list[i] = models.DeviceData{
				DeviceID:   d.DeviceID,
				DeviceName: d.DeviceName,
				DevicePath: d.DevicePath,
				Source:     d.Source,
			}
		}
		return &models.DeviceListResponse{
			Body: models.DeviceListData{Devices: list, Count: len(list)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-device-sizes",
		Method:      http.MethodGet,
		Path:        "/api/devices/{device_id}/sizes",
		Summary:     "Device Sizes",
		Description: "Get the preview and picture sizes a device reports",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 500},
	}, func(_ context.Context, input *models.DevicePathInput) (*models.DeviceSizesResponse, error) {
		preview, picture, err := s.negotiator.Sizes(input.DeviceID)
		if err != nil {
			return nil, mapError(err)
		}
		return &models.DeviceSizesResponse{
			Body: models.DeviceSizesData{
				DeviceID: input.DeviceID,
				Preview:  resolution.Strings(preview),
				Picture:  resolution.Strings(picture),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "negotiate-device",
		Method:      http.MethodPost,
		Path:        "/api/devices/{device_id}/negotiate",
		Summary:     "Negotiate Sizes",
		Description: "Pick the preview size for the target and a picture size matching it",
		Tags:        []string{"devices"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 422, 500},
	}, func(_ context.Context, input *models.NegotiateRequest) (*models.NegotiationResponse, error) {
		var target resolution.Target
		if input.Body.Target != "" {
			parsed, err := resolution.Parse(input.Body.Target)
			if err != nil {
				return nil, mapError(err)
			}
			target = parsed
		}

		result, err := s.negotiator.Negotiate(input.DeviceID, target)
		if err != nil {
			return nil, mapError(err)
		}
		return &models.NegotiationResponse{
			Body: models.NegotiationData{
				DeviceID: result.DeviceID,
				Target:   result.Target.String(),
				Preview:  toSelectionData(result.Preview),
				Picture:  toSelectionData(result.Picture),
			},
		}, nil
	})
}
