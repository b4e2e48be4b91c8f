package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/framefit/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of selections, negotiations, device changes and profile reloads",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"selection":          events.SelectionEvent{},
		"negotiated":         events.NegotiatedEvent{},
		"negotiation-failed": events.NegotiationFailedEvent{},
		"profiles-reloaded":  events.ProfilesReloadedEvent{},
		"devices-changed":    events.DevicesChangedEvent{},
		"connected":          events.ConnectedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 16)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.SelectionEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.NegotiatedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.NegotiationFailedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.ProfilesReloadedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.DevicesChangedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		if err := send.Data(events.ConnectedEvent{
			Message:   "SSE connection established",
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
