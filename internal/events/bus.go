package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its concrete type.
// Publishing on a nil bus does nothing.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case SelectionEvent:
		event.Publish(b.dispatcher, e)
	case NegotiatedEvent:
		event.Publish(b.dispatcher, e)
	case NegotiationFailedEvent:
		event.Publish(b.dispatcher, e)
	case ProfilesReloadedEvent:
		event.Publish(b.dispatcher, e)
	case DevicesChangedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type in its signature and
// returns an unsubscribe function.
//
//	unsub := bus.Subscribe(func(e NegotiatedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	if b == nil {
		return func() {}
	}
	switch h := handler.(type) {
	case func(SelectionEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(NegotiatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(NegotiationFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ProfilesReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DevicesChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
