package sse

import (
	"context"

	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// personalTypes are delivered only to the account named in the event metadata
var personalTypes = []event.Type{
	event.CasinoResolved,
	event.CaseRevealed,
	event.AdminGrant,
	event.InventorySold,
}

// publicTypes are delivered to every connected client
var publicTypes = []event.Type{
	event.ListingCreated,
	event.ListingSold,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for every forwarded event type
func (s *Subscriber) Subscribe(ctx context.Context) {
	names := make([]string, 0, len(personalTypes)+len(publicTypes))
	for _, t := range personalTypes {
		s.bus.Subscribe(t, s.handlePersonal)
		names = append(names, string(t))
	}
	for _, t := range publicTypes {
		s.bus.Subscribe(t, s.handlePublic)
		names = append(names, string(t))
	}
	logger.FromContext(ctx).Info(LogMsgSubscribed, "types", names)
}

func (s *Subscriber) handlePersonal(ctx context.Context, evt event.Event) error {
	identity, _ := evt.GetMetadataValue(event.MetadataKeyIdentity).(string)
	if identity == "" {
		return nil
	}
	s.hub.Send(identity, string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, "identity", identity)
	return nil
}

func (s *Subscriber) handlePublic(ctx context.Context, evt event.Event) error {
	s.hub.Send("", string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
