package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Economy event types
const (
	AccountRegistered Type = Type(domain.EventTypeAccountRegistered)
	ClickResolved     Type = Type(domain.EventTypeClickResolved)
	ItemBought        Type = Type(domain.EventTypeItemBought)
	InventorySold     Type = Type(domain.EventTypeInventorySold)
	CasinoWagered     Type = Type(domain.EventTypeCasinoWagered)
	CasinoResolved    Type = Type(domain.EventTypeCasinoResolved)
	CasePackBought    Type = Type(domain.EventTypeCasePackBought)
	CaseOpened        Type = Type(domain.EventTypeCaseOpened)
	CaseRevealed      Type = Type(domain.EventTypeCaseRevealed)
	ListingCreated    Type = Type(domain.EventTypeListingCreated)
	ListingSold       Type = Type(domain.EventTypeListingSold)
	AdminGrant        Type = Type(domain.EventTypeAdminGrant)
)

// AllTypes lists every event type the engine publishes
var AllTypes = []Type{
	AccountRegistered, ClickResolved, ItemBought, InventorySold,
	CasinoWagered, CasinoResolved, CasePackBought, CaseOpened,
	CaseRevealed, ListingCreated, ListingSold, AdminGrant,
}

// New builds an event of the current schema version
func New(eventType Type, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// NewForAccount builds an event tagged with the acting account so stream
// subscribers can filter without decoding the payload
func NewForAccount(eventType Type, identity string, payload interface{}) Event {
	evt := New(eventType, payload)
	evt.Metadata = Metadata{MetadataKeyIdentity: identity}
	return evt
}

// NowUnix is the timestamp used in payloads
func NowUnix() int64 {
	return time.Now().Unix()
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the write side of the bus; services depend on this
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(context.Context, Event) error { return nil }
