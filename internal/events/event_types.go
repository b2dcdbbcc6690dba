package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStoreCreated   EventType = "store.created"
	EventStoreUpdated   EventType = "store.updated"
	EventStoreDeleted   EventType = "store.deleted"
	EventProductCreated EventType = "product.created"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
)

// StoreEvents and ProductEvents group the types by aggregate.
var (
	StoreEvents   = []EventType{EventStoreCreated, EventStoreUpdated, EventStoreDeleted}
	ProductEvents = []EventType{EventProductCreated, EventProductUpdated, EventProductDeleted}
)

// Event represents a catalog change emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StorePayload identifies the store a change applies to. ProductIDs lists the
// products removed along with a deleted store.
type StorePayload struct {
	StoreID    string   `json:"store_id"`
	OwnerID    string   `json:"owner_id"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

// ProductPayload identifies the product a change applies to. PreviousStoreID
// is set when an update moved the product to another store.
type ProductPayload struct {
	ProductID       string `json:"product_id"`
	StoreID         string `json:"store_id"`
	PreviousStoreID string `json:"previous_store_id,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, actor string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
