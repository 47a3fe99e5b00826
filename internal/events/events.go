package events

import "time"

// Event types
const (
	UserCreated = "user.created"

	ReceiptCreated = "receipt.created"
	ReceiptUpdated = "receipt.updated"
	ReceiptDeleted = "receipt.deleted"
)

// Stream names
const (
	UserEventsStream    = "user.events"
	ReceiptEventsStream = "receipt.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type ReceiptCreatedEvent struct {
	ReceiptID string `json:"receiptId"`
	OwnerID   string `json:"ownerId"`
	Type      string `json:"receiptType"`
	Title     string `json:"title"`
	HasLogo   bool   `json:"hasLogo"`
}

type ReceiptUpdatedEvent struct {
	ReceiptID string `json:"receiptId"`
	OwnerID   string `json:"ownerId"`
	Type      string `json:"receiptType"`
}

type ReceiptDeletedEvent struct {
	ReceiptID string `json:"receiptId"`
	OwnerID   string `json:"ownerId"`
}
