package entities

import (
	"encoding/json"
	"time"
)

// WebhookEnvelope is the transmission metadata plus raw body the provider
// sends with each event notification. Ownership is request-scoped; nothing
// here is persisted.
type WebhookEnvelope struct {
	TransmissionID string
	Signature      string
	Timestamp      string
	CertURL        string
	AuthAlgo       string
	Body           json.RawMessage
}

// ProviderEventResource is the resource section of a provider event.
// CustomID carries back the correlation token supplied at session creation.
type ProviderEventResource struct {
	ID       string `json:"id"`
	CustomID string `json:"custom_id"`
}

// ProviderEvent is the subset of the provider's webhook event body this
// service reads. The raw body stays in the envelope for verification.
type ProviderEvent struct {
	ID        string                `json:"id"`
	EventType string                `json:"event_type"`
	Resource  ProviderEventResource `json:"resource"`
}

// DomainEventType enumerates the internal events this service emits.
type DomainEventType string

const (
	DomainEventPaymentCaptured DomainEventType = "payment.captured"
)

// DomainEvent is the internal event published to the bus once a provider
// event has been verified and resolved.
//
// ReceiptData keeps the provider's full payment detail (JSON) for
// downstream consumers; schemas vary between provider API versions, so it
// is carried raw.
type DomainEvent struct {
	Type        DomainEventType `json:"type"`
	PaymentID   string          `json:"paymentId"`
	OrderID     string          `json:"orderId"`
	ReceiptURL  *string         `json:"receiptUrl"`
	ReceiptData json.RawMessage `json:"receiptData,omitempty"`
}

// ProcessedEvent marks a provider event id as dispatched. The durable set of
// these records is what makes webhook handling idempotent under the
// provider's at-least-once redelivery.
type ProcessedEvent struct {
	EventID    string    `json:"event_id"`
	ReceivedAt time.Time `json:"received_at"`
}
