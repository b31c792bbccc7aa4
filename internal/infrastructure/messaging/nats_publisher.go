package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// eventEnvelope is the wire frame put on the bus. Every publish gets a fresh
// delivery id so consumers can dedup on their side as well.
type eventEnvelope struct {
	ID         string               `json:"id"`
	Subject    string               `json:"subject"`
	OccurredAt time.Time            `json:"occurred_at"`
	Data       entities.DomainEvent `json:"data"`
}

// NatsEventPublisher publishes domain events to NATS, fire-and-forget.
// Delivery guarantees past the publish belong to the bus.
type NatsEventPublisher struct {
	conn *nats.Conn
}

var _ interfaces.IEventPublisher = (*NatsEventPublisher)(nil)

func NewNatsEventPublisher(url string) (*NatsEventPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("pagos-xpto"))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	log.Printf("[messaging][nats] connected url=%s", url)
	return &NatsEventPublisher{conn: conn}, nil
}

func (p *NatsEventPublisher) Publish(ctx context.Context, subject string, event entities.DomainEvent) error {
	env := eventEnvelope{
		ID:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
		Data:       event,
	}
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding event envelope: %w", err)
	}
	if err := p.conn.Publish(subject, b); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Close drains pending publishes before disconnecting.
func (p *NatsEventPublisher) Close() error {
	return p.conn.Drain()
}
