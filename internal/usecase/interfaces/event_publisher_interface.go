package interfaces

import (
	"context"

	"pagos_xpto/internal/domain/entities"
)

// IEventPublisher publishes domain events to the outbound messaging
// collaborator. Delivery guarantees past the publish belong to the bus.
type IEventPublisher interface {
	Publish(ctx context.Context, subject string, event entities.DomainEvent) error
}
