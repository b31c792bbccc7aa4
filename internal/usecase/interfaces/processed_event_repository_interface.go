package interfaces

import (
	"context"
	"time"
)

// IProcessedEventRepository is the durable set of already-dispatched provider
// event ids, keyed by the provider's event id.
//
// Record has record-if-absent semantics: it returns true when the id was
// recorded now, false (without error) when the id was already present.
type IProcessedEventRepository interface {
	Record(ctx context.Context, eventID string, receivedAt time.Time) (bool, error)
	Delete(ctx context.Context, eventID string) error
}
