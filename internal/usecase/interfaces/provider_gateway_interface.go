package interfaces

import (
	"context"
	"encoding/json"

	"pagos_xpto/internal/domain/entities"
)

// IProviderGateway abstracts the external payment provider (PayPal).
//
// The service uses it to create orders for hosted checkout, capture an
// approved order via the redirect token, and fetch the full payment detail
// referenced by a webhook event.
type IProviderGateway interface {
	CreateOrder(ctx context.Context, draft entities.OrderDraft) (entities.CreatedOrder, error)
	CaptureOrder(ctx context.Context, token string) (entities.CaptureResult, error)
	GetCaptureDetail(ctx context.Context, captureID string) (json.RawMessage, error)
}
