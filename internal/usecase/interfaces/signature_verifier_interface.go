package interfaces

import (
	"context"

	"pagos_xpto/internal/domain/entities"
)

// ISignatureVerifier proves that an inbound webhook notification originated
// from the provider.
//
// Verify is fail-closed: any transport, auth, or parse failure on the
// verification path reports false rather than an error, so webhook handling
// never crashes on an unreachable or malformed verification call.
type ISignatureVerifier interface {
	Verify(ctx context.Context, envelope entities.WebhookEnvelope) bool
}
