package paypal

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase/interfaces"
)

// SignatureVerifier validates webhook envelopes against PayPal's
// verify-webhook-signature endpoint. Verification happens synchronously on
// every delivery; there is no caching of results and no local cryptography.
type SignatureVerifier struct {
	client     *Client
	webhookID  string
	verifyPath string
}

var _ interfaces.ISignatureVerifier = (*SignatureVerifier)(nil)

func NewSignatureVerifier(client *Client, webhookID, verifyPath string) *SignatureVerifier {
	return &SignatureVerifier{client: client, webhookID: webhookID, verifyPath: verifyPath}
}

// Verify is fail-closed: a failed token exchange, an unreachable endpoint or
// an unparseable response all report false. Webhook handling must never
// crash because the verification path is down.
func (v *SignatureVerifier) Verify(ctx context.Context, envelope entities.WebhookEnvelope) bool {
	token, err := v.client.requestToken(ctx)
	if err != nil {
		log.Printf("[paypal][verifier] token exchange failed transmission_id=%s err=%v", envelope.TransmissionID, err)
		return false
	}

	body := verifySignatureRequest{
		AuthAlgo:         envelope.AuthAlgo,
		CertURL:          envelope.CertURL,
		TransmissionID:   envelope.TransmissionID,
		TransmissionSig:  envelope.Signature,
		TransmissionTime: envelope.Timestamp,
		WebhookID:        v.webhookID,
		WebhookEvent:     envelope.Body,
	}

	raw, err := v.client.doJSON(ctx, http.MethodPost, v.verifyPath, token, body)
	if err != nil {
		log.Printf("[paypal][verifier] verification call failed transmission_id=%s err=%v", envelope.TransmissionID, err)
		return false
	}

	var resp verifySignatureResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Printf("[paypal][verifier] verification response unmarshal failed transmission_id=%s err=%v", envelope.TransmissionID, err)
		return false
	}

	if resp.VerificationStatus != verificationStatusSuccess {
		log.Printf("[paypal][verifier] verification rejected transmission_id=%s status=%s", envelope.TransmissionID, resp.VerificationStatus)
		return false
	}
	return true
}
