package response

import (
	"pagos_xpto/internal/domain/entities"
)

type CheckoutSessionResponse struct {
	CancelURL  string `json:"cancelUrl"`
	SuccessURL string `json:"successUrl"`
	URL        string `json:"url"`
}

func FromCheckoutSession(s entities.CheckoutSession) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		CancelURL:  s.CancelURL,
		SuccessURL: s.SuccessURL,
		URL:        s.URL,
	}
}

// RedirectResponse answers the provider's success/cancel redirects.
type RedirectResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// WebhookAckResponse acknowledges a verified webhook delivery, echoing the
// transmission signature.
type WebhookAckResponse struct {
	Sig string `json:"sig"`
}
