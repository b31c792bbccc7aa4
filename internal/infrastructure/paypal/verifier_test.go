package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pagos_xpto/internal/domain/entities"
)

const verifyPath = "/v1/notifications/verify-webhook-signature"

func sampleEnvelope() entities.WebhookEnvelope {
	return entities.WebhookEnvelope{
		TransmissionID: "t-1",
		Signature:      "sig-1",
		Timestamp:      "2026-01-02T15:04:05Z",
		CertURL:        "https://provider.test/cert.pem",
		AuthAlgo:       "SHA256withRSA",
		Body:           json.RawMessage(`{"id":"ev-1","event_type":"PAYMENT.CAPTURE.COMPLETED"}`),
	}
}

func newVerifierServer(t *testing.T, status string, capture *verifySignatureRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", tokenHandler(t))
	mux.HandleFunc("POST "+verifyPath, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decoding verify request: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(verifySignatureResponse{VerificationStatus: status})
	})
	return httptest.NewServer(mux)
}

func TestSignatureVerifier_Verify_Success(t *testing.T) {
	var sent verifySignatureRequest
	srv := newVerifierServer(t, "SUCCESS", &sent)
	defer srv.Close()

	v := NewSignatureVerifier(NewClient("client-1", "secret-1", srv.URL), "wh-1", verifyPath)
	if !v.Verify(context.Background(), sampleEnvelope()) {
		t.Fatalf("expected verification to pass")
	}

	if sent.WebhookID != "wh-1" {
		t.Fatalf("configured webhook id not sent: %s", sent.WebhookID)
	}
	if sent.TransmissionID != "t-1" || sent.TransmissionSig != "sig-1" || sent.TransmissionTime != "2026-01-02T15:04:05Z" {
		t.Fatalf("transmission headers not sent: %+v", sent)
	}
	if sent.CertURL != "https://provider.test/cert.pem" || sent.AuthAlgo != "SHA256withRSA" {
		t.Fatalf("cert/auth headers not sent: %+v", sent)
	}
	if string(sent.WebhookEvent) == "" {
		t.Fatalf("raw event body not sent")
	}
}

func TestSignatureVerifier_Verify_Rejected(t *testing.T) {
	srv := newVerifierServer(t, "FAILURE", nil)
	defer srv.Close()

	v := NewSignatureVerifier(NewClient("client-1", "secret-1", srv.URL), "wh-1", verifyPath)
	if v.Verify(context.Background(), sampleEnvelope()) {
		t.Fatalf("expected verification to fail for non-SUCCESS status")
	}
}

func TestSignatureVerifier_Verify_EndpointUnreachable(t *testing.T) {
	srv := newVerifierServer(t, "SUCCESS", nil)
	srv.Close() // connection refused from here on

	v := NewSignatureVerifier(NewClient("client-1", "secret-1", srv.URL), "wh-1", verifyPath)
	if v.Verify(context.Background(), sampleEnvelope()) {
		t.Fatalf("expected fail-closed verification when endpoint is unreachable")
	}
}

func TestSignatureVerifier_Verify_TokenExchangeFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	v := NewSignatureVerifier(NewClient("client-1", "secret-1", srv.URL), "wh-1", verifyPath)
	if v.Verify(context.Background(), sampleEnvelope()) {
		t.Fatalf("expected fail-closed verification when token exchange fails")
	}
}

func TestSignatureVerifier_Verify_MalformedResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", tokenHandler(t))
	mux.HandleFunc("POST "+verifyPath, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	v := NewSignatureVerifier(NewClient("client-1", "secret-1", srv.URL), "wh-1", verifyPath)
	if v.Verify(context.Background(), sampleEnvelope()) {
		t.Fatalf("expected fail-closed verification for malformed response")
	}
}
