package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "3000")
	t.Setenv("PAYPAL_CLIENT_ID", "client-1")
	t.Setenv("PAYPAL_SECRET", "secret-1")
	t.Setenv("PAYPAL_SUCCESS_URL", "https://s.test/payments/success")
	t.Setenv("PAYPAL_CANCEL_URL", "https://s.test/payments/cancel")
	t.Setenv("PAYPAL_WEBHOOK_ID", "wh-1")
	t.Setenv("PAYPAL_API_URL", "https://api.sandbox.provider.test")
	t.Setenv("PAYPAL_API_VERIFY_WEBHOOK_SIGNATURE", "/v1/notifications/verify-webhook-signature")
	t.Setenv("NATS_URL", "nats://localhost:4222")
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAYPAL_CLIENT_ID", "")
	t.Setenv("PAYPAL_WEBHOOK_ID", " ")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing vars")
	}
	msg := err.Error()
	if !strings.Contains(msg, "PAYPAL_CLIENT_ID") || !strings.Contains(msg, "PAYPAL_WEBHOOK_ID") {
		t.Fatalf("expected both missing vars named, got %q", msg)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid port")
	}

	t.Setenv("PORT", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative port")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BRAND_NAME", "")
	t.Setenv("PROCESSED_EVENTS_TABLE", "")
	t.Setenv("AWS_REGION", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("expected port 3000, got %d", cfg.Port)
	}
	if cfg.BrandName != "Mi Tienda" {
		t.Fatalf("unexpected brand name: %s", cfg.BrandName)
	}
	if cfg.ProcessedEventsTable != "processed_events" {
		t.Fatalf("unexpected table default: %s", cfg.ProcessedEventsTable)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Fatalf("unexpected region default: %s", cfg.AWSRegion)
	}
}

func TestLoad_FullEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BRAND_NAME", "Loja Teste")
	t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PayPalClientID != "client-1" || cfg.PayPalSecret != "secret-1" {
		t.Fatalf("credentials not loaded: %+v", cfg)
	}
	if cfg.VerifySignaturePath != "/v1/notifications/verify-webhook-signature" {
		t.Fatalf("verify path not loaded: %s", cfg.VerifySignaturePath)
	}
	if cfg.BrandName != "Loja Teste" {
		t.Fatalf("brand override ignored: %s", cfg.BrandName)
	}
	if cfg.DynamoDBEndpoint != "http://dynamodb:8000" {
		t.Fatalf("endpoint not loaded: %s", cfg.DynamoDBEndpoint)
	}
}
