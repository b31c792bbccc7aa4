package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything read from the environment at startup. It is
// validated once by Load and passed explicitly to constructors; nothing else
// in the service reads env vars.
type Config struct {
	Port int

	PayPalClientID      string
	PayPalSecret        string
	SuccessURL          string
	CancelURL           string
	WebhookID           string
	APIBaseURL          string
	VerifySignaturePath string
	BrandName           string

	NATSURL string

	ProcessedEventsTable string
	AWSRegion            string
	AWSAccessKeyID       string
	AWSSecretAccessKey   string
	DynamoDBEndpoint     string
}

// Load reads and validates the environment. A missing required variable is a
// ConfigError: the caller is expected to fail fast and not start the process.
func Load() (Config, error) {
	var missing []string

	required := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		PayPalClientID:      required("PAYPAL_CLIENT_ID"),
		PayPalSecret:        required("PAYPAL_SECRET"),
		SuccessURL:          required("PAYPAL_SUCCESS_URL"),
		CancelURL:           required("PAYPAL_CANCEL_URL"),
		WebhookID:           required("PAYPAL_WEBHOOK_ID"),
		APIBaseURL:          required("PAYPAL_API_URL"),
		VerifySignaturePath: required("PAYPAL_API_VERIFY_WEBHOOK_SIGNATURE"),
		NATSURL:             required("NATS_URL"),

		BrandName:            getenvDefault("BRAND_NAME", "Mi Tienda"),
		ProcessedEventsTable: getenvDefault("PROCESSED_EVENTS_TABLE", "processed_events"),
		AWSRegion:            getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:       getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey:   getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:     os.Getenv("DYNAMODB_ENDPOINT"),
	}

	portRaw := required("PORT")
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config validation error: missing %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portRaw)
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("config validation error: PORT must be a positive number, got %q", portRaw)
	}
	cfg.Port = port

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
