package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"pagos_xpto/internal/domain/entities"
	"pagos_xpto/internal/usecase/interfaces"
)

var (
	ErrVerificationFailed = errors.New("webhook signature verification failed")
)

// SubjectPaymentSucceeded is the bus subject for captured payments.
const SubjectPaymentSucceeded = "payment.succeeded"

const eventTypePaymentCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

// WebhookOutcome reports what happened to a verified delivery. Unrecognized
// event types and duplicates are acknowledged without a publish; the webhook
// contract requires a 2xx either way to stop provider retries.
type WebhookOutcome struct {
	EventType string
	Published bool
	Duplicate bool
}

// IWebhookUseCase verifies an inbound notification and dispatches it.
type IWebhookUseCase interface {
	Handle(ctx context.Context, envelope entities.WebhookEnvelope) (WebhookOutcome, error)
}

type WebhookUseCase struct {
	verifier  interfaces.ISignatureVerifier
	gateway   interfaces.IProviderGateway
	publisher interfaces.IEventPublisher
	processed interfaces.IProcessedEventRepository
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(verifier interfaces.ISignatureVerifier, gateway interfaces.IProviderGateway, publisher interfaces.IEventPublisher, processed interfaces.IProcessedEventRepository) *WebhookUseCase {
	return &WebhookUseCase{verifier: verifier, gateway: gateway, publisher: publisher, processed: processed}
}

// Handle runs the verify → dedup → fetch → publish sequence for one
// delivery.
//
// The processed-event record is written before the publish (record-if-
// absent), which is what makes redelivery of the same event id publish at
// most once. If the detail fetch or the publish fails afterwards, the record
// is released best-effort so the provider's retry can go through.
func (u *WebhookUseCase) Handle(ctx context.Context, envelope entities.WebhookEnvelope) (WebhookOutcome, error) {
	if !u.verifier.Verify(ctx, envelope) {
		log.Printf("[webhook][usecase] signature verification failed transmission_id=%s", envelope.TransmissionID)
		return WebhookOutcome{}, ErrVerificationFailed
	}

	var event entities.ProviderEvent
	if err := json.Unmarshal(envelope.Body, &event); err != nil {
		log.Printf("[webhook][usecase] event body unmarshal failed transmission_id=%s err=%v", envelope.TransmissionID, err)
		return WebhookOutcome{}, fmt.Errorf("malformed webhook event: %w", err)
	}

	switch event.EventType {
	case eventTypePaymentCaptureCompleted:
		return u.dispatchCaptureCompleted(ctx, event)
	default:
		log.Printf("[webhook][usecase] event type %s not handled event_id=%s", event.EventType, event.ID)
		return WebhookOutcome{EventType: event.EventType}, nil
	}
}

func (u *WebhookUseCase) dispatchCaptureCompleted(ctx context.Context, event entities.ProviderEvent) (WebhookOutcome, error) {
	outcome := WebhookOutcome{EventType: event.EventType}

	recorded, err := u.processed.Record(ctx, event.ID, time.Now().UTC())
	if err != nil {
		log.Printf("[webhook][usecase] recording processed event failed event_id=%s err=%v", event.ID, err)
		return outcome, fmt.Errorf("recording processed event: %w", err)
	}
	if !recorded {
		log.Printf("[webhook][usecase] duplicate delivery skipped event_id=%s", event.ID)
		outcome.Duplicate = true
		return outcome, nil
	}

	detail, err := u.gateway.GetCaptureDetail(ctx, event.Resource.ID)
	if err != nil {
		log.Printf("[webhook][usecase] fetching capture detail failed event_id=%s capture_id=%s err=%v", event.ID, event.Resource.ID, err)
		u.release(ctx, event.ID)
		return outcome, fmt.Errorf("fetching capture detail: %w", err)
	}

	domainEvent := entities.DomainEvent{
		Type:        entities.DomainEventPaymentCaptured,
		PaymentID:   event.ID,
		OrderID:     event.Resource.CustomID,
		ReceiptData: detail,
	}
	if err := u.publisher.Publish(ctx, SubjectPaymentSucceeded, domainEvent); err != nil {
		log.Printf("[webhook][usecase] publish failed event_id=%s err=%v", event.ID, err)
		u.release(ctx, event.ID)
		return outcome, fmt.Errorf("publishing domain event: %w", err)
	}

	log.Printf("[webhook][usecase] dispatched event_id=%s order_id=%s subject=%s", event.ID, event.Resource.CustomID, SubjectPaymentSucceeded)
	outcome.Published = true
	return outcome, nil
}

// release frees the dedup record after a failed dispatch so the provider's
// redelivery is not suppressed. When the delete itself fails the event ends
// up at-most-once.
func (u *WebhookUseCase) release(ctx context.Context, eventID string) {
	if err := u.processed.Delete(ctx, eventID); err != nil {
		log.Printf("[webhook][usecase] releasing processed event failed event_id=%s err=%v", eventID, err)
	}
}
