package payment

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/ascent-matrix/summit-registration/registration"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	WEBHOOK_EVENT_PAYMENT_CAPTURED = "payment.captured"
	WEBHOOK_EVENT_ORDER_PAID       = "order.paid"
)

type WebhookResult struct {
	Event          string
	RegistrationID string
	Outcome        Outcome
	// False when the event type is not one that confirms a payment.
	Handled bool
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity orderEntity `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Notes   notes  `json:"notes"`
}

type orderEntity struct {
	ID      string `json:"id"`
	Receipt string `json:"receipt"`
	Notes   notes  `json:"notes"`
}

// Razorpay sends notes as an empty JSON array when none were set.
type notes map[string]string

func (n *notes) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		*n = notes{}
		return nil
	}

	m := map[string]string{}
	err := json.Unmarshal(data, &m)
	if err != nil {
		return err
	}
	*n = m
	return nil
}

// VerifyWebhook authenticates a Razorpay webhook delivery and applies payment confirmations.
func (v *Verifier) VerifyWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	ctx, span := tracer.Start(ctx, "Verifier.VerifyWebhook", trace.WithAttributes(
		attribute.Int("webhook.payload.size", len(payload)),
	))
	defer span.End()

	result, err := v.verifyWebhook(ctx, payload, signature)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook verification failed")
		return WebhookResult{}, err
	}

	span.SetAttributes(
		attribute.String("webhook.event", result.Event),
		attribute.Bool("webhook.handled", result.Handled),
	)
	return result, nil
}

func (v *Verifier) verifyWebhook(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	if v.webhookSecret == "" {
		return WebhookResult{}, NewMissingSecretError("Razorpay webhook secret is not configured")
	}

	if !signaturesMatch(hmacHex(v.webhookSecret, payload), signature) {
		return WebhookResult{}, NewInvalidWebhookSignatureError()
	}

	var event webhookEvent
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return WebhookResult{}, NewInvalidWebhookPayloadError("Webhook body is not valid JSON", err)
	}

	result := WebhookResult{Event: event.Event}

	if event.Event != WEBHOOK_EVENT_PAYMENT_CAPTURED && event.Event != WEBHOOK_EVENT_ORDER_PAID {
		return result, nil
	}

	if event.Payload.Payment == nil {
		return WebhookResult{}, NewInvalidWebhookPayloadError("Webhook has no payment entity", nil)
	}
	payment := event.Payload.Payment.Entity

	registrationID := registrationIDFromWebhook(event)
	if registrationID == "" {
		return WebhookResult{}, NewMissingRegistrationIDError()
	}

	outcome, err := v.markPaid(ctx, registrationID, payment.OrderID, payment.ID)
	if err != nil {
		return WebhookResult{}, err
	}

	result.RegistrationID = registrationID
	result.Outcome = outcome
	result.Handled = true

	return result, nil
}

func registrationIDFromWebhook(event webhookEvent) string {
	if event.Payload.Payment != nil {
		if id := event.Payload.Payment.Entity.Notes[REGISTRATION_ID_NOTE]; id != "" {
			return id
		}
	}

	if event.Payload.Order != nil {
		order := event.Payload.Order.Entity
		if id := order.Notes[REGISTRATION_ID_NOTE]; id != "" {
			return id
		}
		if registration.IsValidID(order.Receipt) {
			return order.Receipt
		}
	}

	return ""
}
