package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/ascent-matrix/summit-registration/registration"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Key under which the registration id travels in order notes.
const REGISTRATION_ID_NOTE = "registrationId"

type Outcome string

const (
	OUTCOME_VERIFIED           Outcome = "VERIFIED"
	OUTCOME_ALREADY_VERIFIED   Outcome = "ALREADY_VERIFIED"
	OUTCOME_SIGNATURE_MISMATCH Outcome = "SIGNATURE_MISMATCH"
)

type VerifyRequest struct {
	OrderID        string
	PaymentID      string
	Signature      string
	RegistrationID string
}

type Verifier struct {
	secret        string
	webhookSecret string
	registrations registration.Repository
	logger        *slog.Logger
	now           func() time.Time
}

func NewVerifier(secret string, webhookSecret string, registrations registration.Repository, logger *slog.Logger) *Verifier {
	return &Verifier{
		secret:        secret,
		webhookSecret: webhookSecret,
		registrations: registrations,
		logger:        logger,
		now:           time.Now,
	}
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under the key secret.
func Sign(secret string, orderID string, paymentID string) string {
	return hmacHex(secret, []byte(orderID+"|"+paymentID))
}

func hmacHex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func signaturesMatch(expected string, given string) bool {
	return hmac.Equal([]byte(expected), []byte(given))
}

// Verify checks a checkout callback and marks the registration PAID when the signature matches.
// A mismatch is reported as an outcome, not an error.
func (v *Verifier) Verify(ctx context.Context, req VerifyRequest) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "Verifier.Verify", trace.WithAttributes(
		attribute.String("registration.id", req.RegistrationID),
		attribute.String("order.id", req.OrderID),
		attribute.String("payment.id", req.PaymentID),
	))
	defer span.End()

	outcome, err := v.verify(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "verification failed")
		return "", err
	}

	span.SetAttributes(attribute.String("verify.outcome", string(outcome)))
	return outcome, nil
}

func (v *Verifier) verify(ctx context.Context, req VerifyRequest) (Outcome, error) {
	if v.secret == "" {
		return "", NewMissingSecretError("Razorpay key secret is not configured")
	}

	expected := Sign(v.secret, req.OrderID, req.PaymentID)
	if !signaturesMatch(expected, req.Signature) {
		return OUTCOME_SIGNATURE_MISMATCH, nil
	}

	if req.RegistrationID == "" {
		return "", NewMissingRegistrationIDError()
	}

	return v.markPaid(ctx, req.RegistrationID, req.OrderID, req.PaymentID)
}

func (v *Verifier) markPaid(ctx context.Context, registrationID string, orderID string, paymentID string) (Outcome, error) {
	reg, err := v.registrations.GetRegistration(ctx, registrationID)
	if err != nil {
		return "", NewFailedToUpdateRegistrationError(registrationID, err)
	}

	if reg.IsPaid() && reg.PaymentID != nil && *reg.PaymentID == paymentID {
		return OUTCOME_ALREADY_VERIFIED, nil
	}

	err = v.registrations.UpdateRegistrationPayment(ctx, registrationID, registration.PaymentUpdate{
		PaymentStatus: registration.PAYMENT_PAID,
		PaymentID:     paymentID,
		OrderID:       orderID,
		PaidAt:        v.now(),
	})
	if err != nil {
		return "", NewFailedToUpdateRegistrationError(registrationID, err)
	}

	v.logger.InfoContext(ctx, "Registration marked as paid",
		slog.String("registrationId", registrationID),
		slog.String("orderId", orderID),
		slog.String("paymentId", paymentID),
	)

	return OUTCOME_VERIFIED, nil
}
