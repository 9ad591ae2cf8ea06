package payment

import "fmt"

type ErrorReason string

const (
	REASON_INVALID_AMOUNT                ErrorReason = "INVALID_AMOUNT"
	REASON_AMOUNT_MISMATCH               ErrorReason = "AMOUNT_MISMATCH"
	REASON_REGISTRATION_LOOKUP_FAILED    ErrorReason = "REGISTRATION_LOOKUP_FAILED"
	REASON_REGISTRATION_ALREADY_PAID     ErrorReason = "REGISTRATION_ALREADY_PAID"
	REASON_GATEWAY_FAILURE               ErrorReason = "GATEWAY_FAILURE"
	REASON_MISSING_SECRET                ErrorReason = "MISSING_SECRET"
	REASON_MISSING_REGISTRATION_ID       ErrorReason = "MISSING_REGISTRATION_ID"
	REASON_FAILED_TO_UPDATE_REGISTRATION ErrorReason = "FAILED_TO_UPDATE_REGISTRATION"
	REASON_INVALID_WEBHOOK_SIGNATURE     ErrorReason = "INVALID_WEBHOOK_SIGNATURE"
	REASON_INVALID_WEBHOOK_PAYLOAD       ErrorReason = "INVALID_WEBHOOK_PAYLOAD"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newPaymentError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidAmountError(message string) *Error {
	return newPaymentError(REASON_INVALID_AMOUNT, message, nil)
}

func NewAmountMismatchError(requested float64, expected int64) *Error {
	return newPaymentError(REASON_AMOUNT_MISMATCH, fmt.Sprintf("Requested amount %v does not match registration total %d", requested, expected), nil)
}

func NewRegistrationLookupFailedError(id string, cause error) *Error {
	return newPaymentError(REASON_REGISTRATION_LOOKUP_FAILED, fmt.Sprintf("Failed to load registration %q", id), cause)
}

func NewRegistrationAlreadyPaidError(id string) *Error {
	return newPaymentError(REASON_REGISTRATION_ALREADY_PAID, fmt.Sprintf("Registration %q is already paid", id), nil)
}

func NewGatewayFailureError(cause error) *Error {
	return newPaymentError(REASON_GATEWAY_FAILURE, cause.Error(), cause)
}

func NewMissingSecretError(message string) *Error {
	return newPaymentError(REASON_MISSING_SECRET, message, nil)
}

func NewMissingRegistrationIDError() *Error {
	return newPaymentError(REASON_MISSING_REGISTRATION_ID, "Registration id is required", nil)
}

func NewFailedToUpdateRegistrationError(id string, cause error) *Error {
	return newPaymentError(REASON_FAILED_TO_UPDATE_REGISTRATION, fmt.Sprintf("Payment verified but registration %q was not updated", id), cause)
}

func NewInvalidWebhookSignatureError() *Error {
	return newPaymentError(REASON_INVALID_WEBHOOK_SIGNATURE, "Webhook signature does not match payload", nil)
}

func NewInvalidWebhookPayloadError(message string, cause error) *Error {
	return newPaymentError(REASON_INVALID_WEBHOOK_PAYLOAD, message, cause)
}
