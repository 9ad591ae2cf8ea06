package registration

import (
	"fmt"
	"strings"
)

type ErrorReason string

const (
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_REGISTRATION_DOES_NOT_EXIST     ErrorReason = "REGISTRATION_DOES_NOT_EXIST"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_TIMEOUT                         ErrorReason = "TIMEOUT"
	REASON_ALREADY_PAID                    ErrorReason = "ALREADY_PAID"
	REASON_INVALID_REGISTRATION            ErrorReason = "INVALID_REGISTRATION"
	REASON_NOT_ON_REVIEW_STEP              ErrorReason = "NOT_ON_REVIEW_STEP"
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

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewRegistrationDoesNotExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_DOES_NOT_EXIST, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewTimeoutError(message string) *Error {
	return newRegistrationError(REASON_TIMEOUT, message, nil)
}

func NewAlreadyPaidError(id string, cause error) *Error {
	return newRegistrationError(REASON_ALREADY_PAID, fmt.Sprintf("Registration %q is already paid", id), cause)
}

func NewInvalidRegistrationError(cause *ValidationError) *Error {
	return newRegistrationError(REASON_INVALID_REGISTRATION, "Registration failed validation", cause)
}

func NewNotOnReviewStepError(step int) *Error {
	return newRegistrationError(REASON_NOT_ON_REVIEW_STEP, fmt.Sprintf("Can only submit from step %d, currently on step %d", REVIEW_STEP, step), nil)
}

// ValidationError lists the identifiers of the fields that failed a step's rules.
type ValidationError struct {
	Step   int
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, string(f))
	}

	return fmt.Sprintf("step %d has invalid fields: %s", e.Step, strings.Join(names, ", "))
}
