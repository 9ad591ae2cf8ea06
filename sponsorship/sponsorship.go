package sponsorship

import (
	"context"
	"fmt"
	"time"
)

type Repository interface {
	SaveSponsorship(ctx context.Context, inquiry Inquiry) error
	GetSponsorship(ctx context.Context, id string) (Inquiry, error)
}

// Inquiry is stored as submitted. Only ID is interpreted.
type Inquiry struct {
	ID           string
	ContactName  string
	Organization string
	Email        string
	Phone        string
	Tier         string
	Message      string
	Details      map[string]string
	SubmittedAt  time.Time
}

type ErrorReason string

const (
	REASON_MISSING_ID                      ErrorReason = "MISSING_ID"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_SPONSORSHIP_DOES_NOT_EXIST      ErrorReason = "SPONSORSHIP_DOES_NOT_EXIST"
	REASON_TIMEOUT                         ErrorReason = "TIMEOUT"
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
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

func NewError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

// Submit stamps the inquiry and persists it.
func Submit(ctx context.Context, repo Repository, inquiry Inquiry, now time.Time) (Inquiry, error) {
	if inquiry.ID == "" {
		return Inquiry{}, NewError(REASON_MISSING_ID, "Sponsorship inquiry must have an id", nil)
	}

	inquiry.SubmittedAt = now

	err := repo.SaveSponsorship(ctx, inquiry)
	if err != nil {
		return Inquiry{}, err
	}

	return inquiry, nil
}
