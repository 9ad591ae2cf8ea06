package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
	"github.com/ascent-matrix/summit-registration/ptr"
	"github.com/ascent-matrix/summit-registration/registration"
	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostApiRegistrations(t *testing.T) {
	ctx := ctxWithLogger(context.Background(), noopLogger)
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("nil body", func(t *testing.T) {
		api := NewAPI(&mockDB{}, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations400JSONResponse:
			assert.Equal(t, EmptyBody, r.Code)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("saves a pending registration with the computed total", func(t *testing.T) {
		var saved registration.Registration
		db := &mockDB{
			SaveRegistrationFunc: func(ctx context.Context, reg registration.Registration) error {
				saved = reg
				return nil
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)
		api.now = func() time.Time { return now }

		body := validRegistrationInput()
		body.TicketCount = 3
		body.StallType = string(pricing.STALL_6X12)

		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations200JSONResponse:
			assert.True(t, registration.IsValidID(r.Id))
			assert.Equal(t, int64(11750), r.TotalAmount)
			assert.Equal(t, r.Id, saved.ID)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}

		assert.Equal(t, registration.PAYMENT_PENDING, saved.PaymentStatus)
		assert.Equal(t, int64(9000), saved.StallPrice)
		assert.Equal(t, 3, saved.AttendeeCount)
		assert.Equal(t, now, saved.RegistrationDate)
		assert.False(t, saved.CheckedIn)
		assert.Equal(t, registration.TICKET_TYPE, saved.TicketType)
	})

	t.Run("keeps the id chosen by the form", func(t *testing.T) {
		api := NewAPI(&mockDB{}, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		body := validRegistrationInput()
		body.Id = ptr.String("AM26-004213")

		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations200JSONResponse:
			assert.Equal(t, "AM26-004213", r.Id)
			assert.Equal(t, int64(2000), r.TotalAmount)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		api := NewAPI(&mockDB{}, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		body := validRegistrationInput()
		body.Id = ptr.String("REG-1")

		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations400JSONResponse:
			assert.Equal(t, InvalidId, r.Code)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("reports invalid fields without saving", func(t *testing.T) {
		db := &mockDB{
			SaveRegistrationFunc: func(ctx context.Context, reg registration.Registration) error {
				t.Fatal("should not save an invalid registration")
				return nil
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		body := validRegistrationInput()
		body.Phone = "12345"
		body.QucInterest = "Perhaps"

		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations400JSONResponse:
			assert.Equal(t, InputValidationError, r.Code)
			assert.Equal(t, []string{"phone", "qucInterest"}, r.Fields)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("paid registration cannot be resubmitted", func(t *testing.T) {
		db := &mockDB{
			SaveRegistrationFunc: func(ctx context.Context, reg registration.Registration) error {
				return registration.NewAlreadyPaidError(reg.ID, nil)
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		var logs bytes.Buffer
		logCtx := ctxWithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

		body := validRegistrationInput()
		resp, err := api.PostApiRegistrations(logCtx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations409JSONResponse:
			assert.Equal(t, AlreadyPaid, r.Code)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}

		assert.Contains(t, logs.String(), "level=WARN")
		assert.NotContains(t, logs.String(), "level=ERROR")
	})

	t.Run("store failure", func(t *testing.T) {
		db := &mockDB{
			SaveRegistrationFunc: func(ctx context.Context, reg registration.Registration) error {
				return registration.NewFailedToWriteError("boom", errors.New("dynamo down"))
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		body := validRegistrationInput()
		resp, err := api.PostApiRegistrations(ctx, PostApiRegistrationsRequestObject{Body: &body})
		assert.NoError(t, err)

		switch r := resp.(type) {
		case PostApiRegistrations500JSONResponse:
			assert.Equal(t, InternalError, r.Code)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})
}

func TestGetApiRegistrationsId(t *testing.T) {
	ctx := ctxWithLogger(context.Background(), noopLogger)

	t.Run("found", func(t *testing.T) {
		paidAt := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		db := &mockDB{
			GetRegistrationFunc: func(ctx context.Context, id string) (registration.Registration, error) {
				return registration.Registration{
					ID:            id,
					FullName:      "Asha Rao",
					Email:         "asha@example.com",
					AttendeeCount: 4,
					StallType:     pricing.STALL_NONE,
					TotalAmount:   3500,
					PaymentStatus: registration.PAYMENT_PAID,
					PaymentID:     ptr.String("pay_1"),
					PaidAt:        &paidAt,
				}, nil
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		resp, err := api.GetApiRegistrationsId(ctx, GetApiRegistrationsIdRequestObject{Id: "AM26-000001"})
		require.NoError(t, err)

		switch r := resp.(type) {
		case GetApiRegistrationsId200JSONResponse:
			assert.Equal(t, "AM26-000001", r.Id)
			assert.Equal(t, types.Email("asha@example.com"), r.Email)
			assert.Equal(t, 4, r.TicketCount)
			assert.Equal(t, "PAID", r.PaymentStatus)
			assert.Equal(t, ptr.String("pay_1"), r.PaymentId)
			assert.Equal(t, &paidAt, r.PaidAt)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		api := NewAPI(&mockDB{}, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		resp, err := api.GetApiRegistrationsId(ctx, GetApiRegistrationsIdRequestObject{Id: "AM26-000001"})
		require.NoError(t, err)

		switch r := resp.(type) {
		case GetApiRegistrationsId404JSONResponse:
			assert.Equal(t, NotFound, r.Code)
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		db := &mockDB{
			GetRegistrationFunc: func(ctx context.Context, id string) (registration.Registration, error) {
				return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
			},
		}
		api := NewAPI(db, nil, nil, &mockEmailSender{}, noopLogger, LOCAL, testSettings)

		resp, err := api.GetApiRegistrationsId(ctx, GetApiRegistrationsIdRequestObject{Id: "AM26-000001"})
		require.NoError(t, err)

		switch resp.(type) {
		case GetApiRegistrationsId500JSONResponse:
		default:
			t.Fatalf("unexpected response type: %T", resp)
		}
	})
}
