package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = &mockRegistrationRepository{}

type mockRegistrationRepository struct {
	SaveRegistrationFunc          func(ctx context.Context, reg Registration) error
	GetRegistrationFunc           func(ctx context.Context, id string) (Registration, error)
	UpdateRegistrationPaymentFunc func(ctx context.Context, id string, update PaymentUpdate) error
}

func (m *mockRegistrationRepository) SaveRegistration(ctx context.Context, reg Registration) error {
	return m.SaveRegistrationFunc(ctx, reg)
}

func (m *mockRegistrationRepository) GetRegistration(ctx context.Context, id string) (Registration, error) {
	return m.GetRegistrationFunc(ctx, id)
}

func (m *mockRegistrationRepository) UpdateRegistrationPayment(ctx context.Context, id string, update PaymentUpdate) error {
	return m.UpdateRegistrationPaymentFunc(ctx, id, update)
}

func validDraft() Draft {
	return Draft{
		FullName:      "Asha Rao",
		Gender:        "Female",
		Phone:         "9876543210",
		Email:         "asha@example.com",
		City:          "Pune",
		State:         "Maharashtra",
		AttendeeCount: 5,
		StallType:     pricing.STALL_4X8,
		Organization:  "Rao Robotics",
		Designation:   "CEO",
		OrgType:       "Startup",
		Domains:       []string{"AI / ML", "Robotics / Electronics"},
		EcosystemRole: "Founder / Co-Founder",
		Purposes:      []string{"Investment / Funding Opportunities"},
		QUCInterest:   INTEREST_YES,
	}
}

func TestNewID(t *testing.T) {
	for range 100 {
		id := NewID()
		assert.True(t, IsValidID(id), "id %q should match the id format", id)
	}

	assert.False(t, IsValidID("AM26-123"))
	assert.False(t, IsValidID("XX26-123456"))
}

func TestNewPendingRegistration(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	reg := NewPendingRegistration("AM26-000042", validDraft(), now)

	assert.Equal(t, "AM26-000042", reg.ID)
	assert.Equal(t, PAYMENT_PENDING, reg.PaymentStatus)
	assert.Equal(t, int64(6000), reg.StallPrice)
	assert.Equal(t, int64(10250), reg.TotalAmount)
	assert.Equal(t, reg.ExpectedTotal(), reg.TotalAmount)
	assert.Equal(t, now, reg.RegistrationDate)
	assert.Equal(t, TICKET_TYPE, reg.TicketType)
	assert.False(t, reg.CheckedIn)
	assert.Nil(t, reg.PaymentID)
	assert.Nil(t, reg.OrderID)
	assert.Nil(t, reg.PaidAt)
	assert.False(t, reg.IsPaid())
}

func TestSavePending(t *testing.T) {
	t.Run("saves a valid draft", func(t *testing.T) {
		var saved Registration
		repo := &mockRegistrationRepository{
			SaveRegistrationFunc: func(ctx context.Context, reg Registration) error {
				saved = reg
				return nil
			},
		}

		reg, err := SavePending(context.Background(), repo, "AM26-000001", validDraft(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, reg, saved)
	})

	t.Run("rejects an invalid draft without saving", func(t *testing.T) {
		repo := &mockRegistrationRepository{
			SaveRegistrationFunc: func(ctx context.Context, reg Registration) error {
				t.Fatal("should not save an invalid draft")
				return nil
			},
		}
		draft := validDraft()
		draft.Phone = "12345"
		draft.Purposes = nil

		_, err := SavePending(context.Background(), repo, "AM26-000001", draft, time.Now())
		require.Error(t, err)

		var regErr *Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, REASON_INVALID_REGISTRATION, regErr.Reason)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []Field{FIELD_PHONE, FIELD_PURPOSES}, verr.Fields)
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		repo := &mockRegistrationRepository{
			SaveRegistrationFunc: func(ctx context.Context, reg Registration) error {
				return NewFailedToWriteError("boom", errors.New("unreachable"))
			},
		}

		_, err := SavePending(context.Background(), repo, "AM26-000001", validDraft(), time.Now())

		var regErr *Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, REASON_FAILED_TO_WRITE, regErr.Reason)
	})
}
