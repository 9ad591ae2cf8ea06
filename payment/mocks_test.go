package payment

import (
	"context"
	"log/slog"

	"github.com/ascent-matrix/summit-registration/registration"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ Gateway = &mockGateway{}

type mockGateway struct {
	CreateOrderFunc func(ctx context.Context, params CreateOrderParams) (Order, error)
}

func (m *mockGateway) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	return m.CreateOrderFunc(ctx, params)
}

var _ registration.Repository = &mockRegistrationRepository{}

type mockRegistrationRepository struct {
	SaveRegistrationFunc          func(ctx context.Context, reg registration.Registration) error
	GetRegistrationFunc           func(ctx context.Context, id string) (registration.Registration, error)
	UpdateRegistrationPaymentFunc func(ctx context.Context, id string, update registration.PaymentUpdate) error
}

func (m *mockRegistrationRepository) SaveRegistration(ctx context.Context, reg registration.Registration) error {
	return m.SaveRegistrationFunc(ctx, reg)
}

func (m *mockRegistrationRepository) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	return m.GetRegistrationFunc(ctx, id)
}

func (m *mockRegistrationRepository) UpdateRegistrationPayment(ctx context.Context, id string, update registration.PaymentUpdate) error {
	return m.UpdateRegistrationPaymentFunc(ctx, id, update)
}

func pendingRegistration(id string) registration.Registration {
	return registration.Registration{
		ID:            id,
		AttendeeCount: 2,
		StallType:     "None",
		TotalAmount:   2000,
		PaymentStatus: registration.PAYMENT_PENDING,
	}
}
