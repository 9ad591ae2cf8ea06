package api

import (
	"context"
	"log/slog"
	"sync"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/ascent-matrix/summit-registration/payment"
	"github.com/ascent-matrix/summit-registration/registration"
	"github.com/ascent-matrix/summit-registration/sponsorship"
)

var noopLogger = slog.New(slog.DiscardHandler)

var testSettings = Settings{
	AllowedOrigins:  []string{"https://summit.example.com"},
	EmailFrom:       "Ascent Matrix <tickets@summit.example.com>",
	PaymentMode:     "Test",
	WebhooksEnabled: true,
}

type mockEmailSender struct {
	mu   sync.Mutex
	sent []email.Email

	SendEmailFunc func(ctx context.Context, e email.Email) error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e email.Email) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *mockEmailSender) Sent() []email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Email{}, m.sent...)
}

var _ DB = &mockDB{}

type mockDB struct {
	SaveRegistrationFunc          func(ctx context.Context, reg registration.Registration) error
	GetRegistrationFunc           func(ctx context.Context, id string) (registration.Registration, error)
	UpdateRegistrationPaymentFunc func(ctx context.Context, id string, update registration.PaymentUpdate) error
	SaveSponsorshipFunc           func(ctx context.Context, inquiry sponsorship.Inquiry) error
	GetSponsorshipFunc            func(ctx context.Context, id string) (sponsorship.Inquiry, error)
}

func (m *mockDB) SaveRegistration(ctx context.Context, reg registration.Registration) error {
	if m.SaveRegistrationFunc != nil {
		return m.SaveRegistrationFunc(ctx, reg)
	}
	return nil
}

func (m *mockDB) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	if m.GetRegistrationFunc != nil {
		return m.GetRegistrationFunc(ctx, id)
	}
	return registration.Registration{}, registration.NewRegistrationDoesNotExistsError("not found", nil)
}

func (m *mockDB) UpdateRegistrationPayment(ctx context.Context, id string, update registration.PaymentUpdate) error {
	if m.UpdateRegistrationPaymentFunc != nil {
		return m.UpdateRegistrationPaymentFunc(ctx, id, update)
	}
	return nil
}

func (m *mockDB) SaveSponsorship(ctx context.Context, inquiry sponsorship.Inquiry) error {
	if m.SaveSponsorshipFunc != nil {
		return m.SaveSponsorshipFunc(ctx, inquiry)
	}
	return nil
}

func (m *mockDB) GetSponsorship(ctx context.Context, id string) (sponsorship.Inquiry, error) {
	if m.GetSponsorshipFunc != nil {
		return m.GetSponsorshipFunc(ctx, id)
	}
	return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_SPONSORSHIP_DOES_NOT_EXIST, "not found", nil)
}

var _ OrderCreator = &mockOrderCreator{}

type mockOrderCreator struct {
	CreateOrderFunc func(ctx context.Context, req payment.OrderRequest) (payment.CreatedOrder, error)
}

func (m *mockOrderCreator) CreateOrder(ctx context.Context, req payment.OrderRequest) (payment.CreatedOrder, error) {
	return m.CreateOrderFunc(ctx, req)
}

var _ PaymentVerifier = &mockPaymentVerifier{}

type mockPaymentVerifier struct {
	VerifyFunc        func(ctx context.Context, req payment.VerifyRequest) (payment.Outcome, error)
	VerifyWebhookFunc func(ctx context.Context, payload []byte, signature string) (payment.WebhookResult, error)
}

func (m *mockPaymentVerifier) Verify(ctx context.Context, req payment.VerifyRequest) (payment.Outcome, error) {
	return m.VerifyFunc(ctx, req)
}

func (m *mockPaymentVerifier) VerifyWebhook(ctx context.Context, payload []byte, signature string) (payment.WebhookResult, error) {
	return m.VerifyWebhookFunc(ctx, payload, signature)
}

// memDB is an in-memory DB that follows the same paid guard as the dynamo store.
type memDB struct {
	mu            sync.Mutex
	registrations map[string]registration.Registration
	sponsorships  map[string]sponsorship.Inquiry
}

var _ DB = &memDB{}

func newMemDB() *memDB {
	return &memDB{
		registrations: map[string]registration.Registration{},
		sponsorships:  map[string]sponsorship.Inquiry{},
	}
}

func (m *memDB) SaveRegistration(ctx context.Context, reg registration.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.registrations[reg.ID]
	if ok && existing.IsPaid() {
		return registration.NewAlreadyPaidError(reg.ID, nil)
	}
	if ok {
		if reg.PaymentID == nil {
			reg.PaymentID = existing.PaymentID
		}
		if reg.OrderID == nil {
			reg.OrderID = existing.OrderID
		}
		if reg.PaidAt == nil {
			reg.PaidAt = existing.PaidAt
		}
	}

	m.registrations[reg.ID] = reg
	return nil
}

func (m *memDB) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[id]
	if !ok {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(id, nil)
	}
	return reg, nil
}

func (m *memDB) UpdateRegistrationPayment(ctx context.Context, id string, update registration.PaymentUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.registrations[id]
	if !ok {
		return registration.NewRegistrationDoesNotExistsError(id, nil)
	}
	if reg.IsPaid() && (reg.PaymentID == nil || *reg.PaymentID != update.PaymentID) {
		return registration.NewAlreadyPaidError(id, nil)
	}

	paidAt := update.PaidAt
	reg.PaymentStatus = update.PaymentStatus
	reg.PaymentID = &update.PaymentID
	reg.OrderID = &update.OrderID
	reg.PaidAt = &paidAt
	m.registrations[id] = reg
	return nil
}

func (m *memDB) SaveSponsorship(ctx context.Context, inquiry sponsorship.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sponsorships[inquiry.ID] = inquiry
	return nil
}

func (m *memDB) GetSponsorship(ctx context.Context, id string) (sponsorship.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inq, ok := m.sponsorships[id]
	if !ok {
		return sponsorship.Inquiry{}, sponsorship.NewError(sponsorship.REASON_SPONSORSHIP_DOES_NOT_EXIST, id, nil)
	}
	return inq, nil
}

func validRegistrationInput() RegistrationInput {
	return RegistrationInput{
		FullName:      "Asha Rao",
		Gender:        "Female",
		Phone:         "9876543210",
		Email:         "asha@example.com",
		City:          "Pune",
		State:         "Maharashtra",
		TicketCount:   2,
		StallType:     "None",
		Organization:  "Qubit Labs",
		Designation:   "CTO",
		OrgType:       registration.ORG_TYPES[0],
		Domains:       []string{registration.DOMAINS[0]},
		EcosystemRole: registration.ECOSYSTEM_ROLES[0],
		Purposes:      []string{registration.PURPOSES[0]},
		QucInterest:   string(registration.INTEREST_YES),
	}
}
