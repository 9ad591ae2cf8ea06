package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/ascent-matrix/summit-registration/payment"
	"github.com/ascent-matrix/summit-registration/registration"
	"github.com/ascent-matrix/summit-registration/sponsorship"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	registration.Repository
	sponsorship.Repository
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req payment.OrderRequest) (payment.CreatedOrder, error)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, req payment.VerifyRequest) (payment.Outcome, error)
	VerifyWebhook(ctx context.Context, payload []byte, signature string) (payment.WebhookResult, error)
}

// Settings are the deployment specific knobs of the API.
type Settings struct {
	AllowedOrigins []string
	EmailFrom      string
	// "Test" or "Live", reported by the health check.
	PaymentMode     string
	WebhooksEnabled bool
}

type API struct {
	db          DB
	orders      OrderCreator
	verifier    PaymentVerifier
	emailSender email.Sender
	logger      *slog.Logger
	env         Environment
	settings    Settings
	now         func() time.Time
}

func NewAPI(db DB, orders OrderCreator, verifier PaymentVerifier, emailSender email.Sender, logger *slog.Logger, env Environment, settings Settings) *API {
	return &API{
		db:          db,
		orders:      orders,
		verifier:    verifier,
		emailSender: emailSender,
		logger:      logger,
		env:         env,
		settings:    settings,
		now:         time.Now,
	}
}
