package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ascent-matrix/summit-registration/pricing"
	"github.com/ascent-matrix/summit-registration/registration"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Largest rupee amount accepted for an order; paise for it fit comfortably in an int64.
const MAX_ORDER_AMOUNT = 1_000_000_000

var tracer = otel.Tracer("github.com/ascent-matrix/summit-registration/payment")

type RegistrationGetter interface {
	GetRegistration(ctx context.Context, id string) (registration.Registration, error)
}

type OrderRequest struct {
	// Amount in whole rupees. Nil when the caller did not send one.
	Amount         *float64
	RegistrationID string
}

type CreatedOrder struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
}

type OrderService struct {
	gateway       Gateway
	registrations RegistrationGetter
	keyID         string
	logger        *slog.Logger
	now           func() time.Time
}

func NewOrderService(gateway Gateway, registrations RegistrationGetter, keyID string, logger *slog.Logger) *OrderService {
	return &OrderService{
		gateway:       gateway,
		registrations: registrations,
		keyID:         keyID,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateOrder asks the gateway for an INR order. When a registration id is given the
// requested amount has to match the total recomputed from the stored registration.
func (s *OrderService) CreateOrder(ctx context.Context, req OrderRequest) (CreatedOrder, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.String("registration.id", req.RegistrationID)))
	defer span.End()

	order, err := s.createOrder(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
		return CreatedOrder{}, err
	}

	span.SetAttributes(attribute.String("order.id", order.OrderID), attribute.Int64("order.amount", order.Amount))
	return order, nil
}

func (s *OrderService) createOrder(ctx context.Context, req OrderRequest) (CreatedOrder, error) {
	if req.Amount == nil {
		return CreatedOrder{}, NewInvalidAmountError("Amount is required and must be a number")
	}

	amount := *req.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return CreatedOrder{}, NewInvalidAmountError("Amount must be a positive number")
	}
	if amount > MAX_ORDER_AMOUNT {
		return CreatedOrder{}, NewInvalidAmountError("Amount is too large")
	}

	minor := pricing.ToMinorUnits(amount)
	if minor.Amount() <= 0 {
		return CreatedOrder{}, NewInvalidAmountError("Amount must be at least one paisa")
	}

	receipt := fmt.Sprintf("rcpt_%d", s.now().UnixMilli())
	var notes map[string]string

	if req.RegistrationID != "" {
		err := s.checkAmountAgainstRegistration(ctx, req.RegistrationID, amount)
		if err != nil {
			return CreatedOrder{}, err
		}

		receipt = req.RegistrationID
		notes = map[string]string{REGISTRATION_ID_NOTE: req.RegistrationID}
	}

	order, err := s.gateway.CreateOrder(ctx, CreateOrderParams{
		Amount:   minor.Amount(),
		Currency: minor.Currency().Code,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return CreatedOrder{}, NewGatewayFailureError(err)
	}

	return CreatedOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.keyID,
	}, nil
}

func (s *OrderService) checkAmountAgainstRegistration(ctx context.Context, id string, amount float64) error {
	reg, err := s.registrations.GetRegistration(ctx, id)
	if err != nil {
		return NewRegistrationLookupFailedError(id, err)
	}

	if reg.IsPaid() {
		return NewRegistrationAlreadyPaidError(id)
	}

	expected := reg.ExpectedTotal()
	if reg.TotalAmount != expected {
		s.logger.WarnContext(ctx, "Stored registration total differs from recomputed total",
			slog.String("registrationId", id),
			slog.Int64("stored", reg.TotalAmount),
			slog.Int64("expected", expected),
		)
	}

	if amount != float64(expected) {
		return NewAmountMismatchError(amount, expected)
	}

	return nil
}
