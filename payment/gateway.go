package payment

import (
	"context"
	"encoding/json"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type CreateOrderParams struct {
	// Amount in the currency's minor unit.
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

type Gateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error)
}

var _ Gateway = &RazorpayGateway{}

type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID string, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	data := map[string]interface{}{
		"amount":   params.Amount,
		"currency": params.Currency,
		"receipt":  params.Receipt,
	}
	if len(params.Notes) > 0 {
		data["notes"] = params.Notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return Order{}, err
	}

	return orderFromRazorpayBody(body)
}

func orderFromRazorpayBody(body map[string]interface{}) (Order, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return Order{}, fmt.Errorf("razorpay order response has no id")
	}

	amount, err := toInt64(body["amount"])
	if err != nil {
		return Order{}, fmt.Errorf("razorpay order response has invalid amount: %w", err)
	}

	currency, _ := body["currency"].(string)
	receipt, _ := body["receipt"].(string)

	return Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
