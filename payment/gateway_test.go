package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFromRazorpayBody(t *testing.T) {
	t.Run("parses a decoded order response", func(t *testing.T) {
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "order_EKwxwAgItmmXdp",
			"entity": "order",
			"amount": 200000,
			"amount_paid": 0,
			"currency": "INR",
			"receipt": "AM26-000001",
			"status": "created"
		}`), &body))

		order, err := orderFromRazorpayBody(body)
		require.NoError(t, err)
		assert.Equal(t, Order{
			ID:       "order_EKwxwAgItmmXdp",
			Amount:   200000,
			Currency: "INR",
			Receipt:  "AM26-000001",
		}, order)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := orderFromRazorpayBody(map[string]interface{}{"amount": 100.0})
		assert.Error(t, err)
	})

	t.Run("non numeric amount", func(t *testing.T) {
		_, err := orderFromRazorpayBody(map[string]interface{}{"id": "order_1", "amount": "100"})
		assert.Error(t, err)
	})
}
