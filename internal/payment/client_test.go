package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/communityhub/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.GatewayConfig{
		BaseURL:   srv.URL,
		KeyID:     "key_test",
		KeySecret: "secret_test",
		Currency:  "INR",
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientMissingKeys(t *testing.T) {
	_, err := NewClient(config.GatewayConfig{})
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, ErrCodeConfiguration, gwErr.Code)
}

func TestCreateOrder(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(50000), req["amount"])
		assert.Equal(t, "INR", req["currency"])
		assert.Equal(t, "evt_1700000000000_abc123", req["receipt"])

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test1",
			Amount:   50000,
			Currency: "INR",
			Receipt:  "evt_1700000000000_abc123",
			Status:   "created",
		})
	}))

	order, err := client.CreateOrder(context.Background(), 50000, "INR", "evt_1700000000000_abc123", map[string]string{"item": "Summer Camp"})
	require.NoError(t, err)
	assert.Equal(t, "order_test1", order.ID)
	assert.Equal(t, int64(50000), order.Amount)
}

func TestCreateOrderAPIError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": "BAD_REQUEST_ERROR", "description": "amount must be at least 100"}}`))
	}))

	_, err := client.CreateOrder(context.Background(), 1, "INR", "evt_x", nil)
	require.Error(t, err)

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, ErrCodeAPI, gwErr.Code)
	assert.Contains(t, gwErr.Message, "amount must be at least 100")
}

func TestFetchPayment(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_1", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{
			ID:      "pay_1",
			OrderID: "order_test1",
			Amount:  50000,
			Status:  "captured",
		})
	}))

	p, err := client.FetchPayment(context.Background(), "pay_1")
	require.NoError(t, err)
	assert.True(t, p.Settled())
	assert.Equal(t, "order_test1", p.OrderID)
}

func TestListOrderPayments(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order_test1/payments", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"items": []Payment{
				{ID: "pay_1", Status: "failed"},
				{ID: "pay_2", Status: "captured"},
			},
		})
	}))

	payments, err := client.ListOrderPayments(context.Background(), "order_test1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.False(t, payments[0].Settled())
	assert.True(t, payments[1].Settled())
}

func TestPaymentSettled(t *testing.T) {
	assert.True(t, (&Payment{Status: "captured"}).Settled())
	assert.True(t, (&Payment{Status: "authorized"}).Settled())
	assert.False(t, (&Payment{Status: "created"}).Settled())
	assert.False(t, (&Payment{Status: "failed"}).Settled())
}

func TestVerifySignature(t *testing.T) {
	client, err := NewClient(config.GatewayConfig{KeyID: "key_test", KeySecret: "secret_test"})
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("secret_test"))
	mac.Write([]byte("order_test1|pay_1"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifySignature("order_test1", "pay_1", valid))
	assert.False(t, client.VerifySignature("order_test1", "pay_1", "deadbeef"))
	assert.False(t, client.VerifySignature("order_test2", "pay_1", valid))
	assert.False(t, client.VerifySignature("", "pay_1", valid))
	assert.False(t, client.VerifySignature("order_test1", "pay_1", ""))
}
