package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/pkg/logger"

	"go.uber.org/zap"
)

// Client talks to the checkout gateway's order and payment APIs. The
// browser still runs the hosted checkout widget; this service issues the
// orders it opens with and is the only party allowed to declare a payment
// settled.
type Client struct {
	config     config.GatewayConfig
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, newError(ErrCodeConfiguration, "gateway key id/secret missing", nil)
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// KeyID is the public key the client-side checkout widget is opened with.
func (c *Client) KeyID() string { return c.config.KeyID }

func (c *Client) Currency() string { return c.config.Currency }

type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder issues a gateway order for one checkout attempt.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, newError(ErrCodeTransport, "marshal order request", err)
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", bytes.NewReader(body), &order); err != nil {
		return nil, err
	}

	logger.Debug("gateway order created",
		zap.String("order_id", order.ID),
		zap.String("receipt", receipt),
		zap.Int64("amount", amount))

	return &order, nil
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

// Settled reports whether the gateway holds the money.
func (p *Payment) Settled() bool {
	return p.Status == "captured" || p.Status == "authorized"
}

// FetchPayment reads the payment's server-side state from the gateway.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, newError(ErrCodeAPI, "empty payment id", nil)
	}

	var p Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListOrderPayments returns the payments the gateway recorded against an
// order. Used by the reconciler for orders that never called back.
func (c *Client) ListOrderPayments(ctx context.Context, orderID string) ([]Payment, error) {
	var out struct {
		Items []Payment `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID+"/payments", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(order_id + "|" + payment_id, key secret), hex encoded,
// compared in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.config.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

type apiErrorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return newError(ErrCodeTransport, "create request", err)
	}
	req.SetBasicAuth(c.config.KeyID, c.config.KeySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newError(ErrCodeTransport, "gateway request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)

		// Message extraction priority: gateway-provided description,
		// then the HTTP status text.
		var apiErr apiErrorBody
		msg := http.StatusText(resp.StatusCode)
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Description != "" {
			msg = apiErr.Error.Description
		}

		return newError(ErrCodeAPI, fmt.Sprintf("%s (status %d)", msg, resp.StatusCode), nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(ErrCodeTransport, "decode gateway response", err)
		}
	}

	return nil
}
