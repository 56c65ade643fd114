package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
)

// Config holds Razorpay API credentials.
type Config struct {
	KeyID         string `json:"key_id"`
	KeySecret     string `json:"key_secret"`
	BaseURL       string `json:"base_url"`
	WebhookSecret string `json:"webhook_secret"`
	TimeoutMS     int    `json:"timeout_ms"`
}

func (c *Config) normalize() {
	c.KeyID = strings.TrimSpace(c.KeyID)
	c.KeySecret = strings.TrimSpace(c.KeySecret)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "https://api.razorpay.com/v1"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 15000
	}
}

// ValidateConfig checks required credentials.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	return nil
}

// Client talks to the Razorpay orders API.
type Client struct {
	cfg  *Config
	http *http.Client
}

// NewClient creates a Razorpay client.
func NewClient(cfg *Config) (*Client, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	normalized := *cfg
	normalized.normalize()
	return &Client{
		cfg:  &normalized,
		http: &http.Client{Timeout: time.Duration(normalized.TimeoutMS) * time.Millisecond},
	}, nil
}

// KeyID exposes the public key for checkout bootstrapping.
func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

// CreateOrderInput describes a provider order. AmountPaise is the
// total in the currency's minor unit, as Razorpay requires.
type CreateOrderInput struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// CreateOrderResult is the provider order handle.
type CreateOrderResult struct {
	OrderID     string
	AmountPaise int64
	Currency    string
	Status      string
	Raw         map[string]interface{}
}

// CreateOrder registers an order with Razorpay.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.AmountPaise <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "INR"
	}

	params := map[string]interface{}{
		"amount":   input.AmountPaise,
		"currency": currency,
		"receipt":  input.Receipt,
	}
	if len(input.Notes) > 0 {
		params["notes"] = input.Notes
	}

	respBytes, err := c.postJSON(ctx, "/orders", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &CreateOrderResult{
		OrderID:     resp.ID,
		AmountPaise: resp.Amount,
		Currency:    resp.Currency,
		Status:      resp.Status,
		Raw:         raw,
	}, nil
}

// VerifyPaymentSignature checks the checkout callback signature,
// HMAC-SHA256 of "<order_id>|<payment_id>" under the key secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureInvalid
	}
	expected := hmacSHA256(orderID+"|"+paymentID, c.cfg.KeySecret)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrSignatureInvalid
	}
	return nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header over
// the raw webhook body.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) error {
	secret := c.cfg.WebhookSecret
	if secret == "" {
		secret = c.cfg.KeySecret
	}
	if len(body) == 0 || signature == "" {
		return ErrSignatureInvalid
	}
	expected := hmacSHA256(string(body), secret)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrSignatureInvalid
	}
	return nil
}

func hmacSHA256(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) postJSON(ctx context.Context, path string, params map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	return respBytes, nil
}
