package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("whatsapp config invalid")
	ErrRequestFailed   = errors.New("whatsapp request failed")
	ErrResponseInvalid = errors.New("whatsapp response invalid")
)

// Config holds Twilio WhatsApp credentials.
type Config struct {
	AccountSID string `json:"account_sid"`
	AuthToken  string `json:"auth_token"`
	FromNumber string `json:"from_number"`
	BaseURL    string `json:"base_url"`
	TimeoutMS  int    `json:"timeout_ms"`
}

func (c *Config) normalize() {
	c.AccountSID = strings.TrimSpace(c.AccountSID)
	c.AuthToken = strings.TrimSpace(c.AuthToken)
	c.FromNumber = strings.TrimSpace(c.FromNumber)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "https://api.twilio.com/2010-04-01"
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
	if strings.TrimSpace(cfg.AccountSID) == "" {
		return fmt.Errorf("%w: account_sid is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AuthToken) == "" {
		return fmt.Errorf("%w: auth_token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.FromNumber) == "" {
		return fmt.Errorf("%w: from_number is required", ErrConfigInvalid)
	}
	return nil
}

// Client sends WhatsApp messages through the Twilio REST API.
type Client struct {
	cfg  *Config
	http *http.Client
}

// NewClient creates a WhatsApp client.
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

// SendResult is the provider message handle.
type SendResult struct {
	MessageSID string
	Status     string
	Raw        map[string]interface{}
}

// Send delivers one message. The to number is an E.164 phone number,
// with or without the whatsapp: prefix.
func (c *Client) Send(ctx context.Context, to, body string) (*SendResult, error) {
	to = strings.TrimSpace(to)
	if to == "" || strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: to and body are required", ErrConfigInvalid)
	}

	form := url.Values{}
	form.Set("From", withWhatsAppPrefix(c.cfg.FromNumber))
	form.Set("To", withWhatsAppPrefix(to))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.cfg.BaseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

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

	var parsed struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if parsed.SID == "" {
		return nil, fmt.Errorf("%w: missing message sid", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &SendResult{MessageSID: parsed.SID, Status: parsed.Status, Raw: raw}, nil
}

func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
