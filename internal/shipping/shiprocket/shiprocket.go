package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("shiprocket config invalid")
	ErrAuthFailed      = errors.New("shiprocket auth failed")
	ErrRequestFailed   = errors.New("shiprocket request failed")
	ErrResponseInvalid = errors.New("shiprocket response invalid")
)

// tokenTTL is how long an issued token is reused before a fresh login.
// Shiprocket tokens are valid for 10 days; one day keeps a wide margin.
const tokenTTL = 24 * time.Hour

// tokenSlack expires a cached token early so a request never goes out
// with one about to lapse.
const tokenSlack = 60 * time.Second

// Placeholder package dimensions sent with every shipment. Jewellery
// parcels are uniform enough that per-product dims are not worth the
// catalog fields.
const (
	packageLengthCM = 10.0
	packageWidthCM  = 10.0
	packageHeightCM = 5.0
	packageWeightKG = 0.5
)

// ProviderError carries the upstream HTTP status and body so operators
// can see what Shiprocket actually said.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("shiprocket %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Config holds Shiprocket API credentials.
type Config struct {
	BaseURL        string `json:"base_url"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PickupLocation string `json:"pickup_location"`
	TimeoutMS      int    `json:"timeout_ms"`
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Email = strings.TrimSpace(c.Email)
	c.PickupLocation = strings.TrimSpace(c.PickupLocation)
	if c.BaseURL == "" {
		c.BaseURL = "https://apiv2.shiprocket.in/v1/external"
	}
	if c.PickupLocation == "" {
		c.PickupLocation = "Primary"
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
	if strings.TrimSpace(cfg.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Password) == "" {
		return fmt.Errorf("%w: password is required", ErrConfigInvalid)
	}
	return nil
}

// Client talks to the Shiprocket API, caching the auth token between
// calls. The cache is not locked; two goroutines refreshing at once
// both login and the later token wins, which is harmless.
type Client struct {
	cfg  *Config
	http *http.Client
	now  func() time.Time

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a Shiprocket client.
func NewClient(cfg *Config) (*Client, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	normalized := *cfg
	normalized.normalize()
	return &Client{
		cfg:  &normalized,
		http: &http.Client{Timeout: time.Duration(normalized.TimeoutMS) * time.Millisecond},
		now:  time.Now,
	}, nil
}

// ShipmentItem is one order line forwarded to the courier.
type ShipmentItem struct {
	Name  string
	SKU   string
	Units int
	Price string
}

// CreateShipmentInput describes the order to hand to the courier.
type CreateShipmentInput struct {
	OrderNo        string
	OrderDate      time.Time
	RecipientName  string
	RecipientPhone string
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	Pincode        string
	Country        string
	PaymentMethod  string // Prepaid / COD
	SubTotal       string
	Items          []ShipmentItem
}

// CreateShipmentResult is the provider-side shipment handle.
type CreateShipmentResult struct {
	OrderID    string
	ShipmentID string
	Status     string
	Raw        map[string]interface{}
}

// TrackResult is the current tracking state of one shipment.
type TrackResult struct {
	AWBCode       string
	CourierName   string
	CurrentStatus string
	Scans         []TrackScan
	Raw           map[string]interface{}
}

// TrackScan is one checkpoint event in the tracking history.
type TrackScan struct {
	Date     string `json:"date"`
	Activity string `json:"activity"`
	Location string `json:"location"`
}

// LabelResult carries the label document URL.
type LabelResult struct {
	LabelURL string
	Raw      map[string]interface{}
}

// CreateShipment registers the order with Shiprocket.
func (c *Client) CreateShipment(ctx context.Context, input CreateShipmentInput) (*CreateShipmentResult, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, map[string]interface{}{
			"name":          item.Name,
			"sku":           item.SKU,
			"units":         item.Units,
			"selling_price": item.Price,
		})
	}

	params := map[string]interface{}{
		"order_id":              input.OrderNo,
		"order_date":            input.OrderDate.Format("2006-01-02 15:04"),
		"pickup_location":       c.cfg.PickupLocation,
		"billing_customer_name": input.RecipientName,
		"billing_last_name":     "",
		"billing_address":       input.AddressLine1,
		"billing_address_2":     input.AddressLine2,
		"billing_city":          input.City,
		"billing_pincode":       input.Pincode,
		"billing_state":         input.State,
		"billing_country":       input.Country,
		"billing_phone":         input.RecipientPhone,
		"shipping_is_billing":   true,
		"order_items":           items,
		"payment_method":        input.PaymentMethod,
		"sub_total":             input.SubTotal,
		"length":                packageLengthCM,
		"breadth":               packageWidthCM,
		"height":                packageHeightCM,
		"weight":                packageWeightKG,
	}

	respBytes, err := c.doJSON(ctx, http.MethodPost, "/orders/create/adhoc", token, params, "create shipment")
	if err != nil {
		return nil, err
	}

	var resp struct {
		OrderID    json.Number `json:"order_id"`
		ShipmentID json.Number `json:"shipment_id"`
		Status     string      `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.OrderID.String() == "" {
		return nil, fmt.Errorf("%w: missing order_id", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &CreateShipmentResult{
		OrderID:    resp.OrderID.String(),
		ShipmentID: resp.ShipmentID.String(),
		Status:     resp.Status,
		Raw:        raw,
	}, nil
}

// Track fetches tracking state for one shipment.
func (c *Client) Track(ctx context.Context, shipmentID string) (*TrackResult, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return nil, fmt.Errorf("%w: shipment id is required", ErrConfigInvalid)
	}
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	respBytes, err := c.doJSON(ctx, http.MethodGet, "/courier/track/shipment/"+shipmentID, token, nil, "track")
	if err != nil {
		return nil, err
	}

	var resp struct {
		TrackingData struct {
			ShipmentTrack []struct {
				AWBCode       string `json:"awb_code"`
				CourierName   string `json:"courier_name"`
				CurrentStatus string `json:"current_status"`
			} `json:"shipment_track"`
			ShipmentTrackActivities []TrackScan `json:"shipment_track_activities"`
		} `json:"tracking_data"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	result := &TrackResult{
		Scans: resp.TrackingData.ShipmentTrackActivities,
		Raw:   raw,
	}
	if len(resp.TrackingData.ShipmentTrack) > 0 {
		track := resp.TrackingData.ShipmentTrack[0]
		result.AWBCode = track.AWBCode
		result.CourierName = track.CourierName
		result.CurrentStatus = track.CurrentStatus
	}
	return result, nil
}

// Label generates (or fetches) the shipping label document.
func (c *Client) Label(ctx context.Context, shipmentID string) (*LabelResult, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return nil, fmt.Errorf("%w: shipment id is required", ErrConfigInvalid)
	}
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	params := map[string]interface{}{
		"shipment_id": []string{shipmentID},
	}
	respBytes, err := c.doJSON(ctx, http.MethodPost, "/courier/generate/label", token, params, "label")
	if err != nil {
		return nil, err
	}

	var resp struct {
		LabelCreated json.Number `json:"label_created"`
		LabelURL     string      `json:"label_url"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.LabelURL == "" {
		return nil, fmt.Errorf("%w: missing label_url", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &LabelResult{LabelURL: resp.LabelURL, Raw: raw}, nil
}

// ensureToken returns a cached token, logging in again once it comes
// within tokenSlack of aging out. The mutex covers the refresh, so
// concurrent callers wait on one login instead of racing the fields.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	if c.token != "" && c.now().Add(tokenSlack).Before(c.tokenExpiry) {
		return c.token, nil
	}

	params := map[string]interface{}{
		"email":    c.cfg.Email,
		"password": c.cfg.Password,
	}
	body, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrAuthFailed, resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(respBytes, &loginResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrAuthFailed)
	}

	c.token = loginResp.Token
	c.tokenExpiry = c.now().Add(tokenTTL)
	return c.token, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, params map[string]interface{}, op string) ([]byte, error) {
	var reqBody io.Reader
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

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
		return nil, &ProviderError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBytes)),
		}
	}
	return respBytes, nil
}
