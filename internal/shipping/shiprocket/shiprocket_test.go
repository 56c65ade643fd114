package shiprocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestServer(t *testing.T, loginCount *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			*loginCount++
			json.NewEncoder(w).Encode(map[string]interface{}{"token": "tok-1"})
		case "/orders/create/adhoc":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"order_id":    101,
				"shipment_id": 202,
				"status":      "NEW",
			})
		case "/courier/track/shipment/202":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"tracking_data": map[string]interface{}{
					"shipment_track": []map[string]interface{}{
						{"awb_code": "AWB123", "courier_name": "Delhivery", "current_status": "In Transit"},
					},
					"shipment_track_activities": []map[string]interface{}{
						{"date": "2025-01-02 10:00", "activity": "Picked up", "location": "Jaipur"},
					},
				},
			})
		case "/courier/generate/label":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"label_created": 1,
				"label_url":     "https://labels.example.com/202.pdf",
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"unknown path"}`))
		}
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		BaseURL:  baseURL,
		Email:    "ops@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client
}

func sampleShipmentInput() CreateShipmentInput {
	return CreateShipmentInput{
		OrderNo:        "RTN20250101000001",
		OrderDate:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		RecipientName:  "Asha Verma",
		RecipientPhone: "9876543210",
		AddressLine1:   "12 MG Road",
		City:           "Jaipur",
		State:          "Rajasthan",
		Pincode:        "302001",
		Country:        "India",
		PaymentMethod:  "Prepaid",
		SubTotal:       "25000.00",
		Items: []ShipmentItem{
			{Name: "Gold Ring", SKU: "RING-001", Units: 1, Price: "25000.00"},
		},
	}
}

func TestTokenReusedWithinTTL(t *testing.T) {
	loginCount := 0
	server := newTestServer(t, &loginCount)
	defer server.Close()

	client := newTestClient(t, server.URL)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	client.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := client.CreateShipment(ctx, sampleShipmentInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	now = base.Add(23 * time.Hour)
	if _, err := client.Track(ctx, "202"); err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if loginCount != 1 {
		t.Fatalf("login count within ttl want 1 got %d", loginCount)
	}

	now = base.Add(25 * time.Hour)
	if _, err := client.Label(ctx, "202"); err != nil {
		t.Fatalf("label failed: %v", err)
	}
	if loginCount != 2 {
		t.Fatalf("login count after expiry want 2 got %d", loginCount)
	}
}

func TestTokenRefreshSerialized(t *testing.T) {
	loginCount := 0
	server := newTestServer(t, &loginCount)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	errCh := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.ensureToken(ctx); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("ensure token failed: %v", err)
	}
	// Concurrent callers wait on the one in-flight login.
	if loginCount != 1 {
		t.Fatalf("login count want 1 got %d", loginCount)
	}
}

func TestCreateShipmentReturnsHandles(t *testing.T) {
	loginCount := 0
	server := newTestServer(t, &loginCount)
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.CreateShipment(context.Background(), sampleShipmentInput())
	if err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}
	if result.OrderID != "101" || result.ShipmentID != "202" {
		t.Fatalf("handles want 101/202 got %s/%s", result.OrderID, result.ShipmentID)
	}
	if result.Status != "NEW" {
		t.Fatalf("status want NEW got %s", result.Status)
	}
}

func TestProviderErrorCarriesUpstreamBody(t *testing.T) {
	loginCount := 0
	server := newTestServer(t, &loginCount)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Track(context.Background(), "999")
	if err == nil {
		t.Fatal("track unknown shipment want error")
	}
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProviderError got %T: %v", err, err)
	}
	if provErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", provErr.StatusCode)
	}
	if provErr.Body == "" {
		t.Fatal("provider error body should carry upstream response")
	}
}
