package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
		BaseURL:   baseURL,
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client
}

func signHMAC(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "test_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_test_123",
			"amount":   body["amount"],
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.CreateOrder(context.Background(), CreateOrderInput{
		AmountPaise: 250000,
		Receipt:     "RTN20250101000001",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.OrderID != "order_test_123" {
		t.Fatalf("order id want order_test_123 got %s", result.OrderID)
	}
	if result.AmountPaise != 250000 {
		t.Fatalf("amount want 250000 got %d", result.AmountPaise)
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	_, err := client.CreateOrder(context.Background(), CreateOrderInput{AmountPaise: 0})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("want ErrConfigInvalid got %v", err)
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	valid := signHMAC("order_abc|pay_def", "test_secret")
	if err := client.VerifyPaymentSignature("order_abc", "pay_def", valid); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}

	if err := client.VerifyPaymentSignature("order_abc", "pay_def", "bogus"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("bogus signature want ErrSignatureInvalid got %v", err)
	}
	if err := client.VerifyPaymentSignature("order_abc", "", valid); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("empty payment id want ErrSignatureInvalid got %v", err)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	body := []byte(`{"event":"payment.captured"}`)

	valid := signHMAC(string(body), "test_secret")
	if err := client.VerifyWebhookSignature(body, valid); err != nil {
		t.Fatalf("valid webhook signature rejected: %v", err)
	}
	if err := client.VerifyWebhookSignature(body, "bogus"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("bogus webhook signature want ErrSignatureInvalid got %v", err)
	}
}
