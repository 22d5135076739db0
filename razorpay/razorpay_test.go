package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	sig := SignPayload("order_abc", "pay_xyz", secret)

	if !VerifySignature("order_abc", "pay_xyz", sig, secret) {
		t.Fatal("expected valid signature to verify")
	}
	if VerifySignature("order_abc", "pay_xyz", sig+"00", secret) {
		t.Fatal("tampered signature must not verify")
	}
	if VerifySignature("order_other", "pay_xyz", sig, secret) {
		t.Fatal("signature for a different order must not verify")
	}
	if VerifySignature("order_abc", "pay_xyz", sig, "wrong_secret") {
		t.Fatal("signature must not verify under a different secret")
	}
}

func TestClientVerifySignature(t *testing.T) {
	c := NewClient("key", "shared")
	sig := SignPayload("o1", "p1", "shared")
	if !c.VerifySignature("o1", "p1", sig) {
		t.Fatal("client should verify its own secret's signature")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["currency"] != "INR" {
			t.Errorf("expected INR, got %v", body["currency"])
		}

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_test123",
			Amount:   int64(body["amount"].(float64)),
			Currency: "INR",
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := NewClient("key_id", "key_secret")
	c.BaseURL = srv.URL

	order, err := c.CreateOrder(context.Background(), 49900, "INR", "receipt_1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_test123" {
		t.Errorf("expected order_test123, got %s", order.ID)
	}
	if order.Amount != 49900 {
		t.Errorf("expected amount 49900, got %d", order.Amount)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad auth", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("k", "s")
	c.BaseURL = srv.URL

	if _, err := c.CreateOrder(context.Background(), 100, "INR", "r"); err == nil {
		t.Fatal("expected error on gateway failure")
	}
}
