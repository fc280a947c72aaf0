package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ignite/shop/internal/config"
	"github.com/ignite/shop/internal/models"
)

const stripeProductJSON = `{
	"id": "prod_123",
	"object": "product",
	"active": true,
	"name": "Camiseta Beyond the Limits",
	"description": "Tecido leve",
	"images": ["https://files.example/1.png", "https://files.example/2.png"],
	"default_price": {
		"id": "price_abc",
		"object": "price",
		"currency": "brl",
		"unit_amount": 1990
	}
}`

const stripeMissingJSON = `{
	"error": {
		"code": "resource_missing",
		"message": "No such product: 'prod_missing'",
		"param": "id",
		"type": "invalid_request_error"
	}
}`

// newStripeTestServer starts a server speaking enough of the Stripe API for
// the client under test
func newStripeTestServer(t *testing.T, handler http.HandlerFunc) *StripeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewStripeClient(&config.StripeConfig{
		SecretKey: "sk_test_123",
		APIURL:    server.URL,
	})
}

func writeStripeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestStripeClient_RetrieveProduct(t *testing.T) {
	var gotPath, gotExpand string
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotExpand = r.URL.Query().Get("expand[0]")
		writeStripeJSON(w, http.StatusOK, stripeProductJSON)
	})

	entry, err := client.RetrieveProduct(context.Background(), "prod_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v1/products/prod_123" {
		t.Errorf("expected path '/v1/products/prod_123', got '%s'", gotPath)
	}
	if gotExpand != "default_price" {
		t.Errorf("expected default_price expansion, got '%s'", gotExpand)
	}
	if entry.ID != "prod_123" || entry.Name != "Camiseta Beyond the Limits" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if len(entry.Images) != 2 {
		t.Errorf("expected 2 images, got %d", len(entry.Images))
	}
	if entry.DefaultPrice == nil {
		t.Fatal("expected default price to be expanded")
	}
	if entry.DefaultPrice.ID != "price_abc" || entry.DefaultPrice.UnitAmount != 1990 {
		t.Errorf("unexpected default price %+v", entry.DefaultPrice)
	}
	if entry.DefaultPrice.Currency != "brl" {
		t.Errorf("expected currency 'brl', got '%s'", entry.DefaultPrice.Currency)
	}
}

func TestStripeClient_RetrieveProduct_NotFound(t *testing.T) {
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeStripeJSON(w, http.StatusNotFound, stripeMissingJSON)
	})

	_, err := client.RetrieveProduct(context.Background(), "prod_missing")
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestStripeClient_RetrieveProduct_ServerError(t *testing.T) {
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeStripeJSON(w, http.StatusInternalServerError, `{"error":{"type":"api_error","message":"boom"}}`)
	})

	_, err := client.RetrieveProduct(context.Background(), "prod_123")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, models.ErrProductNotFound) {
		t.Error("server errors must not be reported as not found")
	}
}

func TestStripeClient_ListProducts(t *testing.T) {
	var gotActive, gotExpand string
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotActive = r.URL.Query().Get("active")
		gotExpand = r.URL.Query().Get("expand[0]")
		writeStripeJSON(w, http.StatusOK, `{
			"object": "list",
			"url": "/v1/products",
			"has_more": false,
			"data": [`+stripeProductJSON+`, {
				"id": "prod_456",
				"object": "product",
				"name": "Sem preço",
				"images": []
			}]
		}`)
	})

	entries, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotActive != "true" {
		t.Errorf("expected active=true filter, got '%s'", gotActive)
	}
	if gotExpand != "data.default_price" {
		t.Errorf("expected data.default_price expansion, got '%s'", gotExpand)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].DefaultPrice == nil || entries[0].DefaultPrice.ID != "price_abc" {
		t.Errorf("unexpected first entry price %+v", entries[0].DefaultPrice)
	}
	if entries[1].DefaultPrice != nil {
		t.Errorf("expected no default price on second entry, got %+v", entries[1].DefaultPrice)
	}
}

func TestStripeClient_CreateCheckoutSession(t *testing.T) {
	var form map[string]string
	var idempotencyKey string
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		idempotencyKey = r.Header.Get("Idempotency-Key")
		writeStripeJSON(w, http.StatusOK, `{
			"id": "cs_123",
			"object": "checkout.session",
			"url": "https://pay.example/cs_123"
		}`)
	})

	session, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{
		PriceID:        "price_abc",
		SuccessURL:     "http://localhost:8080/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      "http://localhost:8080/",
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.ID != "cs_123" || session.URL != "https://pay.example/cs_123" {
		t.Errorf("unexpected session %+v", session)
	}

	expected := map[string]string{
		"line_items[0][price]":    "price_abc",
		"line_items[0][quantity]": "1",
		"mode":                    "payment",
		"success_url":             "http://localhost:8080/success?session_id={CHECKOUT_SESSION_ID}",
		"cancel_url":              "http://localhost:8080/",
	}
	for key, want := range expected {
		if form[key] != want {
			t.Errorf("expected form %s=%q, got %q", key, want, form[key])
		}
	}
	if idempotencyKey != "key-1" {
		t.Errorf("expected idempotency key 'key-1', got '%s'", idempotencyKey)
	}
}

func TestStripeClient_CreateCheckoutSession_Error(t *testing.T) {
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeStripeJSON(w, http.StatusBadRequest, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such price"}}`)
	})

	_, err := client.CreateCheckoutSession(context.Background(), &CheckoutRequest{PriceID: "price_missing"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "failed to create checkout session") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestStripeClient_RetrieveCheckoutSession(t *testing.T) {
	var gotExpand string
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotExpand = r.URL.Query().Get("expand[0]")
		writeStripeJSON(w, http.StatusOK, `{
			"id": "cs_123",
			"object": "checkout.session",
			"payment_status": "paid",
			"customer_details": {"name": "Diego Fernandes"},
			"line_items": {
				"object": "list",
				"has_more": false,
				"data": [{
					"id": "li_1",
					"object": "item",
					"description": "Camiseta",
					"price": {
						"id": "price_abc",
						"object": "price",
						"product": {
							"id": "prod_123",
							"object": "product",
							"name": "Camiseta Beyond the Limits",
							"images": ["https://files.example/1.png"]
						}
					}
				}]
			}
		}`)
	})

	summary, err := client.RetrieveCheckoutSession(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotExpand != "line_items.data.price.product" {
		t.Errorf("unexpected expansion '%s'", gotExpand)
	}
	expected := models.CheckoutSummary{
		SessionID:     "cs_123",
		CustomerName:  "Diego Fernandes",
		ProductName:   "Camiseta Beyond the Limits",
		ImageURL:      "https://files.example/1.png",
		PaymentStatus: "paid",
	}
	if *summary != expected {
		t.Errorf("expected %+v, got %+v", expected, *summary)
	}
}

func TestStripeClient_RetrieveCheckoutSession_NotFound(t *testing.T) {
	client := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeStripeJSON(w, http.StatusNotFound, stripeMissingJSON)
	})

	_, err := client.RetrieveCheckoutSession(context.Background(), "cs_missing")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
