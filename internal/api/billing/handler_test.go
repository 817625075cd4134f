package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"

	"tinytoken-dashboard/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pointStripeAt(t *testing.T, srv *httptest.Server) {
	t.Helper()
	stripe.Key = "sk_test_fake"
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL: stripe.String(srv.URL),
	})
	stripe.SetBackend(stripe.APIBackend, backend)
	t.Cleanup(func() {
		stripe.SetBackend(stripe.APIBackend, nil)
	})
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/create-checkout-session", CreateCheckoutSession)
	r.GET("/get-pricing", GetPricing)
	return r
}

func TestCreateCheckoutSessionRequiresEmail(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateCheckoutSessionNewCustomer(t *testing.T) {
	config.BASE_URL = "http://localhost:3000"
	config.STRIPE_PRICE_ID = "price_123"

	var customerCreated bool
	var sessionMetadata, sessionSuccessURL, sessionPrice string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/customers"):
			json.NewEncoder(w).Encode(map[string]any{
				"object": "list", "data": []any{}, "has_more": false, "url": "/",
			})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/customers":
			customerCreated = true
			r.ParseForm()
			if r.Form.Get("email") != "a@b.com" {
				t.Errorf("unexpected customer email %q", r.Form.Get("email"))
			}
			json.NewEncoder(w).Encode(map[string]any{"id": "cus_new", "object": "customer"})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
			r.ParseForm()
			sessionMetadata = r.Form.Get("metadata[userId]")
			sessionSuccessURL = r.Form.Get("success_url")
			sessionPrice = r.Form.Get("line_items[0][price]")
			if r.Form.Get("customer") != "cus_new" {
				t.Errorf("expected session against cus_new, got %q", r.Form.Get("customer"))
			}
			if r.Form.Get("mode") != "subscription" {
				t.Errorf("expected subscription mode, got %q", r.Form.Get("mode"))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id": "cs_1", "object": "checkout.session",
				"url": "https://checkout.stripe.com/pay/cs_1",
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	pointStripeAt(t, srv)

	r := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(`{"user_email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
	if !customerCreated {
		t.Fatalf("expected a customer to be created")
	}
	if sessionMetadata != "a@b.com" {
		t.Fatalf("expected userId metadata on the session, got %q", sessionMetadata)
	}
	if sessionPrice != "price_123" {
		t.Fatalf("expected the configured price, got %q", sessionPrice)
	}
	if !strings.Contains(sessionSuccessURL, "/dashboard?session_id=") {
		t.Fatalf("unexpected success url %q", sessionSuccessURL)
	}
	if !strings.Contains(rec.Body.String(), "https://checkout.stripe.com/pay/cs_1") {
		t.Fatalf("expected the hosted checkout url, got %s", rec.Body.String())
	}
}

func TestCreateCheckoutSessionReusesCustomer(t *testing.T) {
	config.BASE_URL = "http://localhost:3000"
	config.STRIPE_PRICE_ID = "price_123"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/customers"):
			json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"data": []any{
					map[string]any{"id": "cus_existing", "object": "customer", "email": "a@b.com"},
				},
				"has_more": false, "url": "/",
			})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/customers":
			t.Errorf("customer must be reused, not created")
			w.WriteHeader(http.StatusBadRequest)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
			r.ParseForm()
			if r.Form.Get("customer") != "cus_existing" {
				t.Errorf("expected session against cus_existing, got %q", r.Form.Get("customer"))
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id": "cs_2", "object": "checkout.session",
				"url": "https://checkout.stripe.com/pay/cs_2",
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	pointStripeAt(t, srv)

	r := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(`{"user_email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestGetPricingWithMetadataFeatures(t *testing.T) {
	config.STRIPE_PRICE_ID = "price_123"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/prices/price_123") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": "price_123", "object": "price", "unit_amount": 1500,
			"recurring": map[string]any{"interval": "month"},
			"product": map[string]any{
				"id": "prod_1", "object": "product",
				"name":        "TinyToken Pro",
				"description": "Pro access",
				"metadata":    map[string]string{"features": `["Priority support","SLA"]`},
			},
		})
	}))
	defer srv.Close()
	pointStripeAt(t, srv)

	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/get-pricing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Name     string   `json:"name"`
		Price    float64  `json:"price"`
		Interval string   `json:"interval"`
		Features []string `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "TinyToken Pro" || resp.Price != 15 || resp.Interval != "month" {
		t.Fatalf("unexpected pricing %+v", resp)
	}
	if len(resp.Features) != 2 || resp.Features[0] != "Priority support" {
		t.Fatalf("expected metadata features, got %v", resp.Features)
	}
}

func TestGetPricingFallsBackToDefaultFeatures(t *testing.T) {
	config.STRIPE_PRICE_ID = "price_123"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": "price_123", "object": "price", "unit_amount": 900,
			"recurring": map[string]any{"interval": "month"},
			"product": map[string]any{
				"id": "prod_1", "object": "product", "name": "TinyToken",
				"metadata": map[string]string{"features": "not-json"},
			},
		})
	}))
	defer srv.Close()
	pointStripeAt(t, srv)

	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/get-pricing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unlimited API calls") {
		t.Fatalf("expected default features, got %s", rec.Body.String())
	}
}
