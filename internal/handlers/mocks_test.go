package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/revalidate"
	"github.com/ignite/shop/web"
)

// MockProductService is a mock implementation of the product page sources for testing
type MockProductService struct {
	LookupProductFunc func(ctx context.Context, id string) revalidate.Result[models.DisplayProduct]
	ProductFunc       func(ctx context.Context, id string) (models.DisplayProduct, error)
	ListingFunc       func(ctx context.Context) ([]models.DisplayProduct, error)
	RevalidateFunc    func(ctx context.Context, id string) error
	TTL               time.Duration
}

func (m *MockProductService) LookupProduct(ctx context.Context, id string) revalidate.Result[models.DisplayProduct] {
	if m.LookupProductFunc != nil {
		return m.LookupProductFunc(ctx, id)
	}
	return revalidate.Result[models.DisplayProduct]{Status: revalidate.StatusPending}
}

func (m *MockProductService) Product(ctx context.Context, id string) (models.DisplayProduct, error) {
	if m.ProductFunc != nil {
		return m.ProductFunc(ctx, id)
	}
	return testProduct(id), nil
}

func (m *MockProductService) ProductTTL() time.Duration {
	return m.TTL
}

func (m *MockProductService) Listing(ctx context.Context) ([]models.DisplayProduct, error) {
	if m.ListingFunc != nil {
		return m.ListingFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductService) ListingTTL() time.Duration {
	return 2 * m.TTL
}

func (m *MockProductService) Revalidate(ctx context.Context, id string) error {
	if m.RevalidateFunc != nil {
		return m.RevalidateFunc(ctx, id)
	}
	return nil
}

// MockCheckoutService is a mock implementation of CheckoutService for testing
type MockCheckoutService struct {
	CreateCheckoutFunc     func(ctx context.Context, priceID string) (string, error)
	GetCheckoutSummaryFunc func(ctx context.Context, sessionID string) (*models.CheckoutSummary, error)
}

func (m *MockCheckoutService) CreateCheckout(ctx context.Context, priceID string) (string, error) {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, priceID)
	}
	return "https://pay.example/cs_test", nil
}

func (m *MockCheckoutService) GetCheckoutSummary(ctx context.Context, sessionID string) (*models.CheckoutSummary, error) {
	if m.GetCheckoutSummaryFunc != nil {
		return m.GetCheckoutSummaryFunc(ctx, sessionID)
	}
	return nil, models.ErrSessionNotFound
}

func testProduct(id string) models.DisplayProduct {
	return models.DisplayProduct{
		ID:             id,
		Name:           "Camiseta Beyond the Limits",
		ImageURL:       "https://files.example/camiseta.png",
		Price:          "R$ 79,90",
		DefaultPriceID: "price_123",
		Description:    "Tempor pariatur commodo.",
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	renderer, err := NewRenderer(web.Templates())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	return renderer
}

// withURLParam attaches a chi route parameter to req
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
