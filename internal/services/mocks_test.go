package services

import (
	"context"

	"github.com/ignite/shop/internal/models"
)

// MockCatalog is a mock implementation of Catalog for testing
type MockCatalog struct {
	RetrieveProductFunc       func(ctx context.Context, id string) (*models.CatalogEntry, error)
	CreateCheckoutSessionFunc func(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
}

func (m *MockCatalog) RetrieveProduct(ctx context.Context, id string) (*models.CatalogEntry, error) {
	if m.RetrieveProductFunc != nil {
		return m.RetrieveProductFunc(ctx, id)
	}
	return nil, models.ErrProductNotFound
}

func (m *MockCatalog) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, req)
	}
	return &CheckoutSession{ID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

// MockFullCatalog also lists products and reads checkout sessions
type MockFullCatalog struct {
	MockCatalog
	ListProductsFunc            func(ctx context.Context) ([]*models.CatalogEntry, error)
	RetrieveCheckoutSessionFunc func(ctx context.Context, id string) (*models.CheckoutSummary, error)
}

func (m *MockFullCatalog) ListProducts(ctx context.Context) ([]*models.CatalogEntry, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx)
	}
	return nil, nil
}

func (m *MockFullCatalog) RetrieveCheckoutSession(ctx context.Context, id string) (*models.CheckoutSummary, error) {
	if m.RetrieveCheckoutSessionFunc != nil {
		return m.RetrieveCheckoutSessionFunc(ctx, id)
	}
	return nil, models.ErrSessionNotFound
}

func catalogEntry(id string, unitAmount int64) *models.CatalogEntry {
	return &models.CatalogEntry{
		ID:          id,
		Name:        "Product " + id,
		Description: "Description of " + id,
		Images:      []string{"https://files.example/" + id + ".png"},
		DefaultPrice: &models.Price{
			ID:         "price_" + id,
			UnitAmount: unitAmount,
			Currency:   "brl",
		},
	}
}
