package services

import (
	"context"

	"github.com/ignite/shop/internal/models"
)

// Catalog is the payment provider as the storefront sees it: a product
// catalog that can be read by id and a hosted checkout that can be started
// for a price
type Catalog interface {
	RetrieveProduct(ctx context.Context, id string) (*models.CatalogEntry, error)
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
}

// ProductLister is implemented by catalogs that can enumerate active products
type ProductLister interface {
	ListProducts(ctx context.Context) ([]*models.CatalogEntry, error)
}

// SessionReader is implemented by catalogs that can read back a checkout
// session after the shopper returns from it
type SessionReader interface {
	RetrieveCheckoutSession(ctx context.Context, id string) (*models.CheckoutSummary, error)
}

// CheckoutRequest describes a one-item hosted checkout
type CheckoutRequest struct {
	PriceID        string
	Quantity       int64
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// CheckoutSession is a created hosted checkout
type CheckoutSession struct {
	ID  string
	URL string
}
