package handlers

import (
	"context"
	"time"

	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/revalidate"
)

// ProductPages is what the product page handlers need from the product service
type ProductPages interface {
	LookupProduct(ctx context.Context, id string) revalidate.Result[models.DisplayProduct]
	Product(ctx context.Context, id string) (models.DisplayProduct, error)
	ProductTTL() time.Duration
}

// ListingPages is what the home handler needs from the product service
type ListingPages interface {
	Listing(ctx context.Context) ([]models.DisplayProduct, error)
	ListingTTL() time.Duration
}

// PageRevalidator drops cached pages on demand
type PageRevalidator interface {
	Revalidate(ctx context.Context, id string) error
}
