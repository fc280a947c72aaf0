package models

import (
	"errors"
	"fmt"
)

// Price is the provider's price object as returned by an expanded lookup
type Price struct {
	ID         string
	UnitAmount int64
	Currency   string
}

// CatalogEntry is a product record in the payment provider's catalog
type CatalogEntry struct {
	ID           string
	Name         string
	Description  string
	Images       []string
	DefaultPrice *Price
}

// DisplayProduct is the flat record the product pages render
type DisplayProduct struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	Price          string `json:"price"`
	DefaultPriceID string `json:"defaultPriceId"`
	Description    string `json:"description"`
}

// CheckoutSummary is what the success page shows once the shopper returns
// from the hosted checkout
type CheckoutSummary struct {
	SessionID     string
	CustomerName  string
	ProductName   string
	ImageURL      string
	PaymentStatus string
}

// Domain errors
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrMissingDefaultPrice = errors.New("product has no default price")
	ErrInvalidPriceID      = errors.New("price id is required")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrMissingSessionID    = errors.New("checkout session id is required")
)

// NewDisplayProduct shapes a catalog entry into a DisplayProduct. The price
// string and the default price id are both taken from entry.DefaultPrice.
func NewDisplayProduct(entry *CatalogEntry) (*DisplayProduct, error) {
	if entry == nil {
		return nil, ErrProductNotFound
	}
	if entry.DefaultPrice == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingDefaultPrice, entry.ID)
	}

	var imageURL string
	if len(entry.Images) > 0 {
		imageURL = entry.Images[0]
	}

	return &DisplayProduct{
		ID:             entry.ID,
		Name:           entry.Name,
		ImageURL:       imageURL,
		Price:          FormatPrice(entry.DefaultPrice.UnitAmount),
		DefaultPriceID: entry.DefaultPrice.ID,
		Description:    entry.Description,
	}, nil
}
