package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/ignite/shop/internal/config"
	"github.com/ignite/shop/internal/models"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeClient implements Catalog, ProductLister and SessionReader on top of
// the Stripe API
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a new Stripe API client
func NewStripeClient(cfg *config.StripeConfig) *StripeClient {
	var backends *stripe.Backends
	if cfg.APIURL != "" {
		backends = stripe.NewBackendsWithConfig(&stripe.BackendConfig{
			URL:               stripe.String(cfg.APIURL),
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
		})
	}

	return &StripeClient{
		api: client.New(cfg.SecretKey, backends),
	}
}

// RetrieveProduct fetches a product with its default price expanded
func (c *StripeClient) RetrieveProduct(ctx context.Context, id string) (*models.CatalogEntry, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	params.AddExpand("default_price")

	product, err := c.api.Products.Get(id, params)
	if err != nil {
		if isResourceMissing(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve product %s: %w", id, err)
	}

	return toCatalogEntry(product), nil
}

// ListProducts lists active products with their default prices expanded
func (c *StripeClient) ListProducts(ctx context.Context) ([]*models.CatalogEntry, error) {
	params := &stripe.ProductListParams{
		Active: stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)
	params.AddExpand("data.default_price")

	var entries []*models.CatalogEntry
	iter := c.api.Products.List(params)
	for iter.Next() {
		entries = append(entries, toCatalogEntry(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return entries, nil
}

// CreateCheckoutSession creates a payment-mode Checkout Session for a single price
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	log.Printf("Stripe checkout session created - ID: %s", session.ID)

	return &CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// RetrieveCheckoutSession reads a Checkout Session with its line items expanded
func (c *StripeClient) RetrieveCheckoutSession(ctx context.Context, id string) (*models.CheckoutSummary, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items.data.price.product")

	session, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		if isResourceMissing(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", id, err)
	}

	summary := &models.CheckoutSummary{
		SessionID:     session.ID,
		PaymentStatus: string(session.PaymentStatus),
	}
	if session.CustomerDetails != nil {
		summary.CustomerName = session.CustomerDetails.Name
	}
	if session.LineItems != nil && len(session.LineItems.Data) > 0 {
		item := session.LineItems.Data[0]
		summary.ProductName = item.Description
		if item.Price != nil && item.Price.Product != nil {
			if item.Price.Product.Name != "" {
				summary.ProductName = item.Price.Product.Name
			}
			if len(item.Price.Product.Images) > 0 {
				summary.ImageURL = item.Price.Product.Images[0]
			}
		}
	}

	return summary, nil
}

func toCatalogEntry(p *stripe.Product) *models.CatalogEntry {
	entry := &models.CatalogEntry{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
	}
	if p.DefaultPrice != nil {
		entry.DefaultPrice = &models.Price{
			ID:         p.DefaultPrice.ID,
			UnitAmount: p.DefaultPrice.UnitAmount,
			Currency:   string(p.DefaultPrice.Currency),
		}
	}
	return entry
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound
}
