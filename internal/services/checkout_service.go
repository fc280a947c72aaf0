package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/ignite/shop/internal/models"
)

// CheckoutService starts hosted checkouts and reads them back
type CheckoutService interface {
	CreateCheckout(ctx context.Context, priceID string) (string, error)
	GetCheckoutSummary(ctx context.Context, sessionID string) (*models.CheckoutSummary, error)
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	catalog Catalog
	baseURL string
	newKey  func() string
}

// NewCheckoutService creates a new checkout service. baseURL is where the
// hosted checkout sends the shopper back to.
func NewCheckoutService(catalog Catalog, baseURL string) CheckoutService {
	return &CheckoutServiceImpl{
		catalog: catalog,
		baseURL: strings.TrimRight(baseURL, "/"),
		newKey:  func() string { return uuid.New().String() },
	}
}

// CreateCheckout creates a checkout session for one unit of priceID and
// returns the URL to send the shopper to
func (s *CheckoutServiceImpl) CreateCheckout(ctx context.Context, priceID string) (string, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return "", models.ErrInvalidPriceID
	}

	session, err := s.catalog.CreateCheckoutSession(ctx, &CheckoutRequest{
		PriceID:        priceID,
		Quantity:       1,
		SuccessURL:     s.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.baseURL + "/",
		IdempotencyKey: s.newKey(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	if session.URL == "" {
		return "", fmt.Errorf("checkout session %s has no URL", session.ID)
	}

	log.Printf("Checkout session created - SessionID: %s, PriceID: %s", session.ID, priceID)
	return session.URL, nil
}

// GetCheckoutSummary reads back a checkout session for the success page
func (s *CheckoutServiceImpl) GetCheckoutSummary(ctx context.Context, sessionID string) (*models.CheckoutSummary, error) {
	if sessionID == "" {
		return nil, models.ErrMissingSessionID
	}

	reader, ok := s.catalog.(SessionReader)
	if !ok {
		return nil, fmt.Errorf("catalog cannot read checkout sessions")
	}

	summary, err := reader.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return summary, nil
}
