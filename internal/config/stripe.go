package config

import (
	"fmt"
)

// StripeConfig holds configuration for the Stripe integration
type StripeConfig struct {
	SecretKey string
	// APIURL overrides the Stripe API base URL, e.g. for stripe-mock
	APIURL string
}

// LoadStripeConfig loads Stripe configuration from environment variables
func LoadStripeConfig(getenv func(string) string) (*StripeConfig, error) {
	config := StripeConfig{
		SecretKey: getenv("STRIPE_SECRET_KEY"),
		APIURL:    getenv("STRIPE_API_URL"),
	}

	// Validate required fields
	if config.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	return &config, nil
}
