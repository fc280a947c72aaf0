package config

import (
	"fmt"
	"strings"
	"time"
)

// Page store backends
const (
	PageStoreMemory   = "memory"
	PageStoreRedis    = "redis"
	PageStorePostgres = "postgres"
)

// PagesConfig controls how product pages are generated and revalidated
type PagesConfig struct {
	// RevalidateInterval is how long a resolved product page stays fresh
	RevalidateInterval time.Duration
	// ListingRevalidateInterval is how long the home listing stays fresh
	ListingRevalidateInterval time.Duration
	// FailureTTL is how long a failed first resolution is reported
	FailureTTL time.Duration
	// FetchTimeout bounds background catalog lookups
	FetchTimeout time.Duration
	// StaticProductIDs are built ahead of the first request
	StaticProductIDs []string
	// RevalidateToken enables on-demand revalidation when set
	RevalidateToken string
	// Store selects where resolved pages are persisted
	Store string
}

// LoadPagesConfig loads page generation configuration from environment variables
func LoadPagesConfig(getenv func(string) string) (*PagesConfig, error) {
	config := &PagesConfig{
		RevalidateInterval:        secondsOrDefault(getenv, "REVALIDATE_SECONDS", time.Hour),
		ListingRevalidateInterval: secondsOrDefault(getenv, "LISTING_REVALIDATE_SECONDS", 2*time.Hour),
		FailureTTL:                secondsOrDefault(getenv, "FAILURE_TTL_SECONDS", 10*time.Second),
		FetchTimeout:              secondsOrDefault(getenv, "FETCH_TIMEOUT_SECONDS", 15*time.Second),
		StaticProductIDs:          splitList(getenv("STATIC_PRODUCT_IDS")),
		RevalidateToken:           getenv("REVALIDATE_TOKEN"),
		Store:                     strings.ToLower(getenv("PAGE_STORE")),
	}

	if config.Store == "" {
		config.Store = PageStoreMemory
	}

	switch config.Store {
	case PageStoreMemory, PageStoreRedis, PageStorePostgres:
	default:
		return nil, fmt.Errorf("PAGE_STORE must be one of %s, %s, %s; got %q",
			PageStoreMemory, PageStoreRedis, PageStorePostgres, config.Store)
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
