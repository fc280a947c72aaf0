package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ignite/shop/internal/config"
	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/revalidate"
)

const listingKey = "all"

// Paths is the set of product pages built ahead of the first request
type Paths struct {
	IDs []string
	// Fallback means identifiers outside IDs are resolved on demand
	Fallback bool
}

// ProductService resolves catalog entries into display records and keeps
// them fresh
type ProductService struct {
	catalog   Catalog
	staticIDs []string
	products  *revalidate.Resolver[models.DisplayProduct]
	listing   *revalidate.Resolver[[]models.DisplayProduct]
}

// ProductStores are the optional snapshot stores for product pages and the
// listing; nil stores keep everything in memory
type ProductStores struct {
	Products revalidate.Store[models.DisplayProduct]
	Listing  revalidate.Store[[]models.DisplayProduct]
}

// NewProductService creates a new product service
func NewProductService(catalog Catalog, cfg *config.PagesConfig, stores ProductStores) *ProductService {
	return newProductService(catalog, cfg, stores, time.Now)
}

func newProductService(catalog Catalog, cfg *config.PagesConfig, stores ProductStores, now func() time.Time) *ProductService {
	s := &ProductService{
		catalog:   catalog,
		staticIDs: cfg.StaticProductIDs,
	}

	s.products = revalidate.NewResolver("product", s.ResolveProduct, stores.Products, revalidate.Options{
		TTL:          cfg.RevalidateInterval,
		FailureTTL:   cfg.FailureTTL,
		FetchTimeout: cfg.FetchTimeout,
		Now:          now,
	})
	s.listing = revalidate.NewResolver("listing", func(ctx context.Context, _ string) ([]models.DisplayProduct, error) {
		return s.ResolveListing(ctx)
	}, stores.Listing, revalidate.Options{
		TTL:          cfg.ListingRevalidateInterval,
		FailureTTL:   cfg.FailureTTL,
		FetchTimeout: cfg.FetchTimeout,
		Now:          now,
	})

	return s
}

// StaticPaths returns the product pages to build ahead of time. Any other
// identifier is resolved on its first request.
func (s *ProductService) StaticPaths() Paths {
	ids := make([]string, len(s.staticIDs))
	copy(ids, s.staticIDs)
	return Paths{IDs: ids, Fallback: true}
}

// ResolveProduct fetches a catalog entry with its default price and shapes
// it for display
func (s *ProductService) ResolveProduct(ctx context.Context, id string) (models.DisplayProduct, error) {
	entry, err := s.catalog.RetrieveProduct(ctx, id)
	if err != nil {
		return models.DisplayProduct{}, err
	}

	product, err := models.NewDisplayProduct(entry)
	if err != nil {
		return models.DisplayProduct{}, fmt.Errorf("failed to shape product %s: %w", id, err)
	}

	return *product, nil
}

// ResolveListing fetches every active product. Products without a default
// price cannot be bought and are left out.
func (s *ProductService) ResolveListing(ctx context.Context) ([]models.DisplayProduct, error) {
	lister, ok := s.catalog.(ProductLister)
	if !ok {
		return nil, errors.New("catalog cannot list products")
	}

	entries, err := lister.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]models.DisplayProduct, 0, len(entries))
	for _, entry := range entries {
		product, err := models.NewDisplayProduct(entry)
		if err != nil {
			log.Printf("Skipping product in listing: %v", err)
			continue
		}
		products = append(products, *product)
	}

	return products, nil
}

// LookupProduct returns the cached state of a product page without waiting
// for the catalog
func (s *ProductService) LookupProduct(ctx context.Context, id string) revalidate.Result[models.DisplayProduct] {
	return s.products.Lookup(ctx, id)
}

// Product waits for a product page to be resolved
func (s *ProductService) Product(ctx context.Context, id string) (models.DisplayProduct, error) {
	return s.products.Resolve(ctx, id)
}

// Listing waits for the home listing to be resolved
func (s *ProductService) Listing(ctx context.Context) ([]models.DisplayProduct, error) {
	return s.listing.Resolve(ctx, listingKey)
}

// ProductTTL is the revalidation interval of product pages
func (s *ProductService) ProductTTL() time.Duration {
	return s.products.TTL()
}

// ListingTTL is the revalidation interval of the home listing
func (s *ProductService) ListingTTL() time.Duration {
	return s.listing.TTL()
}

// Prebuild resolves the listing and every static path
func (s *ProductService) Prebuild(ctx context.Context) error {
	if _, ok := s.catalog.(ProductLister); ok {
		products, err := s.listing.Prime(ctx, listingKey)
		if err != nil {
			return fmt.Errorf("failed to build listing: %w", err)
		}
		log.Printf("Built listing with %d products", len(products))
	}

	for _, id := range s.staticIDs {
		if _, err := s.products.Prime(ctx, id); err != nil {
			return fmt.Errorf("failed to build product %s: %w", id, err)
		}
		log.Printf("Built product page %s", id)
	}

	return nil
}

// Revalidate drops a product page, or the listing when id is empty, so the
// next request resolves it again
func (s *ProductService) Revalidate(ctx context.Context, id string) error {
	if id == "" {
		return s.listing.Invalidate(ctx, listingKey)
	}
	return s.products.Invalidate(ctx, id)
}

// Wait blocks until background resolutions have finished
func (s *ProductService) Wait() {
	s.products.Wait()
	s.listing.Wait()
}
