package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/revalidate"
)

// ProductHandler handles the product detail page. A product that has never
// been resolved gets a loading skeleton while it resolves in the background.
type ProductHandler struct {
	renderer *Renderer
	products ProductPages
}

// ProductPage represents the data for the product template
type ProductPage struct {
	Product models.DisplayProduct
}

// ProductFallbackPage represents the data for the skeleton template
type ProductFallbackPage struct {
	ID      string
	DataURL string
}

// NewProductHandler creates a new product handler
func NewProductHandler(renderer *Renderer, products ProductPages) *ProductHandler {
	return &ProductHandler{
		renderer: renderer,
		products: products,
	}
}

// ServeHTTP handles the GET /product/{id} request
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validProductID(id) {
		h.renderer.errorPage(w, http.StatusNotFound, "Este produto não existe.")
		return
	}

	res := h.products.LookupProduct(r.Context(), id)
	switch res.Status {
	case revalidate.StatusPending:
		w.Header().Set("Cache-Control", noStoreCacheControl)
		h.renderer.page(w, http.StatusOK, PageProductFallback, ProductFallbackPage{
			ID:      id,
			DataURL: productDataURL(id),
		})
	case revalidate.StatusFailed:
		h.resolveError(w, id, res.Err)
	default:
		w.Header().Set("Cache-Control", revalidatingCacheControl(h.products.ProductTTL()))
		h.renderer.page(w, http.StatusOK, PageProduct, ProductPage{Product: res.Value})
	}
}

func (h *ProductHandler) resolveError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, models.ErrProductNotFound) {
		h.renderer.errorPage(w, http.StatusNotFound, "Este produto não existe.")
		return
	}

	log.Printf("Error resolving product %s: %v", id, err)
	h.renderer.errorPage(w, http.StatusInternalServerError, "Não foi possível carregar este produto. Tente novamente em instantes.")
}

func productDataURL(id string) string {
	return "/_data/products/" + url.PathEscape(id) + ".json"
}
