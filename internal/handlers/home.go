package handlers

import (
	"log"
	"net/http"

	"github.com/ignite/shop/internal/models"
)

// HomeHandler handles the product listing
type HomeHandler struct {
	renderer *Renderer
	listing  ListingPages
}

// HomePage represents the data for the home template
type HomePage struct {
	Products []models.DisplayProduct
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(renderer *Renderer, listing ListingPages) *HomeHandler {
	return &HomeHandler{
		renderer: renderer,
		listing:  listing,
	}
}

// ServeHTTP handles the GET / request
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	products, err := h.listing.Listing(r.Context())
	if err != nil {
		log.Printf("Error resolving product listing: %v", err)
		h.renderer.errorPage(w, http.StatusInternalServerError, "Não foi possível carregar os produtos. Tente novamente em instantes.")
		return
	}

	w.Header().Set("Cache-Control", revalidatingCacheControl(h.listing.ListingTTL()))
	h.renderer.page(w, http.StatusOK, PageHome, HomePage{Products: products})
}
