package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/shop/internal/models"
)

// ProductDataHandler serves the resolved product as JSON, waiting for the
// resolution if it is still in flight. The loading skeleton polls it.
type ProductDataHandler struct {
	products ProductPages
}

// NewProductDataHandler creates a new product data handler
func NewProductDataHandler(products ProductPages) *ProductDataHandler {
	return &ProductDataHandler{products: products}
}

// ServeHTTP handles the GET /_data/products/{id}.json request
func (h *ProductDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validProductID(id) {
		sendErrorResponse(w, "Product not found", http.StatusNotFound)
		return
	}

	product, err := h.products.Product(r.Context(), id)
	if err != nil {
		w.Header().Set("Cache-Control", noStoreCacheControl)
		if errors.Is(err, models.ErrProductNotFound) {
			sendErrorResponse(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("Error resolving product %s: %v", id, err)
		sendErrorResponse(w, "Failed to resolve product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", revalidatingCacheControl(h.products.ProductTTL()))
	sendJSON(w, http.StatusOK, product)
}
