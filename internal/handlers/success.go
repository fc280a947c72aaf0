package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/services"
)

// SuccessHandler handles the page the hosted checkout returns to after payment
type SuccessHandler struct {
	renderer        *Renderer
	checkoutService services.CheckoutService
}

// SuccessPage represents the data for the success template
type SuccessPage struct {
	Summary *models.CheckoutSummary
}

// NewSuccessHandler creates a new success handler
func NewSuccessHandler(renderer *Renderer, checkoutService services.CheckoutService) *SuccessHandler {
	return &SuccessHandler{
		renderer:        renderer,
		checkoutService: checkoutService,
	}
}

// ServeHTTP handles the GET /success request
func (h *SuccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	summary, err := h.checkoutService.GetCheckoutSummary(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			h.renderer.errorPage(w, http.StatusNotFound, "Não encontramos esta compra.")
			return
		}
		log.Printf("Error reading checkout session %s: %v", sessionID, err)
		h.renderer.errorPage(w, http.StatusInternalServerError, "Não foi possível carregar sua compra. Tente novamente em instantes.")
		return
	}

	w.Header().Set("Cache-Control", noStoreCacheControl)
	h.renderer.page(w, http.StatusOK, PageSuccess, SuccessPage{Summary: summary})
}
