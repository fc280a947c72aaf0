package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ignite/shop/internal/models"
	"github.com/ignite/shop/internal/services"
)

const maxCheckoutBody = 1 << 16

// CheckoutRequest is the body of POST /api/checkout
type CheckoutRequest struct {
	PriceID string `json:"priceId"`
}

// CheckoutResponse represents the response sent to the client
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// CheckoutHandler creates checkout sessions for the buy button
type CheckoutHandler struct {
	checkoutService services.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// ServeHTTP handles the POST /api/checkout request
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody)).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	checkoutURL, err := h.checkoutService.CreateCheckout(r.Context(), req.PriceID)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPriceID) {
			sendErrorResponse(w, "priceId is required", http.StatusBadRequest)
			return
		}
		log.Printf("Error creating checkout session: %v", err)
		sendErrorResponse(w, "Failed to create checkout session", http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusCreated, CheckoutResponse{CheckoutURL: checkoutURL})
}

// CheckoutFormHandler is the no-JavaScript variant of CheckoutHandler
type CheckoutFormHandler struct {
	renderer        *Renderer
	checkoutService services.CheckoutService
}

// NewCheckoutFormHandler creates a new checkout form handler
func NewCheckoutFormHandler(renderer *Renderer, checkoutService services.CheckoutService) *CheckoutFormHandler {
	return &CheckoutFormHandler{
		renderer:        renderer,
		checkoutService: checkoutService,
	}
}

// ServeHTTP handles the POST /checkout form submission
func (h *CheckoutFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCheckoutBody)
	if err := r.ParseForm(); err != nil {
		h.renderer.errorPage(w, http.StatusBadRequest, "Pedido inválido.")
		return
	}

	checkoutURL, err := h.checkoutService.CreateCheckout(r.Context(), r.PostForm.Get("priceId"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidPriceID) {
			h.renderer.errorPage(w, http.StatusBadRequest, "Pedido inválido.")
			return
		}
		log.Printf("Error creating checkout session: %v", err)
		h.renderer.errorPage(w, http.StatusInternalServerError, "Não foi possível iniciar o pagamento. Tente novamente.")
		return
	}

	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}
