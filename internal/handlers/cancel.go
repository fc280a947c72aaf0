package handlers

import (
	"net/http"
)

// CancelHandler handles the page shown when the shopper leaves the hosted
// checkout without paying
type CancelHandler struct {
	renderer *Renderer
}

// NewCancelHandler creates a new cancel handler
func NewCancelHandler(renderer *Renderer) *CancelHandler {
	return &CancelHandler{renderer: renderer}
}

// ServeHTTP handles the GET /cancel request
func (h *CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.renderer.page(w, http.StatusOK, PageCancel, nil)
}
