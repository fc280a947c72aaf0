package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// RevalidateHandler drops a cached product page, or the listing, on demand
type RevalidateHandler struct {
	pages PageRevalidator
	token string
}

// NewRevalidateHandler creates a new revalidate handler guarded by token
func NewRevalidateHandler(pages PageRevalidator, token string) *RevalidateHandler {
	return &RevalidateHandler{
		pages: pages,
		token: token,
	}
}

// ServeHTTP handles the POST /api/revalidate?id= request
func (h *RevalidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		sendErrorResponse(w, "Invalid revalidation token", http.StatusUnauthorized)
		return
	}

	id := r.URL.Query().Get("id")
	if id != "" && !validProductID(id) {
		sendErrorResponse(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.pages.Revalidate(r.Context(), id); err != nil {
		log.Printf("Error revalidating %q: %v", id, err)
		sendErrorResponse(w, "Failed to revalidate", http.StatusInternalServerError)
		return
	}

	if id == "" {
		log.Printf("Listing revalidated on demand")
	} else {
		log.Printf("Product %s revalidated on demand", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RevalidateHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return false
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
