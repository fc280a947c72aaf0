package handlers

import (
	"net/http"
)

// HealthHandler reports that the server is up
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
