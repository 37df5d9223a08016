package handlers

import "net/http"

// HandleHealth reports liveness.
func (d *Dependencies) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
