package handlers

import (
	"net/http"
)

// Health reports that the process is running. It never touches the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "OK")
}

// Ready opens and releases a store connection on every call.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ready.Check(r.Context()); err != nil {
		h.log.WithError(err).Warn("Readiness check failed")
		writeText(w, http.StatusServiceUnavailable, "NOT READY")
		return
	}
	writeText(w, http.StatusOK, "READY")
}
