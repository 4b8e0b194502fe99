package handlers

import (
	"net/http"
)

type visitResponse struct {
	Message     string `json:"message"`
	TotalVisits int64  `json:"total_visits"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	total, err := h.visits.Record(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to record visit")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, visitResponse{
		Message:     greeting,
		TotalVisits: total,
	})
}
