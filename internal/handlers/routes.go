package handlers

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.HandleFunc("/", h.Index).Methods("GET")
}

// NewRouter wires the middleware chain and routes onto a fresh router.
func NewRouter(logger *logrus.Logger, h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger), RecoveryMiddleware(logger))
	RegisterRoutes(r, h)
	return r
}
