package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
)

const greeting = "Hello from HA Platform!"

// ReadinessChecker reports whether the store can currently be reached.
type ReadinessChecker interface {
	Check(ctx context.Context) error
}

// VisitRecorder persists one visit and returns the running total.
type VisitRecorder interface {
	Record(ctx context.Context) (int64, error)
}

type Handler struct {
	ready  ReadinessChecker
	visits VisitRecorder
	log    *logrus.Entry
}

func NewHandler(logger *logrus.Logger, ready ReadinessChecker, visits VisitRecorder) *Handler {
	return &Handler{
		ready:  ready,
		visits: visits,
		log:    logger.WithField("component", "handler"),
	}
}
