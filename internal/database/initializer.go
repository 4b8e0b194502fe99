package database

import (
	"context"
	"fmt"

	"github.com/sdko-org/ha-platform/internal/models"
	"github.com/sdko-org/ha-platform/internal/retry"
	"github.com/sirupsen/logrus"
)

// Initializer makes sure the schema exists before traffic is served,
// waiting out a store that is still starting.
type Initializer struct {
	connector Connector
	retrier   *retry.Retrier
	log       *logrus.Entry
}

func NewInitializer(logger *logrus.Logger, connector Connector, retrier *retry.Retrier) *Initializer {
	return &Initializer{
		connector: connector,
		retrier:   retrier,
		log:       logger.WithField("component", "initializer"),
	}
}

func (i *Initializer) Run(ctx context.Context) error {
	err := i.retrier.Do(ctx, "database_init", func(ctx context.Context, attempt int) error {
		i.log.WithField("attempt", attempt).Debug("Waiting for database")
		return i.ensureSchema(ctx)
	})
	if err != nil {
		i.log.WithError(err).Error("Database initialization aborted")
		return err
	}

	i.log.Info("Database initialized successfully")
	return nil
}

func (i *Initializer) ensureSchema(ctx context.Context) error {
	conn, err := i.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	// An existing table is left exactly as it is.
	migrator := conn.DB.WithContext(ctx).Migrator()
	if migrator.HasTable(&models.Visit{}) {
		return nil
	}
	if err := migrator.CreateTable(&models.Visit{}); err != nil {
		return fmt.Errorf("create visits table: %w", err)
	}
	return nil
}
