package database

import (
	"context"
	"fmt"

	"github.com/sdko-org/ha-platform/internal/models"
	"gorm.io/gorm"
)

type VisitStore struct {
	connector Connector
}

func NewVisitStore(connector Connector) *VisitStore {
	return &VisitStore{connector: connector}
}

// Record inserts one visit and returns the total number of visits. Both steps
// run in one transaction; nothing is committed unless both succeed.
func (s *VisitStore) Record(ctx context.Context) (int64, error) {
	conn, err := s.connector.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var total int64
	err = conn.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Visit{}).Error; err != nil {
			return fmt.Errorf("insert visit: %w", err)
		}
		if err := tx.Model(&models.Visit{}).Count(&total).Error; err != nil {
			return fmt.Errorf("count visits: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
