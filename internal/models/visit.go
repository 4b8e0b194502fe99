package models

import (
	"time"
)

// Visit is one recorded hit on the root endpoint. Rows are insert-only.
type Visit struct {
	ID uint      `gorm:"primaryKey;autoIncrement"`
	Ts time.Time `gorm:"column:ts;type:timestamp;default:CURRENT_TIMESTAMP"`
}

func (Visit) TableName() string {
	return "visits"
}
