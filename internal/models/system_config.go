package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemConfig: single lazily-created row holding the default extra
// percentage applied to new reports.
type SystemConfig struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExtraPercentage float64   `gorm:"type:decimal(5,2);not null;default:5.00"`
	UpdatedAt       time.Time
}

func (c *SystemConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
