package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product: a commodity priced per quintal. Price changes here never touch
// report items that already snapshotted an older price.
type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:200;not null;uniqueIndex"`
	PricePerQuintal float64   `gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
