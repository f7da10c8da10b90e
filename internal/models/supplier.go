package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:200;not null"`
	Address        string    `gorm:"type:text"`
	Phone          string    `gorm:"size:20"`
	Representative string    `gorm:"size:200"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
