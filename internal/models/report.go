package models

import (
	"time"

	"bascula-backend/internal/weighing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportState string

const (
	ReportPending   ReportState = "PENDING"
	ReportApproved  ReportState = "APPROVED"
	ReportCancelled ReportState = "CANCELLED"
)

// Report: one weighing ticket. Gross/tare/net are the scale readings in
// pounds; item weights are normalized to quintals for pricing.
type Report struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketNumber string    `gorm:"size:50;uniqueIndex;not null"`
	ReportDate   time.Time `gorm:"type:date;index;not null"`
	PlateNumber  string    `gorm:"size:20;not null"`
	DriverName   string    `gorm:"size:200;not null"`

	SupplierID uuid.UUID `gorm:"type:uuid;index;not null"`
	Supplier   Supplier
	UserID     uuid.UUID `gorm:"type:uuid;not null"` // user that issued the ticket
	User       User

	GrossWeight float64 `gorm:"type:decimal(10,2);not null"`
	TareWeight  float64 `gorm:"type:decimal(10,2);not null;default:0"` // 0 until finish (or supplied at creation)
	NetWeight   float64 `gorm:"type:decimal(10,2);not null;default:0"`

	ExtraPercentage float64 `gorm:"type:decimal(5,2);not null;default:0"` // system config snapshot at creation
	BasePrice       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice      float64 `gorm:"type:decimal(12,2);not null;default:0"`

	State ReportState `gorm:"size:20;index;not null;default:PENDING"`

	Items []ReportItem `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReportItem: one commodity line on a ticket. Weight and unit stay exactly as
// submitted; WeightInQuintals and BasePrice are derived and recomputed when
// the report is finished.
type ReportItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReportID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	Product   Product

	Weight           float64       `gorm:"type:decimal(10,2);not null"`
	WeightUnit       weighing.Unit `gorm:"size:20;not null"`
	DiscountWeight   float64       `gorm:"type:decimal(10,4);not null;default:0"` // fixed deduction in quintals
	WeightInQuintals float64       `gorm:"type:decimal(10,4);not null"`           // effective weight after deductions
	PricePerQuintal  float64       `gorm:"type:decimal(10,2);not null"`           // product price snapshot at add time
	BasePrice        float64       `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

func (i *ReportItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
