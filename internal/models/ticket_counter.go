package models

// TicketCounter: single-row table backing the ticket number sequence.
// Incremented under a row lock so concurrent creations never repeat a number.
type TicketCounter struct {
	ID        uint  `gorm:"primaryKey"`
	LastValue int64 `gorm:"not null"`
}
