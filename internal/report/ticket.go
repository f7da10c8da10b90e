package report

import (
	"errors"
	"fmt"
	"strconv"

	"bascula-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ticketWidth     = 6
	ticketCounterID = 1
)

// nextTicketNumber hands out the next ticket number inside the caller's
// transaction, holding a row lock on the counter so concurrent creations
// cannot repeat or skip a number. The counter is seeded from the highest
// existing ticket the first time it runs.
func nextTicketNumber(tx *gorm.DB) (string, error) {
	var counter models.TicketCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "id = ?", ticketCounterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed, serr := highestTicketValue(tx)
		if serr != nil {
			return "", serr
		}
		if cerr := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.TicketCounter{ID: ticketCounterID, LastValue: seed}).Error; cerr != nil {
			return "", cerr
		}
		// Re-read under lock in case another creation won the insert race.
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "id = ?", ticketCounterID).Error
	}
	if err != nil {
		return "", err
	}

	counter.LastValue++
	if err := tx.Model(&models.TicketCounter{}).
		Where("id = ?", ticketCounterID).
		Update("last_value", counter.LastValue).Error; err != nil {
		return "", err
	}

	return formatTicket(counter.LastValue), nil
}

func highestTicketValue(tx *gorm.DB) (int64, error) {
	var last models.Report
	err := tx.Order("ticket_number DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseTicket(last.TicketNumber), nil
}

func formatTicket(n int64) string {
	return fmt.Sprintf("%0*d", ticketWidth, n)
}

// parseTicket reads a ticket back as an integer; malformed legacy values
// count as zero so seeding can still proceed.
func parseTicket(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
