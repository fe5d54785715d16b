package reference

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Next generates the next sequential reference for the given table within the
// current year-month window, e.g. QT2026090042. Call inside the transaction
// that inserts the row so concurrent writers cannot reuse a sequence number.
func Next(tx *gorm.DB, prefix, table string, width int, at time.Time) (string, error) {
	monthStart := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())

	var count int64
	if err := tx.Table(table).
		Where("created_at >= ?", monthStart).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("count %s rows: %w", table, err)
	}

	return fmt.Sprintf("%s%s%0*d", prefix, at.Format("200601"), width, count+1), nil
}

// Prefixes and sequence widths per entity.
const (
	QuotePrefix    = "QT"
	BookingPrefix  = "BK"
	PaymentPrefix  = "PAY"
	TrackingPrefix = "TRK"

	QuoteWidth    = 4
	BookingWidth  = 4
	PaymentWidth  = 6
	TrackingWidth = 6
)
