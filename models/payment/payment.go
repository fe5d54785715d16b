package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a money movement against a booking. Refunds are stored as
// separate completed payments with a negative amount, so the ledger for a
// booking is append only and sums to the net paid amount.
type Payment struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	PaymentReference string          `json:"payment_reference" gorm:"type:varchar(32);uniqueIndex;not null"`
	BookingID        uint            `json:"booking_id" gorm:"index;not null"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency         string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	PaymentMethod    PaymentMethod   `json:"payment_method" gorm:"type:varchar(30);not null"`
	Status           PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	TransactionID    string          `json:"transaction_id" gorm:"type:varchar(100)"`
	GatewayResponse  string          `json:"gateway_response" gorm:"type:text"`
	Notes            string          `json:"notes" gorm:"type:text"`
	RefundOfID       *uint           `json:"refund_of_id" gorm:"index"`
	ProcessedAt      *time.Time      `json:"processed_at"`
	ProcessedBy      *string         `json:"processed_by" gorm:"type:varchar(100)"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsRefund reports whether this row records a refund.
func (p *Payment) IsRefund() bool {
	return p.RefundOfID != nil || p.Amount.IsNegative()
}

// ProcessingMinutes returns the minutes between creation and processing,
// or 0 when the payment has not been processed.
func (p *Payment) ProcessingMinutes() float64 {
	if p.ProcessedAt == nil {
		return 0
	}
	return p.ProcessedAt.Sub(p.CreatedAt).Minutes()
}

// IsOverdue reports whether a pending payment has been waiting longer than
// the given number of days.
func (p *Payment) IsOverdue(at time.Time, days int) bool {
	if p.Status != StatusPending {
		return false
	}
	return at.Sub(p.CreatedAt) > time.Duration(days)*24*time.Hour
}

// Filter narrows payment listings.
type Filter struct {
	BookingID *uint
	Status    PaymentStatus
	Method    PaymentMethod
	DateFrom  *time.Time
	DateTo    *time.Time
}

func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.BookingID != nil {
		query = query.Where("booking_id = ?", *f.BookingID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		query = query.Where("payment_method = ?", f.Method)
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	return query
}
