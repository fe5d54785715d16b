package booking

import (
	"time"

	"vehicle-shipping/models/customer"
	"vehicle-shipping/models/quote"
	"vehicle-shipping/models/route"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking is a committed shipping order, created from an approved quote or
// directly. It is tracked through fulfillment by the status machine in
// enums.go.
type Booking struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingReference string `gorm:"type:varchar(20);not null;unique" json:"booking_reference"`

	CustomerID uint              `gorm:"not null;index" json:"customer_id"`
	Customer   customer.Customer `gorm:"foreignKey:CustomerID" json:"customer"`

	RouteID uint        `gorm:"not null;index" json:"route_id"`
	Route   route.Route `gorm:"foreignKey:RouteID" json:"route"`

	// Nullable: a booking may be created without a prior quote.
	QuoteID *uint        `gorm:"index" json:"quote_id,omitempty"`
	Quote   *quote.Quote `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`

	VehicleDetails quote.VehicleDetails `gorm:"type:json" json:"vehicle_details"`

	Status BookingStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	Currency    string          `gorm:"type:varchar(3);not null;default:USD" json:"currency"`

	PickupDate        *time.Time `json:"pickup_date,omitempty"`
	DeliveryDate      *time.Time `json:"delivery_date,omitempty"`
	EstimatedDelivery *time.Time `gorm:"index" json:"estimated_delivery,omitempty"`

	RecipientName    string  `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientPhone   string  `gorm:"type:varchar(20);not null" json:"recipient_phone"`
	RecipientEmail   *string `gorm:"type:varchar(255)" json:"recipient_email,omitempty"`
	RecipientCountry string  `gorm:"type:varchar(100);not null" json:"recipient_country"`
	RecipientCity    string  `gorm:"type:varchar(100);not null" json:"recipient_city"`
	RecipientAddress string  `gorm:"type:varchar(500);not null" json:"recipient_address"`

	SpecialInstructions *string `gorm:"type:text" json:"special_instructions,omitempty"`
	Notes               *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PaymentStatus derives the paid/partial/unpaid label from the running
// amounts. The label is never stored as ground truth.
func (b *Booking) PaymentStatus() PaymentStatus {
	return DerivePaymentStatus(b.PaidAmount, b.TotalAmount)
}

// DerivePaymentStatus computes the payment label for any amount pair.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case total.IsPositive() && paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case paid.IsPositive() && paid.LessThan(total):
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// BalanceAmount is the outstanding amount still owed.
func (b *Booking) BalanceAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// IsOverdue reports whether the estimated delivery has passed without the
// booking reaching a terminal state. Overdue is a derived predicate, not a
// status.
func (b *Booking) IsOverdue(at time.Time) bool {
	if b.EstimatedDelivery == nil {
		return false
	}
	if b.Status == StatusDelivered || b.Status == StatusCompleted || b.Status == StatusCancelled {
		return false
	}
	return b.EstimatedDelivery.Before(at)
}

// ValidateDates checks delivery_date > pickup_date when both are set.
func ValidateDates(pickup, delivery *time.Time) bool {
	if pickup == nil || delivery == nil {
		return true
	}
	return delivery.After(*pickup)
}

// ProgressPercent maps a status onto a coarse fulfillment percentage for
// customer-facing progress bars.
func (b *Booking) ProgressPercent() int {
	switch b.Status {
	case StatusConfirmed:
		return 25
	case StatusProcessing:
		return 40
	case StatusInTransit:
		return 60
	case StatusDelivered, StatusCompleted:
		return 100
	default:
		return 0
	}
}

// Filter enumerates the supported booking list predicates.
type Filter struct {
	Status     BookingStatus
	CustomerID uint
	RouteID    uint
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
}

// Apply composes the filter onto a bookings query.
func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.CustomerID != 0 {
		query = query.Where("customer_id = ?", f.CustomerID)
	}
	if f.RouteID != 0 {
		query = query.Where("route_id = ?", f.RouteID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("booking_reference ILIKE ? OR recipient_name ILIKE ?", like, like)
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	if f.AmountMin != nil {
		query = query.Where("total_amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		query = query.Where("total_amount <= ?", *f.AmountMax)
	}
	return query
}
