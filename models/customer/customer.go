package customer

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a shipping customer with portal access.
type Customer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone     string `gorm:"type:varchar(20);not null" json:"phone"`

	Country    string  `gorm:"type:varchar(100);not null" json:"country"`
	City       string  `gorm:"type:varchar(100);not null" json:"city"`
	Address    *string `gorm:"type:varchar(500)" json:"address,omitempty"`
	PostalCode *string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`

	Status CustomerStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`

	// Portal credentials are provisioned when a quote is approved. The
	// temporary password is stored encrypted and flagged so the portal can
	// force a change on first login.
	PasswordEncrypted   *string `gorm:"type:text" json:"-"`
	PasswordIsTemporary bool    `gorm:"default:false" json:"password_is_temporary"`

	PreferredLanguage *string `gorm:"type:varchar(10)" json:"preferred_language,omitempty"`
	Notes             *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Stats carries the derived per-customer totals. They are recomputed from
// bookings and completed payments on demand instead of being stored, so the
// counters can never drift from the underlying records.
type Stats struct {
	TotalBookings       int64           `json:"total_bookings"`
	TotalSpent          decimal.Decimal `json:"total_spent"`
	AverageBookingValue decimal.Decimal `json:"average_booking_value"`
	Tier                Tier            `json:"tier"`
}

// Filter enumerates the supported customer list predicates.
type Filter struct {
	Status   CustomerStatus
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Apply composes the filter onto a customers query.
func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			like, like, like, like)
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	return query
}
