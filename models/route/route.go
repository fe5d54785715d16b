package route

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Route is an origin/destination shipping lane with a published base price.
// The base price is copied onto a quote at creation time; repricing a route
// never changes already issued quotes.
type Route struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	OriginCountry      string  `gorm:"type:varchar(100);not null" json:"origin_country"`
	OriginCity         string  `gorm:"type:varchar(100);not null" json:"origin_city"`
	OriginPort         *string `gorm:"type:varchar(100)" json:"origin_port,omitempty"`
	DestinationCountry string  `gorm:"type:varchar(100);not null" json:"destination_country"`
	DestinationCity    string  `gorm:"type:varchar(100);not null" json:"destination_city"`
	DestinationPort    *string `gorm:"type:varchar(100)" json:"destination_port,omitempty"`

	BasePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	Currency      string          `gorm:"type:varchar(3);not null;default:USD" json:"currency"`
	EstimatedDays int             `gorm:"not null" json:"estimated_days"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsInternational reports whether the lane crosses a border. International
// lanes require a customs declaration document.
func (r *Route) IsInternational() bool {
	return r.OriginCountry != r.DestinationCountry
}

// Description renders the lane as "Origin City, Origin Country → Destination
// City, Destination Country".
func (r *Route) Description() string {
	return r.OriginCity + ", " + r.OriginCountry + " → " + r.DestinationCity + ", " + r.DestinationCountry
}

// Filter enumerates the supported route list predicates.
type Filter struct {
	OriginCountry      string
	DestinationCountry string
	ActiveOnly         bool
	PriceMin           *decimal.Decimal
	PriceMax           *decimal.Decimal
}

// Apply composes the filter onto a routes query.
func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.OriginCountry != "" {
		query = query.Where("origin_country = ?", f.OriginCountry)
	}
	if f.DestinationCountry != "" {
		query = query.Where("destination_country = ?", f.DestinationCountry)
	}
	if f.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if f.PriceMin != nil {
		query = query.Where("base_price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		query = query.Where("base_price <= ?", *f.PriceMax)
	}
	return query
}
