package quote

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"vehicle-shipping/models/customer"
	"vehicle-shipping/models/route"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote is a priced, time-bounded shipping offer. The route base price and
// the vehicle details are frozen at creation time; later route or vehicle
// edits never change an issued quote.
type Quote struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuoteReference string `gorm:"type:varchar(20);not null;unique" json:"quote_reference"`

	CustomerID uint              `gorm:"not null;index" json:"customer_id"`
	Customer   customer.Customer `gorm:"foreignKey:CustomerID" json:"customer"`

	RouteID uint        `gorm:"not null;index" json:"route_id"`
	Route   route.Route `gorm:"foreignKey:RouteID" json:"route"`

	VehicleDetails VehicleDetails `gorm:"type:json" json:"vehicle_details"`

	BasePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"base_price"`
	AdditionalFees FeeList         `gorm:"type:json" json:"additional_fees"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency       string          `gorm:"type:varchar(3);not null;default:USD" json:"currency"`

	Status     QuoteStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ValidUntil time.Time   `gorm:"not null;index" json:"valid_until"`

	Notes      *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy  string     `gorm:"type:varchar(255);not null" json:"created_by"`
	ApprovedBy *string    `gorm:"type:varchar(255)" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// VehicleDetails is the structured vehicle snapshot captured on the quote.
type VehicleDetails struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color,omitempty"`
	VIN   string `json:"vin,omitempty"`
	Type  string `json:"type,omitempty"` // sedan, suv, truck, motorcycle
}

func (vd *VehicleDetails) Scan(value interface{}) error {
	if value == nil {
		*vd = VehicleDetails{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, vd)
}

func (vd VehicleDetails) Value() (driver.Value, error) {
	return json.Marshal(vd)
}

// FeeLine is one named fee line item on a quote.
type FeeLine struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// FeeList is the ordered list of fee line items, stored as a JSON column.
type FeeList []FeeLine

func (fl *FeeList) Scan(value interface{}) error {
	if value == nil {
		*fl = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, fl)
}

func (fl FeeList) Value() (driver.Value, error) {
	if fl == nil {
		return json.Marshal(FeeList{})
	}
	return json.Marshal(fl)
}

// Sum returns the total of all fee amounts.
func (fl FeeList) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, fee := range fl {
		total = total.Add(fee.Amount)
	}
	return total
}

// RecalculateTotal sets TotalAmount from its components. The total is never
// edited independently of base price and fees.
func (q *Quote) RecalculateTotal() {
	q.TotalAmount = q.BasePrice.Add(q.AdditionalFees.Sum())
}

// AddFee appends a fee line and recomputes the total.
func (q *Quote) AddFee(name string, amount decimal.Decimal, description string) {
	q.AdditionalFees = append(q.AdditionalFees, FeeLine{Name: name, Amount: amount, Description: description})
	q.RecalculateTotal()
}

// RemoveFee drops all fee lines with the given name and recomputes the total.
func (q *Quote) RemoveFee(name string) {
	kept := q.AdditionalFees[:0]
	for _, fee := range q.AdditionalFees {
		if fee.Name != name {
			kept = append(kept, fee)
		}
	}
	q.AdditionalFees = kept
	q.RecalculateTotal()
}

// IsExpired reports whether the validity window has passed. Expiry is
// evaluated lazily at read time; a stored status of pending must not be
// trusted without this check.
func (q *Quote) IsExpired(at time.Time) bool {
	return at.After(q.ValidUntil) && q.Status != StatusConverted
}

// EffectiveStatus folds lazy expiry into the stored status.
func (q *Quote) EffectiveStatus(at time.Time) QuoteStatus {
	if (q.Status == StatusPending || q.Status == StatusApproved) && q.IsExpired(at) {
		return StatusExpired
	}
	return q.Status
}

// DaysUntilExpiry returns the whole days remaining in the validity window,
// never negative.
func (q *Quote) DaysUntilExpiry(at time.Time) int {
	if at.After(q.ValidUntil) {
		return 0
	}
	return int(q.ValidUntil.Sub(at).Hours() / 24)
}

// Filter enumerates the supported quote list predicates.
type Filter struct {
	Status     QuoteStatus
	CustomerID uint
	RouteID    uint
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
}

// Apply composes the filter onto a quotes query.
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
		query = query.Where("quote_reference ILIKE ?", "%"+f.Search+"%")
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
