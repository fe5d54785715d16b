package shipment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TrackingUpdate is one entry in a shipment's movement history.
type TrackingUpdate struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// TrackingUpdates stores the full movement history as a JSON column.
type TrackingUpdates []TrackingUpdate

func (tu TrackingUpdates) Value() (driver.Value, error) {
	if tu == nil {
		return "[]", nil
	}
	return json.Marshal(tu)
}

func (tu *TrackingUpdates) Scan(value interface{}) error {
	if value == nil {
		*tu = TrackingUpdates{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("tracking updates: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, tu)
}

// Shipment tracks the physical movement of a booked vehicle.
type Shipment struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	TrackingNumber   string          `json:"tracking_number" gorm:"type:varchar(32);uniqueIndex;not null"`
	BookingID        uint            `json:"booking_id" gorm:"uniqueIndex;not null"`
	Status           ShipmentStatus  `json:"status" gorm:"type:varchar(20);default:'preparing';index"`
	CarrierName      string          `json:"carrier_name" gorm:"type:varchar(100)"`
	VesselName       string          `json:"vessel_name" gorm:"type:varchar(100)"`
	ContainerNumber  string          `json:"container_number" gorm:"type:varchar(30)"`
	CurrentLocation  string          `json:"current_location" gorm:"type:varchar(150)"`
	DepartureDate    *time.Time      `json:"departure_date"`
	EstimatedArrival *time.Time      `json:"estimated_arrival"`
	ActualArrival    *time.Time      `json:"actual_arrival"`
	DelayReason      string          `json:"delay_reason" gorm:"type:text"`
	TrackingUpdates  TrackingUpdates `json:"tracking_updates" gorm:"type:jsonb;default:'[]'"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AppendUpdate records a movement entry in the shipment history.
func (s *Shipment) AppendUpdate(status ShipmentStatus, location, notes, updatedBy string, at time.Time) {
	s.TrackingUpdates = append(s.TrackingUpdates, TrackingUpdate{
		Status:    status.String(),
		Location:  location,
		Notes:     notes,
		Timestamp: at,
		UpdatedBy: updatedBy,
	})
	if location != "" {
		s.CurrentLocation = location
	}
}

// IsDelayed reports whether the shipment has missed its estimated arrival
// without arriving.
func (s *Shipment) IsDelayed(at time.Time) bool {
	if s.Status == StatusDelivered || s.Status == StatusDelayed {
		return s.Status == StatusDelayed
	}
	return s.EstimatedArrival != nil && at.After(*s.EstimatedArrival)
}

// WasOnTime reports whether a delivered shipment arrived on or before its
// estimate. Shipments without both dates are not counted either way.
func (s *Shipment) WasOnTime() (onTime bool, known bool) {
	if s.Status != StatusDelivered || s.ActualArrival == nil || s.EstimatedArrival == nil {
		return false, false
	}
	return !s.ActualArrival.After(*s.EstimatedArrival), true
}

// TransitDays returns the days between departure and actual arrival,
// or 0 when either date is missing.
func (s *Shipment) TransitDays() float64 {
	if s.DepartureDate == nil || s.ActualArrival == nil {
		return 0
	}
	return s.ActualArrival.Sub(*s.DepartureDate).Hours() / 24
}

// Filter narrows shipment listings.
type Filter struct {
	Status    ShipmentStatus
	BookingID *uint
	Carrier   string
	DateFrom  *time.Time
	DateTo    *time.Time
}

func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.BookingID != nil {
		query = query.Where("booking_id = ?", *f.BookingID)
	}
	if f.Carrier != "" {
		query = query.Where("carrier_name ILIKE ?", "%"+f.Carrier+"%")
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	return query
}
