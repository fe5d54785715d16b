package booking

import (
	"time"
)

// BookingStatusEvent is one row of the append-only status history for a
// booking. Rows are only ever inserted, never updated.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"booking"`

	FromStatus BookingStatus `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   BookingStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	Reason     string        `gorm:"type:varchar(500)" json:"reason,omitempty"`
	CreatedBy  string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
