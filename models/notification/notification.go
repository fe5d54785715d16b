package notification

import "time"

// Channel is how a notification is delivered.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Status is the delivery state of an outbox row.
type Status string

const (
	StatusQueued Status = "queued"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Notification is an outbox row written in the same transaction as the
// state change that triggered it. A delivery worker drains queued rows.
type Notification struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	CustomerID uint       `json:"customer_id" gorm:"index;not null"`
	Channel    Channel    `json:"channel" gorm:"type:varchar(10);default:'email'"`
	Event      string     `json:"event" gorm:"type:varchar(50);index;not null"`
	Subject    string     `json:"subject" gorm:"type:varchar(200)"`
	Body       string     `json:"body" gorm:"type:text"`
	Status     Status     `json:"status" gorm:"type:varchar(10);default:'queued';index"`
	Attempts   int        `json:"attempts" gorm:"default:0"`
	LastError  string     `json:"last_error" gorm:"type:text"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Events written by the lifecycle services.
const (
	EventQuoteApproved    = "quote.approved"
	EventQuoteRejected    = "quote.rejected"
	EventQuoteConverted   = "quote.converted"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingDelivered = "booking.delivered"
	EventPaymentCompleted = "payment.completed"
	EventPaymentRefunded  = "payment.refunded"
	EventDocumentRejected = "document.rejected"
	EventShipmentDelayed  = "shipment.delayed"
	EventPortalInvite     = "portal.invite"
)
