package notification

import (
	"fmt"

	"gorm.io/gorm"

	notificationModel "vehicle-shipping/models/notification"
)

// Service writes notification outbox rows. Rows are inserted inside the same
// transaction as the state change that triggered them, so a rolled back
// change never leaves a stray notification behind. Delivery is a separate
// worker's concern.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Notify queues an email notification for the customer.
func (s *Service) Notify(tx *gorm.DB, customerID uint, event, subject, body string) error {
	row := notificationModel.Notification{
		CustomerID: customerID,
		Channel:    notificationModel.ChannelEmail,
		Event:      event,
		Subject:    subject,
		Body:       body,
		Status:     notificationModel.StatusQueued,
	}
	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("queue notification: %w", err)
	}
	return nil
}

// NotifyPortalInvite queues the portal invitation sent when a quote is
// approved. The one-time password travels in the message body only; the
// stored copy on the customer row is encrypted.
func (s *Service) NotifyPortalInvite(tx *gorm.DB, customerID uint, portalURL, tempPassword string) error {
	body := fmt.Sprintf(
		"Your shipping quote has been approved. Sign in at %s with the one-time password %s to review and accept it.",
		portalURL, tempPassword,
	)
	return s.Notify(tx, customerID, notificationModel.EventPortalInvite, "Your quote is ready", body)
}
