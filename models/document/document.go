package document

import (
	"time"

	"gorm.io/gorm"
)

// Document is one uploaded verification document attached to a booking (or
// directly to a customer). Documents are append-only: a rejected document is
// superseded by uploading a new one, never edited in place.
type Document struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID  *uint `gorm:"index" json:"booking_id,omitempty"`
	CustomerID uint  `gorm:"not null;index" json:"customer_id"`

	DocumentType DocumentType `gorm:"type:varchar(20);not null;index" json:"document_type"`

	FileName string `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath string `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize int64  `gorm:"not null" json:"file_size"`
	MimeType string `gorm:"type:varchar(100);not null" json:"mime_type"`

	Status          DocumentStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	ExpiryDate      *time.Time     `gorm:"index" json:"expiry_date,omitempty"`
	VerifiedBy      *string        `gorm:"type:varchar(255)" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time     `json:"verified_at,omitempty"`
	RejectionReason *string        `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether the document's own expiry date has passed.
func (d *Document) IsExpired(at time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(at)
}

// IsExpiringWithin reports whether an approved document expires inside the
// given window.
func (d *Document) IsExpiringWithin(at time.Time, days int) bool {
	if d.Status != StatusApproved || d.ExpiryDate == nil {
		return false
	}
	limit := at.AddDate(0, 0, days)
	return d.ExpiryDate.After(at) && !d.ExpiryDate.After(limit)
}

// Filter enumerates the supported document list predicates.
type Filter struct {
	Status     DocumentStatus
	Type       DocumentType
	BookingID  uint
	CustomerID uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Apply composes the filter onto a documents query.
func (f Filter) Apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		query = query.Where("document_type = ?", f.Type)
	}
	if f.BookingID != 0 {
		query = query.Where("booking_id = ?", f.BookingID)
	}
	if f.CustomerID != 0 {
		query = query.Where("customer_id = ?", f.CustomerID)
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	return query
}
