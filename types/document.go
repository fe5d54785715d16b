package types

import (
	"errors"
	"strings"
)

// DocumentUploadRequest is the metadata payload accompanying a document
// upload. File storage itself is handled by the storage collaborator.
type DocumentUploadRequest struct {
	BookingID    uint   `json:"booking_id"`
	CustomerID   uint   `json:"customer_id"`
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	FileSize     int64  `json:"file_size"`
	MimeType     string `json:"mime_type"`
	ExpiryDate   string `json:"expiry_date"`
}

func (r *DocumentUploadRequest) Validate() error {
	if r.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if strings.TrimSpace(r.DocumentType) == "" {
		return errors.New("document_type is required")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return errors.New("file_name is required")
	}
	if r.FileSize <= 0 {
		return errors.New("file_size must be positive")
	}
	return nil
}

// DocumentRejectRequest is the payload for rejecting a document.
type DocumentRejectRequest struct {
	Reason string `json:"reason"`
}

func (r *DocumentRejectRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}
