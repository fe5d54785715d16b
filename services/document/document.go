package document

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	documentModel "vehicle-shipping/models/document"
	notificationModel "vehicle-shipping/models/notification"
	routeModel "vehicle-shipping/models/route"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/services/notification"
	"vehicle-shipping/types"
)

// Vehicle types that are driven rather than freighted and therefore need a
// driving license on file.
var drivableTypes = map[string]bool{
	"sedan":      true,
	"suv":        true,
	"truck":      true,
	"motorcycle": true,
}

// RequiredDocumentTypes returns the document set a booking on the given
// route and vehicle type must have approved before it can ship.
func RequiredDocumentTypes(rt *routeModel.Route, vehicleType string) []documentModel.DocumentType {
	required := []documentModel.DocumentType{
		documentModel.TypePassport,
		documentModel.TypeInvoice,
		documentModel.TypeInsurance,
	}
	if rt != nil && rt.IsInternational() {
		required = append(required, documentModel.TypeCustoms)
	}
	if drivableTypes[strings.ToLower(vehicleType)] {
		required = append(required, documentModel.TypeLicense)
	}
	return required
}

// MissingDocumentTypes returns the required types with no approved document
// among docs.
func MissingDocumentTypes(required []documentModel.DocumentType, docs []documentModel.Document) []documentModel.DocumentType {
	approved := make(map[documentModel.DocumentType]bool)
	for _, doc := range docs {
		if doc.Status == documentModel.StatusApproved {
			approved[doc.DocumentType] = true
		}
	}
	missing := make([]documentModel.DocumentType, 0)
	for _, docType := range required {
		if !approved[docType] {
			missing = append(missing, docType)
		}
	}
	return missing
}

// storagePath builds a collision-free object key for an uploaded file,
// keeping the original extension for content-type sniffing downstream.
func storagePath(fileName string) string {
	return "documents/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}

// Service implements the document verification workflow.
type Service struct {
	db       *gorm.DB
	notifier *notification.Service
}

func NewService(db *gorm.DB, notifier *notification.Service) *Service {
	return &Service{db: db, notifier: notifier}
}

// Upload registers an uploaded document in pending state. Replacements are
// new rows; existing documents are never overwritten.
func (s *Service) Upload(req *types.DocumentUploadRequest, actor string) (*documentModel.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}
	docType := documentModel.DocumentType(req.DocumentType)
	if !docType.IsValid() {
		return nil, errs.Validation("unknown document type %q", req.DocumentType)
	}
	if req.MimeType != "" && !documentModel.IsAllowedMimeType(req.MimeType) {
		return nil, errs.Validation("mime type %q is not accepted", req.MimeType)
	}
	if req.FileSize > documentModel.MaxFileSize {
		return nil, errs.Validation("file exceeds the %d byte limit", documentModel.MaxFileSize)
	}

	filePath := req.FilePath
	if filePath == "" {
		filePath = storagePath(req.FileName)
	}

	doc := documentModel.Document{
		CustomerID:   req.CustomerID,
		DocumentType: docType,
		FileName:     req.FileName,
		FilePath:     filePath,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		Status:       documentModel.StatusPending,
	}
	if req.BookingID != 0 {
		var bk bookingModel.Booking
		if err := s.db.First(&bk, req.BookingID).Error; err != nil {
			return nil, errs.NotFound("booking %d not found", req.BookingID)
		}
		bookingID := bk.ID
		doc.BookingID = &bookingID
	}
	if req.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, errs.Validation("invalid expiry_date: %s", req.ExpiryDate)
		}
		doc.ExpiryDate = &t
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "document.uploaded", "document", doc.ID,
			"Document "+doc.FileName+" uploaded as "+string(docType), nil)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Get loads a document by id.
func (s *Service) Get(id uint) (*documentModel.Document, error) {
	var doc documentModel.Document
	if err := s.db.First(&doc, id).Error; err != nil {
		return nil, errs.NotFound("document %d not found", id)
	}
	return &doc, nil
}

// List returns documents matching the filter with pagination.
func (s *Service) List(filter documentModel.Filter, page, perPage int) ([]documentModel.Document, int64, error) {
	var docs []documentModel.Document
	var total int64

	query := filter.Apply(s.db.Model(&documentModel.Document{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&docs).Error
	return docs, total, err
}

// Approve marks a pending document approved, recording the reviewer.
// A document that has already been reviewed cannot be re-reviewed.
func (s *Service) Approve(id uint, actor string) (*documentModel.Document, error) {
	var doc documentModel.Document
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&doc, id).Error; err != nil {
			return errs.NotFound("document %d not found", id)
		}
		if doc.Status != documentModel.StatusPending {
			return errs.Conflict("document %d has already been reviewed (%s)", doc.ID, doc.Status)
		}

		now := time.Now()
		doc.Status = documentModel.StatusApproved
		doc.VerifiedBy = &actor
		doc.VerifiedAt = &now
		if err := tx.Save(&doc).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "document.approved", "document", doc.ID,
			"Document "+doc.FileName+" approved", nil)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Reject marks a pending document rejected with a required reason and
// notifies the customer so they can upload a replacement.
func (s *Service) Reject(id uint, reason, actor string) (*documentModel.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, errs.Validation("rejection reason is required")
	}

	var doc documentModel.Document
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&doc, id).Error; err != nil {
			return errs.NotFound("document %d not found", id)
		}
		if doc.Status != documentModel.StatusPending {
			return errs.Conflict("document %d has already been reviewed (%s)", doc.ID, doc.Status)
		}

		now := time.Now()
		doc.Status = documentModel.StatusRejected
		doc.VerifiedBy = &actor
		doc.VerifiedAt = &now
		doc.RejectionReason = &reason
		if err := tx.Save(&doc).Error; err != nil {
			return err
		}

		if err := s.notifier.Notify(tx, doc.CustomerID, notificationModel.EventDocumentRejected,
			"Document "+doc.FileName+" rejected",
			"Your "+doc.DocumentType.Label()+" was rejected: "+reason+". Please upload a corrected copy."); err != nil {
			return err
		}
		return activity.Record(tx, actor, "document.rejected", "document", doc.ID,
			"Document "+doc.FileName+" rejected",
			map[string]interface{}{"reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MissingForBooking computes the required document types the booking still
// lacks an approved document for.
func (s *Service) MissingForBooking(bookingID uint) ([]documentModel.DocumentType, error) {
	var bk bookingModel.Booking
	if err := s.db.Preload("Route").First(&bk, bookingID).Error; err != nil {
		return nil, errs.NotFound("booking %d not found", bookingID)
	}

	var docs []documentModel.Document
	if err := s.db.Where("booking_id = ?", bookingID).Find(&docs).Error; err != nil {
		return nil, err
	}

	required := RequiredDocumentTypes(&bk.Route, bk.VehicleDetails.Type)
	return MissingDocumentTypes(required, docs), nil
}

// ExpiringSoon lists approved documents whose expiry falls inside the window.
func (s *Service) ExpiringSoon(at time.Time, days int) ([]documentModel.Document, error) {
	var docs []documentModel.Document
	err := s.db.
		Where("status = ? AND expiry_date BETWEEN ? AND ?",
			documentModel.StatusApproved, at, at.AddDate(0, 0, days)).
		Order("expiry_date ASC").
		Find(&docs).Error
	return docs, err
}
