package document

// DocumentType identifies what a document certifies.
type DocumentType string

const (
	TypePassport  DocumentType = "passport"
	TypeLicense   DocumentType = "license"
	TypeInvoice   DocumentType = "invoice"
	TypeInsurance DocumentType = "insurance"
	TypeCustoms   DocumentType = "customs"
	TypeOther     DocumentType = "other"
)

func (dt DocumentType) String() string {
	return string(dt)
}

func (dt DocumentType) IsValid() bool {
	switch dt {
	case TypePassport, TypeLicense, TypeInvoice, TypeInsurance, TypeCustoms, TypeOther:
		return true
	default:
		return false
	}
}

// Label returns the human-readable name of the type.
func (dt DocumentType) Label() string {
	switch dt {
	case TypePassport:
		return "Customer Passport"
	case TypeLicense:
		return "Driving License"
	case TypeInvoice:
		return "Purchase Invoice"
	case TypeInsurance:
		return "Insurance Certificate"
	case TypeCustoms:
		return "Customs Declaration"
	default:
		return "Other Document"
	}
}

// DocumentStatus is the verification state of a document.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusApproved DocumentStatus = "approved"
	StatusRejected DocumentStatus = "rejected"
	StatusExpired  DocumentStatus = "expired"
)

func (ds DocumentStatus) String() string {
	return string(ds)
}

func (ds DocumentStatus) IsValid() bool {
	switch ds {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the review decision has been made. A terminal
// document cannot be re-reviewed; a corrected upload is a new document.
func (ds DocumentStatus) IsTerminal() bool {
	return ds == StatusApproved || ds == StatusRejected
}

// AllowedMimeTypes are the upload formats accepted for documents.
var AllowedMimeTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// MaxFileSize is the upload ceiling in bytes (10MB).
const MaxFileSize = 10 * 1024 * 1024

// IsAllowedMimeType reports whether the mime type may be uploaded.
func IsAllowedMimeType(mime string) bool {
	for _, allowed := range AllowedMimeTypes {
		if mime == allowed {
			return true
		}
	}
	return false
}
