package quote

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	quoteModel "vehicle-shipping/models/quote"
	routeModel "vehicle-shipping/models/route"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/services/notification"
	"vehicle-shipping/services/pricing"
	"vehicle-shipping/services/reference"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// DefaultValidityDays is the quote validity window when none is requested.
const DefaultValidityDays = 30

// Service implements the quote lifecycle: create, approve, reject, extend
// and convert to booking. All state changes run inside transactions.
type Service struct {
	db        *gorm.DB
	notifier  *notification.Service
	portalURL string
}

func NewService(db *gorm.DB, notifier *notification.Service, portalURL string) *Service {
	return &Service{db: db, notifier: notifier, portalURL: portalURL}
}

// assembleFees merges caller-supplied fee lines with the computed insurance
// and VAT lines. Standard fee names get their default invoice wording when
// the caller leaves the description blank, a positive declared value adds an
// insurance line unless the caller priced insurance themselves, and VAT is
// computed last on the pre-tax total.
func assembleFees(base decimal.Decimal, inputs []types.FeeInput, declaredValue decimal.Decimal, applyVAT bool) quoteModel.FeeList {
	fees := make(quoteModel.FeeList, 0, len(inputs)+2)
	haveInsurance := false
	for _, in := range inputs {
		desc := in.Description
		if desc == "" {
			desc = pricing.DefaultDescriptions[in.Name]
		}
		if in.Name == pricing.FeeInsurance {
			haveInsurance = true
		}
		fees = append(fees, quoteModel.FeeLine{Name: in.Name, Amount: in.Amount, Description: desc})
	}
	if declaredValue.IsPositive() && !haveInsurance {
		fees = append(fees, pricing.InsuranceFee(declaredValue))
	}
	if applyVAT {
		fees = append(fees, quoteModel.FeeLine{
			Name:        pricing.FeeVAT,
			Amount:      pricing.ComputeVAT(pricing.Total(base, fees)),
			Description: pricing.DefaultDescriptions[pricing.FeeVAT],
		})
	}
	return fees
}

// Create issues a new quote. The route's base price is frozen onto the quote
// at this moment; later route price changes do not touch issued quotes.
func (s *Service) Create(req *types.QuoteCreateRequest, actor string) (*quoteModel.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}

	var cust customerModel.Customer
	if err := s.db.First(&cust, req.CustomerID).Error; err != nil {
		return nil, errs.NotFound("customer %d not found", req.CustomerID)
	}
	if cust.Status != customerModel.StatusActive {
		return nil, errs.Conflict("customer %d is not active", cust.ID)
	}

	var rt routeModel.Route
	if err := s.db.First(&rt, req.RouteID).Error; err != nil {
		return nil, errs.NotFound("route %d not found", req.RouteID)
	}
	if !rt.IsActive {
		return nil, errs.Conflict("route %d is not active", rt.ID)
	}

	validityDays := req.ValidityDays
	if validityDays == 0 {
		validityDays = DefaultValidityDays
	}

	q := quoteModel.Quote{
		CustomerID: cust.ID,
		RouteID:    rt.ID,
		VehicleDetails: quoteModel.VehicleDetails{
			Make:  req.VehicleMake,
			Model: req.VehicleModel,
			Year:  req.VehicleYear,
			Color: req.VehicleColor,
			VIN:   req.VehicleVIN,
			Type:  req.VehicleType,
		},
		BasePrice:  rt.BasePrice,
		Currency:   rt.Currency,
		Status:     quoteModel.StatusPending,
		ValidUntil: time.Now().AddDate(0, 0, validityDays),
		CreatedBy:  actor,
	}
	q.AdditionalFees = assembleFees(rt.BasePrice, req.AdditionalFees, req.DeclaredValue, req.ApplyVAT)
	q.RecalculateTotal()
	if req.Notes != "" {
		q.Notes = &req.Notes
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ref, err := reference.Next(tx, reference.QuotePrefix, "quotes", reference.QuoteWidth, time.Now())
		if err != nil {
			return err
		}
		q.QuoteReference = ref
		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "quote.created", "quote", q.ID,
			"Quote "+q.QuoteReference+" created", nil)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Get loads a quote with its customer and route.
func (s *Service) Get(id uint) (*quoteModel.Quote, error) {
	var q quoteModel.Quote
	if err := s.db.Preload("Customer").Preload("Route").First(&q, id).Error; err != nil {
		return nil, errs.NotFound("quote %d not found", id)
	}
	return &q, nil
}

// List returns quotes matching the filter with pagination.
func (s *Service) List(filter quoteModel.Filter, page, perPage int) ([]quoteModel.Quote, int64, error) {
	var quotes []quoteModel.Quote
	var total int64

	query := filter.Apply(s.db.Model(&quoteModel.Quote{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Customer").Preload("Route").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&quotes).Error
	return quotes, total, err
}

// Approve moves a pending quote to approved, provisions portal access for
// the customer and queues the invitation.
func (s *Service) Approve(id uint, actor string) (*quoteModel.Quote, error) {
	var q quoteModel.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&q, id).Error; err != nil {
			return errs.NotFound("quote %d not found", id)
		}

		now := time.Now()
		switch q.EffectiveStatus(now) {
		case quoteModel.StatusPending:
		case quoteModel.StatusExpired:
			return errs.Conflict("quote %s has expired", q.QuoteReference)
		default:
			return errs.Conflict("quote %s cannot be approved from status %s", q.QuoteReference, q.Status)
		}

		q.Status = quoteModel.StatusApproved
		q.ApprovedBy = &actor
		q.ApprovedAt = &now
		if err := tx.Save(&q).Error; err != nil {
			return err
		}

		tempPassword, err := utils.GenerateTempPassword(12)
		if err != nil {
			return err
		}
		encrypted, err := utils.EncryptData(tempPassword)
		if err != nil {
			return err
		}
		if err := tx.Model(&customerModel.Customer{}).Where("id = ?", q.CustomerID).
			Updates(map[string]interface{}{
				"password_encrypted":    encrypted,
				"password_is_temporary": true,
			}).Error; err != nil {
			return err
		}
		if err := s.notifier.NotifyPortalInvite(tx, q.CustomerID, s.portalURL, tempPassword); err != nil {
			return err
		}

		return activity.Record(tx, actor, "quote.approved", "quote", q.ID,
			"Quote "+q.QuoteReference+" approved", nil)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Reject moves a pending quote to rejected with a recorded reason.
func (s *Service) Reject(id uint, actor, reason string) (*quoteModel.Quote, error) {
	if reason == "" {
		return nil, errs.Validation("rejection reason is required")
	}

	var q quoteModel.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&q, id).Error; err != nil {
			return errs.NotFound("quote %d not found", id)
		}

		switch q.EffectiveStatus(time.Now()) {
		case quoteModel.StatusPending:
		case quoteModel.StatusExpired:
			return errs.Conflict("quote %s has expired", q.QuoteReference)
		default:
			return errs.Conflict("quote %s cannot be rejected from status %s", q.QuoteReference, q.Status)
		}

		q.Status = quoteModel.StatusRejected
		if err := tx.Save(&q).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "quote.rejected", "quote", q.ID,
			"Quote "+q.QuoteReference+" rejected", map[string]interface{}{"reason": reason})
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ExtendValidity pushes the validity window out from today. A quote that has
// lapsed into effective expiry is revived back to its stored status.
func (s *Service) ExtendValidity(id uint, days int, actor string) (*quoteModel.Quote, error) {
	if days <= 0 {
		return nil, errs.Validation("days must be positive")
	}

	var q quoteModel.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&q, id).Error; err != nil {
			return errs.NotFound("quote %d not found", id)
		}

		if q.Status.IsTerminal() {
			return errs.Conflict("quote %s is %s and cannot be extended", q.QuoteReference, q.Status)
		}

		q.ValidUntil = time.Now().AddDate(0, 0, days)
		if err := tx.Save(&q).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "quote.extended", "quote", q.ID,
			"Quote "+q.QuoteReference+" validity extended", map[string]interface{}{"days": days})
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Convert turns an approved, unexpired quote into a booking. The quote row
// is locked for the duration so two concurrent conversions cannot both
// succeed.
func (s *Service) Convert(id uint, req *types.QuoteConvertRequest, actor string) (*bookingModel.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}

	var bk bookingModel.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var q quoteModel.Quote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&q, id).Error; err != nil {
			return errs.NotFound("quote %d not found", id)
		}

		now := time.Now()
		if q.Status == quoteModel.StatusConverted {
			return errs.Conflict("quote %s has already been converted", q.QuoteReference)
		}
		if q.EffectiveStatus(now) == quoteModel.StatusExpired {
			return errs.Conflict("quote %s has expired", q.QuoteReference)
		}
		if q.Status != quoteModel.StatusApproved {
			return errs.Conflict("quote %s must be approved before conversion", q.QuoteReference)
		}

		ref, err := reference.Next(tx, reference.BookingPrefix, "bookings", reference.BookingWidth, now)
		if err != nil {
			return err
		}

		pickup, delivery, err := parseBookingDates(req.PickupDate, req.DeliveryDate)
		if err != nil {
			return err
		}

		var rt routeModel.Route
		if err := tx.First(&rt, q.RouteID).Error; err != nil {
			return err
		}
		estimated := now.AddDate(0, 0, rt.EstimatedDays)

		quoteID := q.ID
		bk = bookingModel.Booking{
			BookingReference:  ref,
			CustomerID:        q.CustomerID,
			RouteID:           q.RouteID,
			QuoteID:           &quoteID,
			VehicleDetails:    q.VehicleDetails,
			Status:            bookingModel.StatusPending,
			TotalAmount:       q.TotalAmount,
			Currency:          q.Currency,
			PickupDate:        pickup,
			DeliveryDate:      delivery,
			EstimatedDelivery: &estimated,
			RecipientName:     req.RecipientName,
			RecipientPhone:    req.RecipientPhone,
			RecipientCountry:  req.RecipientCountry,
			RecipientCity:     req.RecipientCity,
			RecipientAddress:  req.RecipientAddress,
			CreatedBy:         actor,
		}
		if req.RecipientEmail != "" {
			bk.RecipientEmail = &req.RecipientEmail
		}
		if !bookingModel.ValidateDates(bk.PickupDate, bk.DeliveryDate) {
			return errs.Validation("delivery_date must be after pickup_date")
		}
		if err := tx.Create(&bk).Error; err != nil {
			return err
		}

		q.Status = quoteModel.StatusConverted
		if err := tx.Save(&q).Error; err != nil {
			return err
		}

		event := bookingModel.BookingStatusEvent{
			BookingID:  bk.ID,
			FromStatus: bookingModel.StatusPending,
			ToStatus:   bookingModel.StatusPending,
			Reason:     "created from quote " + q.QuoteReference,
			CreatedBy:  actor,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if err := s.notifier.Notify(tx, q.CustomerID, "quote.converted",
			"Booking "+bk.BookingReference+" created",
			"Your approved quote "+q.QuoteReference+" has been converted into booking "+bk.BookingReference+"."); err != nil {
			return err
		}

		return activity.Record(tx, actor, "quote.converted", "quote", q.ID,
			"Quote "+q.QuoteReference+" converted to booking "+bk.BookingReference, nil)
	})
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// ExpiringSoon lists pending or approved quotes whose validity ends within
// the given number of days.
func (s *Service) ExpiringSoon(days int) ([]quoteModel.Quote, error) {
	var quotes []quoteModel.Quote
	now := time.Now()
	err := s.db.Preload("Customer").
		Where("status IN ?", []quoteModel.QuoteStatus{quoteModel.StatusPending, quoteModel.StatusApproved}).
		Where("valid_until BETWEEN ? AND ?", now, now.AddDate(0, 0, days)).
		Order("valid_until ASC").
		Find(&quotes).Error
	return quotes, err
}

func parseBookingDates(pickupStr, deliveryStr string) (pickup, delivery *time.Time, err error) {
	if pickupStr != "" {
		t, perr := time.Parse("2006-01-02", pickupStr)
		if perr != nil {
			return nil, nil, errs.Validation("invalid pickup_date: %s", pickupStr)
		}
		pickup = &t
	}
	if deliveryStr != "" {
		t, derr := time.Parse("2006-01-02", deliveryStr)
		if derr != nil {
			return nil, nil, errs.Validation("invalid delivery_date: %s", deliveryStr)
		}
		delivery = &t
	}
	return pickup, delivery, nil
}
