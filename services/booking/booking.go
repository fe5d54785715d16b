package booking

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	documentModel "vehicle-shipping/models/document"
	notificationModel "vehicle-shipping/models/notification"
	paymentModel "vehicle-shipping/models/payment"
	quoteModel "vehicle-shipping/models/quote"
	routeModel "vehicle-shipping/models/route"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/services/notification"
	"vehicle-shipping/services/reference"
	shipmentService "vehicle-shipping/services/shipment"
	"vehicle-shipping/types"
)

// Attention thresholds for the requires-attention review queue.
const (
	PendingStaleHours    = 72
	PendingPaymentDays   = 7
	ExpiringDocumentDays = 30
)

// Service implements the booking lifecycle.
type Service struct {
	db        *gorm.DB
	notifier  *notification.Service
	shipments *shipmentService.Service
}

func NewService(db *gorm.DB, notifier *notification.Service, shipments *shipmentService.Service) *Service {
	return &Service{db: db, notifier: notifier, shipments: shipments}
}

// Create opens a booking directly, without a prior quote.
func (s *Service) Create(req *types.BookingCreateRequest, actor string) (*bookingModel.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}

	var cust customerModel.Customer
	if err := s.db.First(&cust, req.CustomerID).Error; err != nil {
		return nil, errs.NotFound("customer %d not found", req.CustomerID)
	}
	var rt routeModel.Route
	if err := s.db.First(&rt, req.RouteID).Error; err != nil {
		return nil, errs.NotFound("route %d not found", req.RouteID)
	}
	if !rt.IsActive {
		return nil, errs.Conflict("route %d is not active", rt.ID)
	}

	pickup, delivery, err := parseDates(req.PickupDate, req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	if !bookingModel.ValidateDates(pickup, delivery) {
		return nil, errs.Validation("delivery_date must be after pickup_date")
	}

	now := time.Now()
	estimated := now.AddDate(0, 0, rt.EstimatedDays)
	bk := bookingModel.Booking{
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
		Status:            bookingModel.StatusPending,
		TotalAmount:       req.TotalAmount,
		Currency:          rt.Currency,
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
	if req.SpecialInstructions != "" {
		bk.SpecialInstructions = &req.SpecialInstructions
	}
	if req.Notes != "" {
		bk.Notes = &req.Notes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ref, err := reference.Next(tx, reference.BookingPrefix, "bookings", reference.BookingWidth, now)
		if err != nil {
			return err
		}
		bk.BookingReference = ref
		if err := tx.Create(&bk).Error; err != nil {
			return err
		}

		event := bookingModel.BookingStatusEvent{
			BookingID:  bk.ID,
			FromStatus: bookingModel.StatusPending,
			ToStatus:   bookingModel.StatusPending,
			Reason:     "booking created",
			CreatedBy:  actor,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "booking.created", "booking", bk.ID,
			"Booking "+bk.BookingReference+" created", nil)
	})
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// Get loads a booking with its relateds.
func (s *Service) Get(id uint) (*bookingModel.Booking, error) {
	var bk bookingModel.Booking
	if err := s.db.Preload("Customer").Preload("Route").Preload("Quote").First(&bk, id).Error; err != nil {
		return nil, errs.NotFound("booking %d not found", id)
	}
	return &bk, nil
}

// List returns bookings matching the filter with pagination.
func (s *Service) List(filter bookingModel.Filter, page, perPage int) ([]bookingModel.Booking, int64, error) {
	var bookings []bookingModel.Booking
	var total int64

	query := filter.Apply(s.db.Model(&bookingModel.Booking{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Customer").Preload("Route").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings).Error
	return bookings, total, err
}

// UpdateStatus moves a booking through its lifecycle. Reaching confirmed
// auto-creates the shipment record; cancellations must go through Cancel.
func (s *Service) UpdateStatus(id uint, target bookingModel.BookingStatus, reason, actor string) (*bookingModel.Booking, error) {
	if !target.IsValid() {
		return nil, errs.Validation("unknown booking status %q", target)
	}

	var bk bookingModel.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, id).Error; err != nil {
			return errs.NotFound("booking %d not found", id)
		}
		return s.transition(tx, &bk, target, reason, actor)
	})
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// transition applies a validated status change inside an open transaction.
// Callers hold the row lock.
func (s *Service) transition(tx *gorm.DB, bk *bookingModel.Booking, target bookingModel.BookingStatus, reason, actor string) error {
	from := bk.Status
	if !from.CanTransitionTo(target) {
		return errs.Conflict("booking %s cannot move from %s to %s", bk.BookingReference, from, target)
	}

	bk.Status = target
	bk.UpdatedBy = actor
	if err := tx.Save(bk).Error; err != nil {
		return err
	}

	event := bookingModel.BookingStatusEvent{
		BookingID:  bk.ID,
		FromStatus: from,
		ToStatus:   target,
		Reason:     reason,
		CreatedBy:  actor,
	}
	if err := tx.Create(&event).Error; err != nil {
		return err
	}

	if target == bookingModel.StatusConfirmed {
		if _, err := s.shipments.CreateInTx(tx, bk, &types.ShipmentCreateRequest{BookingID: bk.ID}, actor); err != nil {
			return err
		}
		if err := s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventBookingConfirmed,
			"Booking "+bk.BookingReference+" confirmed",
			"Your booking "+bk.BookingReference+" has been confirmed and a shipment has been scheduled."); err != nil {
			return err
		}
	}
	if target == bookingModel.StatusDelivered {
		if err := s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventBookingDelivered,
			"Booking "+bk.BookingReference+" delivered",
			"Your vehicle for booking "+bk.BookingReference+" has been delivered."); err != nil {
			return err
		}
	}

	return activity.Record(tx, actor, "booking.status_changed", "booking", bk.ID,
		"Booking "+bk.BookingReference+" moved from "+string(from)+" to "+string(target),
		map[string]interface{}{"reason": reason})
}

// MarkDelivered is invoked by the shipment tracker when a shipment arrives.
// It runs inside the tracker's transaction. The physical arrival is the
// source of truth, so a booking that was never manually advanced past
// confirmed is walked forward through the intermediate statuses, recording
// an event for each hop.
func (s *Service) MarkDelivered(tx *gorm.DB, bookingID uint, actor string) error {
	var bk bookingModel.Booking
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, bookingID).Error; err != nil {
		return errs.NotFound("booking %d not found", bookingID)
	}
	if bk.Status == bookingModel.StatusDelivered {
		return nil
	}
	path := bookingModel.DeliveryPath(bk.Status)
	if path == nil {
		return errs.Conflict("booking %s cannot reach delivered from %s", bk.BookingReference, bk.Status)
	}
	for _, step := range path {
		if err := s.transition(tx, &bk, step, "shipment arrived", actor); err != nil {
			return err
		}
	}
	return nil
}

// Cancel moves a booking to cancelled from any non-terminal state.
func (s *Service) Cancel(id uint, reason, actor string) (*bookingModel.Booking, error) {
	if reason == "" {
		return nil, errs.Validation("cancellation reason is required")
	}

	var bk bookingModel.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, id).Error; err != nil {
			return errs.NotFound("booking %d not found", id)
		}
		if bk.Status.IsTerminal() {
			return errs.Conflict("booking %s is already %s", bk.BookingReference, bk.Status)
		}
		if err := s.transition(tx, &bk, bookingModel.StatusCancelled, reason, actor); err != nil {
			return err
		}
		return s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventBookingCancelled,
			"Booking "+bk.BookingReference+" cancelled",
			"Your booking "+bk.BookingReference+" has been cancelled: "+reason)
	})
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// StatusHistory returns the append-only event trail for a booking.
func (s *Service) StatusHistory(id uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := s.db.Where("booking_id = ?", id).Order("created_at ASC").Find(&events).Error
	return events, err
}

// AttentionItem is one booking flagged for operator review, with the
// reasons it surfaced.
type AttentionItem struct {
	Booking bookingModel.Booking `json:"booking"`
	Reasons []string             `json:"reasons"`
}

// RequiresAttention flags bookings that need operator action: stuck pending,
// past their estimated delivery, carrying stale pending payments, or with
// unresolved or expiring documents.
func (s *Service) RequiresAttention(at time.Time) ([]AttentionItem, error) {
	items := make(map[uint]*AttentionItem)
	add := func(bk bookingModel.Booking, reason string) {
		item, ok := items[bk.ID]
		if !ok {
			item = &AttentionItem{Booking: bk}
			items[bk.ID] = item
		}
		item.Reasons = append(item.Reasons, reason)
	}

	var stale []bookingModel.Booking
	if err := s.db.Preload("Customer").
		Where("status = ? AND created_at < ?", bookingModel.StatusPending, at.Add(-PendingStaleHours*time.Hour)).
		Find(&stale).Error; err != nil {
		return nil, err
	}
	for _, bk := range stale {
		add(bk, "pending for more than 72 hours")
	}

	var overdue []bookingModel.Booking
	if err := s.db.Preload("Customer").
		Where("estimated_delivery < ? AND status NOT IN ?", at,
			[]bookingModel.BookingStatus{bookingModel.StatusDelivered, bookingModel.StatusCompleted, bookingModel.StatusCancelled}).
		Find(&overdue).Error; err != nil {
		return nil, err
	}
	for _, bk := range overdue {
		add(bk, "past estimated delivery")
	}

	var stalePaymentIDs []uint
	if err := s.db.Model(&paymentModel.Payment{}).
		Where("status = ? AND created_at < ?", paymentModel.StatusPending, at.AddDate(0, 0, -PendingPaymentDays)).
		Distinct("booking_id").
		Pluck("booking_id", &stalePaymentIDs).Error; err != nil {
		return nil, err
	}
	if len(stalePaymentIDs) > 0 {
		var withStalePayments []bookingModel.Booking
		if err := s.db.Preload("Customer").Where("id IN ?", stalePaymentIDs).Find(&withStalePayments).Error; err != nil {
			return nil, err
		}
		for _, bk := range withStalePayments {
			add(bk, "payment pending for more than 7 days")
		}
	}

	var docBookingIDs []uint
	if err := s.db.Model(&documentModel.Document{}).
		Where("booking_id IS NOT NULL").
		Where("status = ? OR (status = ? AND expiry_date BETWEEN ? AND ?)",
			documentModel.StatusPending, documentModel.StatusApproved,
			at, at.AddDate(0, 0, ExpiringDocumentDays)).
		Distinct("booking_id").
		Pluck("booking_id", &docBookingIDs).Error; err != nil {
		return nil, err
	}
	if len(docBookingIDs) > 0 {
		var withDocIssues []bookingModel.Booking
		if err := s.db.Preload("Customer").
			Where("id IN ? AND status NOT IN ?", docBookingIDs,
				[]bookingModel.BookingStatus{bookingModel.StatusCompleted, bookingModel.StatusCancelled}).
			Find(&withDocIssues).Error; err != nil {
			return nil, err
		}
		for _, bk := range withDocIssues {
			add(bk, "pending or expiring documents")
		}
	}

	result := make([]AttentionItem, 0, len(items))
	for _, item := range items {
		result = append(result, *item)
	}
	return result, nil
}

func parseDates(pickupStr, deliveryStr string) (pickup, delivery *time.Time, err error) {
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
