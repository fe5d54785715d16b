package shipment

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	notificationModel "vehicle-shipping/models/notification"
	shipmentModel "vehicle-shipping/models/shipment"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/services/notification"
	"vehicle-shipping/services/reference"
	"vehicle-shipping/types"
)

// BookingCascader lets the tracker push a booking to delivered when its
// shipment arrives, without this package depending on the booking service.
type BookingCascader interface {
	MarkDelivered(tx *gorm.DB, bookingID uint, actor string) error
}

// Service implements shipment tracking.
type Service struct {
	db       *gorm.DB
	notifier *notification.Service
	bookings BookingCascader
}

func NewService(db *gorm.DB, notifier *notification.Service) *Service {
	return &Service{db: db, notifier: notifier}
}

// SetBookingCascader wires the booking side after both services exist.
func (s *Service) SetBookingCascader(bc BookingCascader) {
	s.bookings = bc
}

// CreateInTx opens the shipment record for a booking inside the caller's
// transaction. A booking has at most one shipment.
func (s *Service) CreateInTx(tx *gorm.DB, bk *bookingModel.Booking, req *types.ShipmentCreateRequest, actor string) (*shipmentModel.Shipment, error) {
	var existing shipmentModel.Shipment
	err := tx.Where("booking_id = ?", bk.ID).First(&existing).Error
	if err == nil {
		return nil, errs.Conflict("booking %s already has shipment %s", bk.BookingReference, existing.TrackingNumber)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	tracking, err := reference.Next(tx, reference.TrackingPrefix, "shipments", reference.TrackingWidth, now)
	if err != nil {
		return nil, err
	}

	sh := shipmentModel.Shipment{
		TrackingNumber:   tracking,
		BookingID:        bk.ID,
		Status:           shipmentModel.StatusPreparing,
		CarrierName:      req.CarrierName,
		VesselName:       req.VesselName,
		ContainerNumber:  req.ContainerNumber,
		EstimatedArrival: bk.EstimatedDelivery,
	}
	if req.DepartureDate != "" {
		if t, perr := time.Parse("2006-01-02", req.DepartureDate); perr == nil {
			sh.DepartureDate = &t
		}
	}
	if req.EstimatedArrival != "" {
		if t, perr := time.Parse("2006-01-02", req.EstimatedArrival); perr == nil {
			sh.EstimatedArrival = &t
		}
	}
	sh.AppendUpdate(shipmentModel.StatusPreparing, "", "shipment created", actor, now)

	if err := tx.Create(&sh).Error; err != nil {
		return nil, err
	}
	if err := activity.Record(tx, actor, "shipment.created", "shipment", sh.ID,
		"Shipment "+sh.TrackingNumber+" opened for booking "+bk.BookingReference, nil); err != nil {
		return nil, err
	}
	return &sh, nil
}

// Get loads a shipment by id.
func (s *Service) Get(id uint) (*shipmentModel.Shipment, error) {
	var sh shipmentModel.Shipment
	if err := s.db.First(&sh, id).Error; err != nil {
		return nil, errs.NotFound("shipment %d not found", id)
	}
	return &sh, nil
}

// GetByTracking loads a shipment by its tracking number.
func (s *Service) GetByTracking(trackingNumber string) (*shipmentModel.Shipment, error) {
	var sh shipmentModel.Shipment
	if err := s.db.Where("tracking_number = ?", trackingNumber).First(&sh).Error; err != nil {
		return nil, errs.NotFound("shipment %s not found", trackingNumber)
	}
	return &sh, nil
}

// List returns shipments matching the filter with pagination.
func (s *Service) List(filter shipmentModel.Filter, page, perPage int) ([]shipmentModel.Shipment, int64, error) {
	var shipments []shipmentModel.Shipment
	var total int64

	query := filter.Apply(s.db.Model(&shipmentModel.Shipment{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&shipments).Error
	return shipments, total, err
}

// UpdateStatus moves a shipment along its route. Arrival sets the actual
// arrival time and cascades the booking to delivered.
func (s *Service) UpdateStatus(id uint, req *types.ShipmentStatusRequest, actor string) (*shipmentModel.Shipment, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}
	target := shipmentModel.ShipmentStatus(req.Status)
	if !target.IsValid() {
		return nil, errs.Validation("unknown shipment status %q", req.Status)
	}
	if target == shipmentModel.StatusDelayed && req.DelayReason == "" {
		return nil, errs.Validation("delay_reason is required when marking a shipment delayed")
	}

	var sh shipmentModel.Shipment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sh, id).Error; err != nil {
			return errs.NotFound("shipment %d not found", id)
		}

		from := sh.Status
		if !from.CanTransitionTo(target) {
			return errs.Conflict("shipment %s cannot move from %s to %s", sh.TrackingNumber, from, target)
		}

		now := time.Now()
		sh.Status = target
		sh.AppendUpdate(target, req.Location, req.Notes, actor, now)
		if target == shipmentModel.StatusDelayed {
			sh.DelayReason = req.DelayReason
		}
		if target == shipmentModel.StatusDelivered {
			sh.ActualArrival = &now
		}
		if err := tx.Save(&sh).Error; err != nil {
			return err
		}

		if target == shipmentModel.StatusDelivered && s.bookings != nil {
			if err := s.bookings.MarkDelivered(tx, sh.BookingID, actor); err != nil {
				return err
			}
		}
		if target == shipmentModel.StatusDelayed {
			var bk bookingModel.Booking
			if err := tx.First(&bk, sh.BookingID).Error; err != nil {
				return err
			}
			if err := s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventShipmentDelayed,
				"Shipment "+sh.TrackingNumber+" delayed",
				"Your shipment "+sh.TrackingNumber+" has been delayed: "+req.DelayReason); err != nil {
				return err
			}
		}

		return activity.Record(tx, actor, "shipment.status_changed", "shipment", sh.ID,
			"Shipment "+sh.TrackingNumber+" moved from "+string(from)+" to "+string(target),
			map[string]interface{}{"location": req.Location})
	})
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// History returns the movement trail for a shipment, oldest first.
func (s *Service) History(id uint) ([]shipmentModel.TrackingUpdate, error) {
	sh, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := make([]shipmentModel.TrackingUpdate, len(sh.TrackingUpdates))
	copy(updates, sh.TrackingUpdates)
	for i := 1; i < len(updates); i++ {
		for j := i; j > 0 && updates[j].Timestamp.Before(updates[j-1].Timestamp); j-- {
			updates[j], updates[j-1] = updates[j-1], updates[j]
		}
	}
	return updates, nil
}

// DetectDelays marks shipments delayed when their estimated arrival has
// passed without delivery. Returns the shipments it flagged.
func (s *Service) DetectDelays(at time.Time, actor string) ([]shipmentModel.Shipment, error) {
	var candidates []shipmentModel.Shipment
	if err := s.db.
		Where("estimated_arrival < ? AND status NOT IN ?", at,
			[]shipmentModel.ShipmentStatus{shipmentModel.StatusDelivered, shipmentModel.StatusDelayed}).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	flagged := make([]shipmentModel.Shipment, 0, len(candidates))
	for _, candidate := range candidates {
		updated, err := s.UpdateStatus(candidate.ID, &types.ShipmentStatusRequest{
			Status:      string(shipmentModel.StatusDelayed),
			Notes:       "estimated arrival passed",
			DelayReason: "estimated arrival passed without delivery",
		}, actor)
		if err != nil {
			return flagged, err
		}
		flagged = append(flagged, *updated)
	}
	return flagged, nil
}
