package payment

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	notificationModel "vehicle-shipping/models/notification"
	paymentModel "vehicle-shipping/models/payment"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/services/notification"
	"vehicle-shipping/services/reference"
	"vehicle-shipping/types"
)

// DefaultOverdueDays is how long a payment may sit pending before it is
// reported overdue. Override with PAYMENT_OVERDUE_DAYS.
const DefaultOverdueDays = 30

// Service implements payment reconciliation against bookings.
type Service struct {
	db       *gorm.DB
	notifier *notification.Service
}

// CheckOverpayment rejects an amount that would push a booking's paid total
// past its total amount.
func CheckOverpayment(paid, total, amount decimal.Decimal) error {
	if paid.Add(amount).GreaterThan(total) {
		return errs.Invariant("payment of %s would bring the paid amount to %s, exceeding the booking total %s",
			amount.StringFixed(2), paid.Add(amount).StringFixed(2), total.StringFixed(2))
	}
	return nil
}

func NewService(db *gorm.DB, notifier *notification.Service) *Service {
	return &Service{db: db, notifier: notifier}
}

// OverdueDays returns the configured pending-payment threshold.
func OverdueDays() int {
	if raw := os.Getenv("PAYMENT_OVERDUE_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return DefaultOverdueDays
}

// Create records a pending payment against a booking.
func (s *Service) Create(req *types.PaymentCreateRequest, actor string) (*paymentModel.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}
	method := paymentModel.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, errs.Validation("unknown payment method %q", req.PaymentMethod)
	}

	var bk bookingModel.Booking
	if err := s.db.First(&bk, req.BookingID).Error; err != nil {
		return nil, errs.NotFound("booking %d not found", req.BookingID)
	}
	if bk.Status == bookingModel.StatusCancelled {
		return nil, errs.Conflict("booking %s is cancelled", bk.BookingReference)
	}
	if err := CheckOverpayment(bk.PaidAmount, bk.TotalAmount, req.Amount); err != nil {
		return nil, err
	}

	p := paymentModel.Payment{
		BookingID:     bk.ID,
		Amount:        req.Amount,
		Currency:      bk.Currency,
		PaymentMethod: method,
		Status:        paymentModel.StatusPending,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ref, err := reference.Next(tx, reference.PaymentPrefix, "payments", reference.PaymentWidth, time.Now())
		if err != nil {
			return err
		}
		p.PaymentReference = ref
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "payment.created", "payment", p.ID,
			"Payment "+p.PaymentReference+" recorded against booking "+bk.BookingReference, nil)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get loads a payment by id.
func (s *Service) Get(id uint) (*paymentModel.Payment, error) {
	var p paymentModel.Payment
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, errs.NotFound("payment %d not found", id)
	}
	return &p, nil
}

// List returns payments matching the filter with pagination.
func (s *Service) List(filter paymentModel.Filter, page, perPage int) ([]paymentModel.Payment, int64, error) {
	var payments []paymentModel.Payment
	var total int64

	query := filter.Apply(s.db.Model(&paymentModel.Payment{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&payments).Error
	return payments, total, err
}

// Complete marks a pending payment completed and rolls its amount into the
// booking's paid total. The booking row is locked so concurrent completions
// serialize.
func (s *Service) Complete(id uint, req *types.PaymentCompleteRequest, actor string) (*paymentModel.Payment, error) {
	var p paymentModel.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			return errs.NotFound("payment %d not found", id)
		}
		if !p.Status.CanTransitionTo(paymentModel.StatusCompleted) {
			return errs.Conflict("payment %s cannot move from %s to completed", p.PaymentReference, p.Status)
		}

		var bk bookingModel.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, p.BookingID).Error; err != nil {
			return errs.NotFound("booking %d not found", p.BookingID)
		}
		if err := CheckOverpayment(bk.PaidAmount, bk.TotalAmount, p.Amount); err != nil {
			return err
		}

		now := time.Now()
		p.Status = paymentModel.StatusCompleted
		p.ProcessedAt = &now
		p.ProcessedBy = &actor
		if req != nil {
			if req.TransactionID != "" {
				p.TransactionID = req.TransactionID
			}
			p.GatewayResponse = req.GatewayResponse
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		bk.PaidAmount = bk.PaidAmount.Add(p.Amount)
		if err := tx.Save(&bk).Error; err != nil {
			return err
		}

		if err := s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventPaymentCompleted,
			"Payment received for "+bk.BookingReference,
			"We received your payment "+p.PaymentReference+" of "+p.Amount.StringFixed(2)+" "+p.Currency+"."); err != nil {
			return err
		}
		return activity.Record(tx, actor, "payment.completed", "payment", p.ID,
			"Payment "+p.PaymentReference+" completed", nil)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Fail marks a pending payment failed. Failed payments can be retried back
// to pending.
func (s *Service) Fail(id uint, gatewayResponse, actor string) (*paymentModel.Payment, error) {
	return s.simpleTransition(id, paymentModel.StatusFailed, gatewayResponse, actor, "payment.failed")
}

// Retry moves a failed payment back to pending.
func (s *Service) Retry(id uint, actor string) (*paymentModel.Payment, error) {
	return s.simpleTransition(id, paymentModel.StatusPending, "", actor, "payment.retried")
}

// Cancel abandons a pending or failed payment.
func (s *Service) Cancel(id uint, actor string) (*paymentModel.Payment, error) {
	return s.simpleTransition(id, paymentModel.StatusCancelled, "", actor, "payment.cancelled")
}

func (s *Service) simpleTransition(id uint, target paymentModel.PaymentStatus, gatewayResponse, actor, action string) (*paymentModel.Payment, error) {
	var p paymentModel.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			return errs.NotFound("payment %d not found", id)
		}
		if !p.Status.CanTransitionTo(target) {
			return errs.Conflict("payment %s cannot move from %s to %s", p.PaymentReference, p.Status, target)
		}
		p.Status = target
		if gatewayResponse != "" {
			p.GatewayResponse = gatewayResponse
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, action, "payment", p.ID,
			"Payment "+p.PaymentReference+" moved to "+string(target), nil)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Refund reverses some or all of a completed payment. The refund is stored
// as its own completed row with a negative amount; the original is marked
// refunded when fully reversed. The booking's paid total must never go
// negative.
func (s *Service) Refund(id uint, req *types.PaymentRefundRequest, actor string) (*paymentModel.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}

	var refund paymentModel.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var original paymentModel.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&original, id).Error; err != nil {
			return errs.NotFound("payment %d not found", id)
		}
		if original.Status != paymentModel.StatusCompleted {
			return errs.Conflict("payment %s is %s; only completed payments can be refunded", original.PaymentReference, original.Status)
		}
		if original.IsRefund() {
			return errs.Conflict("payment %s is itself a refund", original.PaymentReference)
		}

		amount := req.Amount
		if amount.IsZero() {
			amount = original.Amount
		}
		if amount.GreaterThan(original.Amount) {
			return errs.Validation("refund amount %s exceeds payment amount %s",
				amount.StringFixed(2), original.Amount.StringFixed(2))
		}

		var bk bookingModel.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bk, original.BookingID).Error; err != nil {
			return errs.NotFound("booking %d not found", original.BookingID)
		}
		newPaid := bk.PaidAmount.Sub(amount)
		if newPaid.IsNegative() {
			return errs.Invariant("refund of %s would drive booking %s paid amount negative",
				amount.StringFixed(2), bk.BookingReference)
		}

		now := time.Now()
		ref, err := reference.Next(tx, reference.PaymentPrefix, "payments", reference.PaymentWidth, now)
		if err != nil {
			return err
		}
		originalID := original.ID
		refund = paymentModel.Payment{
			PaymentReference: ref,
			BookingID:        original.BookingID,
			Amount:           amount.Neg(),
			Currency:         original.Currency,
			PaymentMethod:    original.PaymentMethod,
			Status:           paymentModel.StatusCompleted,
			RefundOfID:       &originalID,
			Notes:            req.Reason,
			ProcessedAt:      &now,
			ProcessedBy:      &actor,
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}

		if amount.Equal(original.Amount) {
			original.Status = paymentModel.StatusRefunded
			if err := tx.Save(&original).Error; err != nil {
				return err
			}
		}

		bk.PaidAmount = newPaid
		if err := tx.Save(&bk).Error; err != nil {
			return err
		}

		if err := s.notifier.Notify(tx, bk.CustomerID, notificationModel.EventPaymentRefunded,
			"Refund issued for "+bk.BookingReference,
			"A refund of "+amount.StringFixed(2)+" "+original.Currency+" has been issued against payment "+original.PaymentReference+"."); err != nil {
			return err
		}
		return activity.Record(tx, actor, "payment.refunded", "payment", original.ID,
			"Payment "+original.PaymentReference+" refunded "+amount.StringFixed(2),
			map[string]interface{}{"reason": req.Reason})
	})
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

// Overdue lists payments pending longer than the configured threshold.
func (s *Service) Overdue(at time.Time) ([]paymentModel.Payment, error) {
	var payments []paymentModel.Payment
	cutoff := at.AddDate(0, 0, -OverdueDays())
	err := s.db.
		Where("status = ? AND created_at < ?", paymentModel.StatusPending, cutoff).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// MethodStats is the per-method performance summary.
type MethodStats struct {
	Method            paymentModel.PaymentMethod `json:"method"`
	Total             int                        `json:"total"`
	Completed         int                        `json:"completed"`
	Failed            int                        `json:"failed"`
	SuccessRate       float64                    `json:"success_rate"`
	AvgProcessMinutes float64                    `json:"avg_processing_minutes"`
	Volume            decimal.Decimal            `json:"volume"`
}

// MethodPerformance folds per-method stats over the given payments. Refund
// rows are excluded; ratios are 0 when a method has no attempts.
func MethodPerformance(payments []paymentModel.Payment) []MethodStats {
	byMethod := make(map[paymentModel.PaymentMethod]*MethodStats)
	processed := make(map[paymentModel.PaymentMethod]int)

	for _, p := range payments {
		if p.IsRefund() {
			continue
		}
		stats, ok := byMethod[p.PaymentMethod]
		if !ok {
			stats = &MethodStats{Method: p.PaymentMethod, Volume: decimal.Zero}
			byMethod[p.PaymentMethod] = stats
		}
		stats.Total++
		switch p.Status {
		case paymentModel.StatusCompleted, paymentModel.StatusRefunded:
			stats.Completed++
			stats.Volume = stats.Volume.Add(p.Amount)
		case paymentModel.StatusFailed:
			stats.Failed++
		}
		if p.ProcessedAt != nil {
			stats.AvgProcessMinutes += p.ProcessingMinutes()
			processed[p.PaymentMethod]++
		}
	}

	result := make([]MethodStats, 0, len(byMethod))
	for _, method := range paymentModel.AllMethods() {
		stats, ok := byMethod[method]
		if !ok {
			continue
		}
		if stats.Total > 0 {
			stats.SuccessRate = float64(stats.Completed) / float64(stats.Total)
		}
		if n := processed[method]; n > 0 {
			stats.AvgProcessMinutes /= float64(n)
		} else {
			stats.AvgProcessMinutes = 0
		}
		result = append(result, *stats)
	}
	return result
}

// MethodPerformanceBetween loads payments in the window and folds the
// per-method stats.
func (s *Service) MethodPerformanceBetween(start, end time.Time) ([]MethodStats, error) {
	var payments []paymentModel.Payment
	if err := s.db.
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return MethodPerformance(payments), nil
}
