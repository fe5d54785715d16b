package customer

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	paymentModel "vehicle-shipping/models/payment"
	"vehicle-shipping/services/activity"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// Service implements customer registration and the derived per-customer
// totals.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a customer.
func (s *Service) Create(req *types.CustomerCreateRequest, actor string) (*customerModel.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Validation("%s", err.Error())
	}
	if !utils.ValidatePhoneNumber(req.Phone) {
		return nil, errs.Validation("invalid phone number %q", req.Phone)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing customerModel.Customer
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errs.Conflict("a customer with email %s already exists", email)
	}

	cust := customerModel.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     req.Phone,
		Country:   req.Country,
		City:      req.City,
		Status:    customerModel.StatusActive,
	}
	if req.Address != "" {
		cust.Address = &req.Address
	}
	if req.PostalCode != "" {
		cust.PostalCode = &req.PostalCode
	}
	if req.PreferredLanguage != "" {
		cust.PreferredLanguage = &req.PreferredLanguage
	}
	if req.Notes != "" {
		cust.Notes = &req.Notes
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cust).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "customer.created", "customer", cust.ID,
			"Customer "+cust.FullName()+" registered", nil)
	})
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

// Get loads a customer by id.
func (s *Service) Get(id uint) (*customerModel.Customer, error) {
	var cust customerModel.Customer
	if err := s.db.First(&cust, id).Error; err != nil {
		return nil, errs.NotFound("customer %d not found", id)
	}
	return &cust, nil
}

// List returns customers matching the filter with pagination.
func (s *Service) List(filter customerModel.Filter, page, perPage int) ([]customerModel.Customer, int64, error) {
	var customers []customerModel.Customer
	var total int64

	query := filter.Apply(s.db.Model(&customerModel.Customer{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&customers).Error
	return customers, total, err
}

// Update applies partial changes to a customer.
func (s *Service) Update(id uint, req *types.CustomerUpdateRequest, actor string) (*customerModel.Customer, error) {
	cust, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		cust.FirstName = req.FirstName
	}
	if req.LastName != "" {
		cust.LastName = req.LastName
	}
	if req.Phone != "" {
		if !utils.ValidatePhoneNumber(req.Phone) {
			return nil, errs.Validation("invalid phone number %q", req.Phone)
		}
		cust.Phone = req.Phone
	}
	if req.Country != "" {
		cust.Country = req.Country
	}
	if req.City != "" {
		cust.City = req.City
	}
	if req.Address != "" {
		cust.Address = &req.Address
	}
	if req.PostalCode != "" {
		cust.PostalCode = &req.PostalCode
	}
	if req.PreferredLanguage != "" {
		cust.PreferredLanguage = &req.PreferredLanguage
	}
	if req.Notes != "" {
		cust.Notes = &req.Notes
	}
	if req.Status != "" {
		status := customerModel.CustomerStatus(req.Status)
		if !status.IsValid() {
			return nil, errs.Validation("unknown customer status %q", req.Status)
		}
		cust.Status = status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cust).Error; err != nil {
			return err
		}
		return activity.Record(tx, actor, "customer.updated", "customer", cust.ID,
			"Customer "+cust.FullName()+" updated", nil)
	})
	if err != nil {
		return nil, err
	}
	return cust, nil
}

// Stats recomputes the derived totals for a customer from their bookings
// and completed payments. Nothing is cached; the numbers always reflect the
// current rows.
func (s *Service) Stats(id uint) (*customerModel.Stats, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	var totalBookings int64
	if err := s.db.Model(&bookingModel.Booking{}).
		Where("customer_id = ? AND status <> ?", id, bookingModel.StatusCancelled).
		Count(&totalBookings).Error; err != nil {
		return nil, err
	}

	var payments []paymentModel.Payment
	if err := s.db.
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.customer_id = ? AND payments.status IN ?", id,
			[]paymentModel.PaymentStatus{paymentModel.StatusCompleted, paymentModel.StatusRefunded}).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	totalSpent := decimal.Zero
	for _, p := range payments {
		totalSpent = totalSpent.Add(p.Amount)
	}

	stats := customerModel.Stats{
		TotalBookings: totalBookings,
		TotalSpent:    totalSpent,
		Tier:          customerModel.TierForSpend(totalSpent),
	}
	if totalBookings > 0 {
		stats.AverageBookingValue = totalSpent.Div(decimal.NewFromInt(totalBookings)).Round(2)
	} else {
		stats.AverageBookingValue = decimal.Zero
	}
	return &stats, nil
}
