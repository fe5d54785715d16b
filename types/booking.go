package types

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// BookingCreateRequest is the payload for creating a booking directly,
// without a prior quote.
type BookingCreateRequest struct {
	CustomerID          uint            `json:"customer_id"`
	RouteID             uint            `json:"route_id"`
	VehicleMake         string          `json:"vehicle_make"`
	VehicleModel        string          `json:"vehicle_model"`
	VehicleYear         int             `json:"vehicle_year"`
	VehicleColor        string          `json:"vehicle_color"`
	VehicleVIN          string          `json:"vehicle_vin"`
	VehicleType         string          `json:"vehicle_type"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	PickupDate          string          `json:"pickup_date"`
	DeliveryDate        string          `json:"delivery_date"`
	RecipientName       string          `json:"recipient_name"`
	RecipientPhone      string          `json:"recipient_phone"`
	RecipientEmail      string          `json:"recipient_email"`
	RecipientCountry    string          `json:"recipient_country"`
	RecipientCity       string          `json:"recipient_city"`
	RecipientAddress    string          `json:"recipient_address"`
	SpecialInstructions string          `json:"special_instructions"`
	Notes               string          `json:"notes"`
}

func (r *BookingCreateRequest) Validate() error {
	if r.CustomerID == 0 {
		return errors.New("customer_id is required")
	}
	if r.RouteID == 0 {
		return errors.New("route_id is required")
	}
	if strings.TrimSpace(r.VehicleMake) == "" {
		return errors.New("vehicle_make is required")
	}
	if strings.TrimSpace(r.VehicleModel) == "" {
		return errors.New("vehicle_model is required")
	}
	if !r.TotalAmount.IsPositive() {
		return errors.New("total_amount must be positive")
	}
	if strings.TrimSpace(r.RecipientName) == "" {
		return errors.New("recipient_name is required")
	}
	if strings.TrimSpace(r.RecipientPhone) == "" {
		return errors.New("recipient_phone is required")
	}
	if strings.TrimSpace(r.RecipientCountry) == "" {
		return errors.New("recipient_country is required")
	}
	if strings.TrimSpace(r.RecipientCity) == "" {
		return errors.New("recipient_city is required")
	}
	if strings.TrimSpace(r.RecipientAddress) == "" {
		return errors.New("recipient_address is required")
	}
	return nil
}

// BookingStatusRequest is the payload for moving a booking to a new status.
type BookingStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (r *BookingStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("status is required")
	}
	return nil
}

// BookingCancelRequest is the payload for cancelling a booking.
type BookingCancelRequest struct {
	Reason string `json:"reason"`
}

func (r *BookingCancelRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("cancellation reason is required")
	}
	return nil
}
