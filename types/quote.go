package types

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeInput is one fee line supplied when creating a quote.
type FeeInput struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// QuoteCreateRequest is the payload for creating a quote.
type QuoteCreateRequest struct {
	CustomerID     uint       `json:"customer_id"`
	RouteID        uint       `json:"route_id"`
	VehicleMake    string     `json:"vehicle_make"`
	VehicleModel   string     `json:"vehicle_model"`
	VehicleYear    int        `json:"vehicle_year"`
	VehicleColor   string     `json:"vehicle_color"`
	VehicleVIN     string     `json:"vehicle_vin"`
	VehicleType    string     `json:"vehicle_type"`
	AdditionalFees []FeeInput `json:"additional_fees"`
	// DeclaredValue, when positive, drives a computed insurance fee line.
	DeclaredValue decimal.Decimal `json:"declared_value"`
	// ApplyVAT adds a VAT line on the pre-tax total for destinations that
	// levy it.
	ApplyVAT     bool   `json:"apply_vat"`
	ValidityDays int    `json:"validity_days"`
	Notes        string `json:"notes"`
}

// Validate checks the request payload.
func (r *QuoteCreateRequest) Validate() error {
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
	if r.VehicleYear < 1900 || r.VehicleYear > 2100 {
		return errors.New("vehicle_year is out of range")
	}
	if r.ValidityDays < 0 || r.ValidityDays > 365 {
		return errors.New("validity_days must be between 0 and 365")
	}
	if r.DeclaredValue.IsNegative() {
		return errors.New("declared_value cannot be negative")
	}
	for _, fee := range r.AdditionalFees {
		if strings.TrimSpace(fee.Name) == "" {
			return errors.New("fee name is required")
		}
		if fee.Amount.IsNegative() {
			return errors.New("fee amount cannot be negative")
		}
	}
	return nil
}

// QuoteRejectRequest is the payload for rejecting a quote.
type QuoteRejectRequest struct {
	Reason string `json:"reason"`
}

func (r *QuoteRejectRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}

// QuoteExtendRequest is the payload for extending a quote's validity.
type QuoteExtendRequest struct {
	Days int `json:"days"`
}

func (r *QuoteExtendRequest) Validate() error {
	if r.Days <= 0 || r.Days > 365 {
		return errors.New("days must be between 1 and 365")
	}
	return nil
}

// QuoteConvertRequest carries the delivery details needed to turn an
// approved quote into a booking.
type QuoteConvertRequest struct {
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientEmail   string `json:"recipient_email"`
	RecipientCountry string `json:"recipient_country"`
	RecipientCity    string `json:"recipient_city"`
	RecipientAddress string `json:"recipient_address"`
	PickupDate       string `json:"pickup_date"`
	DeliveryDate     string `json:"delivery_date"`
}

func (r *QuoteConvertRequest) Validate() error {
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
