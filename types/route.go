package types

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// RouteCreateRequest is the payload for opening a shipping route.
type RouteCreateRequest struct {
	OriginCountry      string          `json:"origin_country"`
	OriginCity         string          `json:"origin_city"`
	OriginPort         string          `json:"origin_port"`
	DestinationCountry string          `json:"destination_country"`
	DestinationCity    string          `json:"destination_city"`
	DestinationPort    string          `json:"destination_port"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Currency           string          `json:"currency"`
	EstimatedDays      int             `json:"estimated_days"`
}

func (r *RouteCreateRequest) Validate() error {
	if strings.TrimSpace(r.OriginCountry) == "" {
		return errors.New("origin_country is required")
	}
	if strings.TrimSpace(r.OriginCity) == "" {
		return errors.New("origin_city is required")
	}
	if strings.TrimSpace(r.DestinationCountry) == "" {
		return errors.New("destination_country is required")
	}
	if strings.TrimSpace(r.DestinationCity) == "" {
		return errors.New("destination_city is required")
	}
	if !r.BasePrice.IsPositive() {
		return errors.New("base_price must be positive")
	}
	if r.EstimatedDays <= 0 {
		return errors.New("estimated_days must be positive")
	}
	return nil
}

// RouteUpdateRequest is the payload for adjusting a route. Price changes
// affect future quotes only.
type RouteUpdateRequest struct {
	BasePrice     *decimal.Decimal `json:"base_price"`
	EstimatedDays *int             `json:"estimated_days"`
	IsActive      *bool            `json:"is_active"`
}
