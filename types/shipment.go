package types

import (
	"errors"
	"strings"
)

// ShipmentCreateRequest carries the carrier details captured when a shipment
// record is opened for a confirmed booking.
type ShipmentCreateRequest struct {
	BookingID        uint   `json:"booking_id"`
	CarrierName      string `json:"carrier_name"`
	VesselName       string `json:"vessel_name"`
	ContainerNumber  string `json:"container_number"`
	DepartureDate    string `json:"departure_date"`
	EstimatedArrival string `json:"estimated_arrival"`
}

func (r *ShipmentCreateRequest) Validate() error {
	if r.BookingID == 0 {
		return errors.New("booking_id is required")
	}
	return nil
}

// ShipmentStatusRequest is the payload for moving a shipment to a new status.
type ShipmentStatusRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	DelayReason string `json:"delay_reason"`
}

func (r *ShipmentStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return errors.New("status is required")
	}
	return nil
}
