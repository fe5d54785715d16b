package types

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentCreateRequest is the payload for recording a pending payment
// against a booking.
type PaymentCreateRequest struct {
	BookingID     uint            `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
}

func (r *PaymentCreateRequest) Validate() error {
	if r.BookingID == 0 {
		return errors.New("booking_id is required")
	}
	if !r.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return errors.New("payment_method is required")
	}
	return nil
}

// PaymentCompleteRequest is the payload for completing a pending payment.
type PaymentCompleteRequest struct {
	TransactionID   string `json:"transaction_id"`
	GatewayResponse string `json:"gateway_response"`
}

// PaymentFailRequest is the payload for marking a payment failed.
type PaymentFailRequest struct {
	GatewayResponse string `json:"gateway_response"`
}

// PaymentRefundRequest is the payload for refunding a completed payment.
// A zero amount means a full refund.
type PaymentRefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

func (r *PaymentRefundRequest) Validate() error {
	if r.Amount.IsNegative() {
		return errors.New("refund amount cannot be negative")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("refund reason is required")
	}
	return nil
}
