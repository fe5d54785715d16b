package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validQuoteCreate() QuoteCreateRequest {
	return QuoteCreateRequest{
		CustomerID:   1,
		RouteID:      2,
		VehicleMake:  "Toyota",
		VehicleModel: "Land Cruiser",
		VehicleYear:  2024,
		VehicleType:  "suv",
		ValidityDays: 30,
	}
}

func TestQuoteCreateRequestValidate(t *testing.T) {
	req := validQuoteCreate()
	assert.NoError(t, req.Validate())
}

func TestQuoteCreateRequestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuoteCreateRequest)
	}{
		{"missing customer", func(r *QuoteCreateRequest) { r.CustomerID = 0 }},
		{"missing route", func(r *QuoteCreateRequest) { r.RouteID = 0 }},
		{"blank make", func(r *QuoteCreateRequest) { r.VehicleMake = "   " }},
		{"blank model", func(r *QuoteCreateRequest) { r.VehicleModel = "" }},
		{"year too old", func(r *QuoteCreateRequest) { r.VehicleYear = 1899 }},
		{"year too new", func(r *QuoteCreateRequest) { r.VehicleYear = 2101 }},
		{"validity too long", func(r *QuoteCreateRequest) { r.ValidityDays = 400 }},
		{"unnamed fee", func(r *QuoteCreateRequest) {
			r.AdditionalFees = []FeeInput{{Name: "", Amount: decimal.NewFromInt(10)}}
		}},
		{"negative fee", func(r *QuoteCreateRequest) {
			r.AdditionalFees = []FeeInput{{Name: "handling", Amount: decimal.NewFromInt(-10)}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validQuoteCreate()
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestQuoteRejectRequestValidate(t *testing.T) {
	assert.Error(t, (&QuoteRejectRequest{}).Validate())
	assert.Error(t, (&QuoteRejectRequest{Reason: "   "}).Validate())
	assert.NoError(t, (&QuoteRejectRequest{Reason: "price no longer valid"}).Validate())
}

func TestQuoteExtendRequestValidate(t *testing.T) {
	assert.Error(t, (&QuoteExtendRequest{Days: 0}).Validate())
	assert.Error(t, (&QuoteExtendRequest{Days: -5}).Validate())
	assert.Error(t, (&QuoteExtendRequest{Days: 366}).Validate())
	assert.NoError(t, (&QuoteExtendRequest{Days: 15}).Validate())
}
