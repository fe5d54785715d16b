package pricing

import (
	"github.com/shopspring/decimal"

	"vehicle-shipping/models/quote"
)

// Standard fee names used when building a quote.
const (
	FeeInsurance = "insurance"
	FeeCustoms   = "customs_clearance"
	FeeHandling  = "handling"
	FeeStorage   = "storage"
	FeeExpedited = "expedited_processing"
	FeeVAT       = "vat"
)

// DefaultDescriptions is the invoice wording for the standard fee names,
// applied when the caller supplies a fee line without a description.
var DefaultDescriptions = map[string]string{
	FeeInsurance: "Transit insurance on declared value",
	FeeCustoms:   "Customs clearance and import processing",
	FeeHandling:  "Port handling and loading",
	FeeStorage:   "Terminal storage",
	FeeExpedited: "Expedited processing",
	FeeVAT:       "Value added tax",
}

// InsuranceRate is applied to the declared vehicle value.
var InsuranceRate = decimal.NewFromFloat(0.015)

// VATRate is applied to the pre-tax total where the destination requires it.
var VATRate = decimal.NewFromFloat(0.14)

// Total computes base price plus the sum of fee amounts.
func Total(base decimal.Decimal, fees quote.FeeList) decimal.Decimal {
	return base.Add(fees.Sum())
}

// InsuranceFee computes the insurance fee line for a declared vehicle value.
func InsuranceFee(declaredValue decimal.Decimal) quote.FeeLine {
	return quote.FeeLine{
		Name:        FeeInsurance,
		Amount:      declaredValue.Mul(InsuranceRate).Round(2),
		Description: DefaultDescriptions[FeeInsurance],
	}
}

// ComputeVAT returns the VAT amount for a pre-tax total.
func ComputeVAT(preTax decimal.Decimal) decimal.Decimal {
	return preTax.Mul(VATRate).Round(2)
}
