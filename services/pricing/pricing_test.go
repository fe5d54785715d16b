package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"vehicle-shipping/models/quote"
)

func TestTotal(t *testing.T) {
	base := decimal.NewFromInt(2500)
	fees := quote.FeeList{
		{Name: FeeInsurance, Amount: decimal.NewFromInt(800)},
		{Name: FeeCustoms, Amount: decimal.NewFromInt(594)},
		{Name: FeeHandling, Amount: decimal.NewFromInt(350)},
	}

	assert.True(t, Total(base, fees).Equal(decimal.NewFromInt(4244)))
}

func TestTotalNoFees(t *testing.T) {
	base := decimal.NewFromInt(2500)

	assert.True(t, Total(base, nil).Equal(base))
	assert.True(t, Total(base, quote.FeeList{}).Equal(base))
}

func TestTotalZeroAmountFee(t *testing.T) {
	base := decimal.NewFromInt(1200)
	fees := quote.FeeList{{Name: FeeStorage, Amount: decimal.Zero}}

	assert.True(t, Total(base, fees).Equal(base))
}

func TestInsuranceFee(t *testing.T) {
	fee := InsuranceFee(decimal.NewFromInt(40000))

	assert.Equal(t, FeeInsurance, fee.Name)
	assert.True(t, fee.Amount.Equal(decimal.NewFromInt(600)), "1.5%% of 40000, got %s", fee.Amount)
}

func TestInsuranceFeeRounds(t *testing.T) {
	fee := InsuranceFee(decimal.NewFromFloat(33333.33))

	// 33333.33 * 0.015 = 499.99995, rounded to cents.
	assert.True(t, fee.Amount.Equal(decimal.NewFromFloat(500.00)), "got %s", fee.Amount)
}

func TestComputeVAT(t *testing.T) {
	vat := ComputeVAT(decimal.NewFromInt(4244))

	assert.True(t, vat.Equal(decimal.NewFromFloat(594.16)), "got %s", vat)
}
