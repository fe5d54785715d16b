package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-shipping/services/pricing"
	"vehicle-shipping/types"
)

func TestAssembleFeesCallerLines(t *testing.T) {
	base := decimal.NewFromInt(2500)
	inputs := []types.FeeInput{
		{Name: pricing.FeeInsurance, Amount: decimal.NewFromInt(800)},
		{Name: pricing.FeeCustoms, Amount: decimal.NewFromInt(594)},
		{Name: pricing.FeeHandling, Amount: decimal.NewFromInt(350)},
	}

	fees := assembleFees(base, inputs, decimal.Zero, false)
	require.Len(t, fees, 3)

	assert.True(t, pricing.Total(base, fees).Equal(decimal.NewFromInt(4244)))
	for _, fee := range fees {
		assert.Equal(t, pricing.DefaultDescriptions[fee.Name], fee.Description, "fee %s", fee.Name)
	}
}

func TestAssembleFeesKeepsCallerDescription(t *testing.T) {
	inputs := []types.FeeInput{
		{Name: pricing.FeeStorage, Amount: decimal.NewFromInt(50), Description: "two weeks at the terminal"},
	}

	fees := assembleFees(decimal.NewFromInt(1000), inputs, decimal.Zero, false)
	require.Len(t, fees, 1)
	assert.Equal(t, "two weeks at the terminal", fees[0].Description)
}

func TestAssembleFeesComputesInsurance(t *testing.T) {
	fees := assembleFees(decimal.NewFromInt(2500), nil, decimal.NewFromInt(40000), false)
	require.Len(t, fees, 1)

	assert.Equal(t, pricing.FeeInsurance, fees[0].Name)
	assert.True(t, fees[0].Amount.Equal(decimal.NewFromInt(600)), "1.5%% of 40000, got %s", fees[0].Amount)
}

func TestAssembleFeesCallerInsuranceWins(t *testing.T) {
	inputs := []types.FeeInput{
		{Name: pricing.FeeInsurance, Amount: decimal.NewFromInt(800)},
	}

	fees := assembleFees(decimal.NewFromInt(2500), inputs, decimal.NewFromInt(40000), false)
	require.Len(t, fees, 1)
	assert.True(t, fees[0].Amount.Equal(decimal.NewFromInt(800)))
}

func TestAssembleFeesAppliesVAT(t *testing.T) {
	base := decimal.NewFromInt(2500)
	inputs := []types.FeeInput{
		{Name: pricing.FeeHandling, Amount: decimal.NewFromInt(350)},
	}

	fees := assembleFees(base, inputs, decimal.Zero, true)
	require.Len(t, fees, 2)

	vat := fees[1]
	assert.Equal(t, pricing.FeeVAT, vat.Name)
	// 14% of the 2850 pre-tax total.
	assert.True(t, vat.Amount.Equal(decimal.NewFromInt(399)), "got %s", vat.Amount)
}

func TestAssembleFeesEmpty(t *testing.T) {
	assert.Empty(t, assembleFees(decimal.NewFromInt(1000), nil, decimal.Zero, false))
}
