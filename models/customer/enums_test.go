package customer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierForSpend(t *testing.T) {
	tests := []struct {
		spend float64
		want  Tier
	}{
		{0, TierBronze},
		{9999.99, TierBronze},
		{10000, TierSilver},
		{24999.99, TierSilver},
		{25000, TierGold},
		{49999.99, TierGold},
		{50000, TierPlatinum},
		{125000, TierPlatinum},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TierForSpend(decimal.NewFromFloat(tc.spend)), "spend %.2f", tc.spend)
	}
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 0.0, TierBronze.DiscountPercent())
	assert.Equal(t, 5.0, TierSilver.DiscountPercent())
	assert.Equal(t, 10.0, TierGold.DiscountPercent())
	assert.Equal(t, 15.0, TierPlatinum.DiscountPercent())
}

func TestCustomerStatusIsValid(t *testing.T) {
	assert.True(t, StatusActive.IsValid())
	assert.True(t, StatusInactive.IsValid())
	assert.True(t, StatusSuspended.IsValid())
	assert.False(t, CustomerStatus("banned").IsValid())
	assert.False(t, CustomerStatus("").IsValid())
}
