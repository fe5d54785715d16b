package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecalculateTotal(t *testing.T) {
	q := Quote{BasePrice: decimal.NewFromInt(2500)}
	q.AddFee("insurance", decimal.NewFromInt(800), "")
	q.AddFee("customs_clearance", decimal.NewFromInt(594), "")
	q.AddFee("handling", decimal.NewFromInt(350), "")

	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(4244)), "got %s", q.TotalAmount)
}

func TestRemoveFee(t *testing.T) {
	q := Quote{BasePrice: decimal.NewFromInt(1000)}
	q.AddFee("insurance", decimal.NewFromInt(150), "")
	q.AddFee("storage", decimal.NewFromInt(50), "")

	q.RemoveFee("insurance")

	assert.Len(t, q.AdditionalFees, 1)
	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(1050)), "got %s", q.TotalAmount)
}

func TestRemoveFeeUnknownNameKeepsTotal(t *testing.T) {
	q := Quote{BasePrice: decimal.NewFromInt(1000)}
	q.AddFee("handling", decimal.NewFromInt(75), "")

	q.RemoveFee("expedited_processing")

	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(1075)), "got %s", q.TotalAmount)
}

func TestEffectiveStatusLazyExpiry(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		stored     QuoteStatus
		validUntil time.Time
		want       QuoteStatus
	}{
		{"pending within window", StatusPending, now.Add(24 * time.Hour), StatusPending},
		{"pending past window", StatusPending, now.Add(-time.Hour), StatusExpired},
		{"approved past window", StatusApproved, now.Add(-time.Hour), StatusExpired},
		{"converted past window keeps status", StatusConverted, now.Add(-time.Hour), StatusConverted},
		{"rejected past window keeps status", StatusRejected, now.Add(-time.Hour), StatusRejected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Quote{Status: tc.stored, ValidUntil: tc.validUntil}
			assert.Equal(t, tc.want, q.EffectiveStatus(now))
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	q := Quote{Status: StatusPending, ValidUntil: now.Add(-time.Minute)}
	assert.True(t, q.IsExpired(now))

	q.Status = StatusConverted
	assert.False(t, q.IsExpired(now), "converted quotes never expire")
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Now()

	q := Quote{ValidUntil: now.Add(72*time.Hour + time.Minute)}
	assert.Equal(t, 3, q.DaysUntilExpiry(now))

	q.ValidUntil = now.Add(-time.Hour)
	assert.Equal(t, 0, q.DaysUntilExpiry(now), "never negative")
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    QuoteStatus
		to      QuoteStatus
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusConverted, false},
		{StatusApproved, StatusConverted, true},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusExpired, StatusApproved, false},
		{StatusConverted, StatusPending, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusConverted.IsTerminal())
}
