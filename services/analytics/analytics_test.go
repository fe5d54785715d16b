package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "vehicle-shipping/models/booking"
	customerModel "vehicle-shipping/models/customer"
	paymentModel "vehicle-shipping/models/payment"
	quoteModel "vehicle-shipping/models/quote"
	shipmentModel "vehicle-shipping/models/shipment"
)

func ptr[T any](v T) *T { return &v }

func TestFoldFunnel(t *testing.T) {
	now := time.Now()
	valid := now.Add(30 * 24 * time.Hour)

	quotes := []quoteModel.Quote{
		{Status: quoteModel.StatusPending, ValidUntil: valid},
		{Status: quoteModel.StatusApproved, ValidUntil: valid},
		{Status: quoteModel.StatusConverted, ValidUntil: valid},
		{Status: quoteModel.StatusConverted, ValidUntil: valid},
		{Status: quoteModel.StatusRejected, ValidUntil: valid},
	}
	bookings := []bookingModel.Booking{
		{QuoteID: ptr(uint(3)), Status: bookingModel.StatusDelivered},
		{QuoteID: ptr(uint(4)), Status: bookingModel.StatusInTransit},
		{Status: bookingModel.StatusDelivered}, // direct booking, not funnel
	}

	f := FoldFunnel(quotes, bookings, now)

	assert.Equal(t, 5, f.QuotesCreated)
	assert.Equal(t, 3, f.QuotesApproved, "converted quotes still count as approved")
	assert.Equal(t, 2, f.Converted)
	assert.Equal(t, 1, f.Delivered)
	assert.InDelta(t, 0.6, f.ApprovalRate, 0.001)
	assert.InDelta(t, 2.0/3.0, f.ConversionRate, 0.001)
	assert.InDelta(t, 0.5, f.CompletionRate, 0.001)
}

func TestFoldFunnelLazyExpiry(t *testing.T) {
	now := time.Now()

	quotes := []quoteModel.Quote{
		{Status: quoteModel.StatusPending, ValidUntil: now.Add(-time.Hour)},
		{Status: quoteModel.StatusApproved, ValidUntil: now.Add(-time.Hour)},
	}

	f := FoldFunnel(quotes, nil, now)

	assert.Equal(t, 2, f.QuotesCreated)
	assert.Zero(t, f.QuotesApproved, "expired quotes drop out of the approved count")
}

func TestFoldFunnelEmpty(t *testing.T) {
	f := FoldFunnel(nil, nil, time.Now())

	assert.Zero(t, f.ApprovalRate)
	assert.Zero(t, f.ConversionRate)
	assert.Zero(t, f.CompletionRate)
}

func TestFoldRevenue(t *testing.T) {
	current := []paymentModel.Payment{
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(4000)},
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(2000)},
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(-500), RefundOfID: ptr(uint(1))},
		{Status: paymentModel.StatusPending, Amount: decimal.NewFromInt(9999)},
	}
	previous := []paymentModel.Payment{
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(5000)},
	}

	r := FoldRevenue(current, previous)

	assert.True(t, r.GrossRevenue.Equal(decimal.NewFromInt(6000)), "got %s", r.GrossRevenue)
	assert.True(t, r.Refunded.Equal(decimal.NewFromInt(500)))
	assert.True(t, r.NetRevenue.Equal(decimal.NewFromInt(5500)))
	assert.Equal(t, 2, r.PaymentCount)
	assert.Equal(t, 1, r.RefundCount)
	assert.InDelta(t, 10.0, r.GrowthPercent, 0.001, "5500 vs 5000 baseline")
}

func TestFoldRevenueZeroBaseline(t *testing.T) {
	current := []paymentModel.Payment{
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(1000)},
	}

	r := FoldRevenue(current, nil)

	assert.Zero(t, r.GrowthPercent, "no baseline means no growth figure")
}

func TestFoldRevenueNetCanGoNegative(t *testing.T) {
	current := []paymentModel.Payment{
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(-800), RefundOfID: ptr(uint(2))},
	}

	r := FoldRevenue(current, nil)

	assert.True(t, r.NetRevenue.Equal(decimal.NewFromInt(-800)), "got %s", r.NetRevenue)
}

func TestFoldRevenueByDay(t *testing.T) {
	day1 := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 6, 3, 10, 0, 0, 0, time.UTC)

	payments := []paymentModel.Payment{
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(1000), CreatedAt: day1},
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(500), CreatedAt: day1},
		{Status: paymentModel.StatusCompleted, Amount: decimal.NewFromInt(-200), RefundOfID: ptr(uint(1)), CreatedAt: day2},
		{Status: paymentModel.StatusFailed, Amount: decimal.NewFromInt(700), CreatedAt: day2},
	}

	daily := FoldRevenueByDay(payments)
	require.Len(t, daily, 2)

	assert.Equal(t, "2026-06-01", daily[0].Date)
	assert.True(t, daily[0].Revenue.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "2026-06-03", daily[1].Date)
	assert.True(t, daily[1].Revenue.Equal(decimal.NewFromInt(-200)), "refunds reduce the day's net")
}

func TestFoldTierDistribution(t *testing.T) {
	spends := []decimal.Decimal{
		decimal.NewFromInt(500),
		decimal.NewFromInt(12000),
		decimal.NewFromInt(30000),
		decimal.NewFromInt(75000),
		decimal.NewFromInt(80000),
	}

	dist := FoldTierDistribution(spends)

	assert.Equal(t, 1, dist[customerModel.TierBronze])
	assert.Equal(t, 1, dist[customerModel.TierSilver])
	assert.Equal(t, 1, dist[customerModel.TierGold])
	assert.Equal(t, 2, dist[customerModel.TierPlatinum])
}

func TestFoldTierDistributionEmpty(t *testing.T) {
	dist := FoldTierDistribution(nil)

	// Every tier is present even with no customers.
	assert.Len(t, dist, 4)
	assert.Zero(t, dist[customerModel.TierBronze])
}

func TestFoldRetention(t *testing.T) {
	r := FoldRetention([]int64{1, 1, 2, 5})

	assert.Equal(t, 4, r.TotalCustomers)
	assert.Equal(t, 2, r.RepeatCustomers)
	assert.InDelta(t, 0.5, r.RepeatRate, 0.001)
}

func TestFoldRetentionEmpty(t *testing.T) {
	r := FoldRetention(nil)

	assert.Zero(t, r.TotalCustomers)
	assert.Zero(t, r.RepeatRate)
}

func TestFoldDeliveryPerformance(t *testing.T) {
	estimate := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	early := estimate.Add(-24 * time.Hour)
	late := estimate.Add(48 * time.Hour)
	departed := estimate.AddDate(0, 0, -12)

	shipments := []shipmentModel.Shipment{
		{Status: shipmentModel.StatusDelivered, EstimatedArrival: &estimate, ActualArrival: &early, DepartureDate: &departed},
		{Status: shipmentModel.StatusDelivered, EstimatedArrival: &estimate, ActualArrival: &late, DepartureDate: &departed},
		{Status: shipmentModel.StatusDelivered}, // no dates, excluded from rate
		{Status: shipmentModel.StatusDelayed},
		{Status: shipmentModel.StatusInTransit},
	}

	perf := FoldDeliveryPerformance(shipments)

	assert.Equal(t, 3, perf.DeliveredCount)
	assert.Equal(t, 1, perf.OnTimeCount)
	assert.InDelta(t, 0.5, perf.OnTimeRate, 0.001, "undated deliveries are not in the denominator")
	assert.Equal(t, 1, perf.DelayedCount)
	assert.InDelta(t, 12.5, perf.AvgTransitDays, 0.001)
}

func TestFoldDeliveryPerformanceEmpty(t *testing.T) {
	perf := FoldDeliveryPerformance(nil)

	assert.Zero(t, perf.OnTimeRate)
	assert.Zero(t, perf.AvgTransitDays)
}
