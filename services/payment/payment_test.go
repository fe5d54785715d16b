package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-shipping/errs"
	paymentModel "vehicle-shipping/models/payment"
)

func ptr[T any](v T) *T { return &v }

func TestCheckOverpayment(t *testing.T) {
	total := decimal.NewFromInt(2000)

	assert.NoError(t, CheckOverpayment(decimal.Zero, total, decimal.NewFromInt(2000)))
	assert.NoError(t, CheckOverpayment(decimal.NewFromInt(1500), total, decimal.NewFromInt(500)))

	err := CheckOverpayment(decimal.Zero, total, decimal.NewFromInt(5000))
	require.Error(t, err)
	assert.True(t, errs.IsInvariant(err))

	err = CheckOverpayment(decimal.NewFromInt(1500), total, decimal.NewFromInt(501))
	require.Error(t, err)
	assert.True(t, errs.IsInvariant(err))
}

func TestMethodPerformance(t *testing.T) {
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	processed := created.Add(30 * time.Minute)

	payments := []paymentModel.Payment{
		{PaymentMethod: paymentModel.MethodCreditCard, Status: paymentModel.StatusCompleted,
			Amount: decimal.NewFromInt(1000), CreatedAt: created, ProcessedAt: &processed},
		{PaymentMethod: paymentModel.MethodCreditCard, Status: paymentModel.StatusFailed,
			Amount: decimal.NewFromInt(500), CreatedAt: created},
		{PaymentMethod: paymentModel.MethodBankTransfer, Status: paymentModel.StatusCompleted,
			Amount: decimal.NewFromInt(2000), CreatedAt: created, ProcessedAt: &processed},
	}

	stats := MethodPerformance(payments)
	require.Len(t, stats, 2)

	byMethod := map[paymentModel.PaymentMethod]MethodStats{}
	for _, s := range stats {
		byMethod[s.Method] = s
	}

	card := byMethod[paymentModel.MethodCreditCard]
	assert.Equal(t, 2, card.Total)
	assert.Equal(t, 1, card.Completed)
	assert.Equal(t, 1, card.Failed)
	assert.InDelta(t, 0.5, card.SuccessRate, 0.001)
	assert.InDelta(t, 30.0, card.AvgProcessMinutes, 0.001)
	assert.True(t, card.Volume.Equal(decimal.NewFromInt(1000)))

	transfer := byMethod[paymentModel.MethodBankTransfer]
	assert.InDelta(t, 1.0, transfer.SuccessRate, 0.001)
	assert.True(t, transfer.Volume.Equal(decimal.NewFromInt(2000)))
}

func TestMethodPerformanceExcludesRefunds(t *testing.T) {
	payments := []paymentModel.Payment{
		{PaymentMethod: paymentModel.MethodMobileMoney, Status: paymentModel.StatusCompleted,
			Amount: decimal.NewFromInt(3000)},
		{PaymentMethod: paymentModel.MethodMobileMoney, Status: paymentModel.StatusCompleted,
			Amount: decimal.NewFromInt(-3000), RefundOfID: ptr(uint(1))},
	}

	stats := MethodPerformance(payments)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Total)
	assert.True(t, stats[0].Volume.Equal(decimal.NewFromInt(3000)))
}

func TestMethodPerformanceRefundedOriginalCountsAsSuccess(t *testing.T) {
	payments := []paymentModel.Payment{
		{PaymentMethod: paymentModel.MethodCash, Status: paymentModel.StatusRefunded,
			Amount: decimal.NewFromInt(800)},
	}

	stats := MethodPerformance(payments)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Completed)
	assert.InDelta(t, 1.0, stats[0].SuccessRate, 0.001)
}

func TestMethodPerformanceEmpty(t *testing.T) {
	assert.Empty(t, MethodPerformance(nil))
}

func TestMethodPerformanceNoProcessedPayments(t *testing.T) {
	payments := []paymentModel.Payment{
		{PaymentMethod: paymentModel.MethodBankTransfer, Status: paymentModel.StatusPending,
			Amount: decimal.NewFromInt(100)},
	}

	stats := MethodPerformance(payments)
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].SuccessRate)
	assert.Zero(t, stats[0].AvgProcessMinutes)
}
