package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusRefunded, false},
		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusPending, false},
		{StatusFailed, StatusPending, true},
		{StatusFailed, StatusCancelled, true},
		{StatusFailed, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusRefunded, StatusCompleted, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusFailed.IsTerminal())
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.Equal(t, []PaymentMethod{MethodCreditCard, MethodBankTransfer, MethodMobileMoney, MethodCash}, AllMethods())
	for _, m := range AllMethods() {
		assert.True(t, m.IsValid(), "method %s", m)
	}
	assert.False(t, PaymentMethod("wire").IsValid())
	assert.False(t, PaymentMethod("check").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestIsRefund(t *testing.T) {
	originalID := uint(7)

	byLink := Payment{RefundOfID: &originalID, Amount: decimal.NewFromInt(100)}
	assert.True(t, byLink.IsRefund())

	byAmount := Payment{Amount: decimal.NewFromInt(-250)}
	assert.True(t, byAmount.IsRefund())

	regular := Payment{Amount: decimal.NewFromInt(250)}
	assert.False(t, regular.IsRefund())
}

func TestProcessingMinutes(t *testing.T) {
	created := time.Now()
	processed := created.Add(45 * time.Minute)

	p := Payment{CreatedAt: created, ProcessedAt: &processed}
	assert.InDelta(t, 45.0, p.ProcessingMinutes(), 0.001)

	p.ProcessedAt = nil
	assert.Zero(t, p.ProcessingMinutes())
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()

	stale := Payment{Status: StatusPending, CreatedAt: now.Add(-31 * 24 * time.Hour)}
	assert.True(t, stale.IsOverdue(now, 30))

	fresh := Payment{Status: StatusPending, CreatedAt: now.Add(-5 * 24 * time.Hour)}
	assert.False(t, fresh.IsOverdue(now, 30))

	completed := Payment{Status: StatusCompleted, CreatedAt: now.Add(-60 * 24 * time.Hour)}
	assert.False(t, completed.IsOverdue(now, 30), "only pending payments go overdue")
}
