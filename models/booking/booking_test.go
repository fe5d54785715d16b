package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitionGraph(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusInTransit, StatusCancelled},
		StatusInTransit:  {StatusDelivered, StatusCancelled},
		StatusDelivered:  {StatusCompleted},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, target := range allowed[from] {
				if target == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestDeliveryPath(t *testing.T) {
	tests := []struct {
		from BookingStatus
		want []BookingStatus
	}{
		{StatusConfirmed, []BookingStatus{StatusProcessing, StatusInTransit, StatusDelivered}},
		{StatusProcessing, []BookingStatus{StatusInTransit, StatusDelivered}},
		{StatusInTransit, []BookingStatus{StatusDelivered}},
		{StatusPending, nil},
		{StatusDelivered, nil},
		{StatusCompleted, nil},
		{StatusCancelled, nil},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DeliveryPath(tc.from), "from %s", tc.from)
	}
}

func TestDeliveryPathHopsAreLegalTransitions(t *testing.T) {
	// A shipment arriving must be able to walk a confirmed booking all the
	// way to delivered, one allowed transition per hop.
	cur := StatusConfirmed
	for _, step := range DeliveryPath(StatusConfirmed) {
		assert.True(t, cur.CanTransitionTo(step), "%s -> %s", cur, step)
		cur = step
	}
	assert.Equal(t, StatusDelivered, cur)
}

func TestUnknownStatusIsInvalid(t *testing.T) {
	assert.False(t, BookingStatus("archived").IsValid())
	assert.False(t, BookingStatus("").IsValid())
	assert.False(t, BookingStatus("archived").CanTransitionTo(StatusConfirmed))
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(4244)

	tests := []struct {
		name string
		paid decimal.Decimal
		want PaymentStatus
	}{
		{"nothing paid", decimal.Zero, PaymentStatusUnpaid},
		{"partially paid", decimal.NewFromInt(2000), PaymentStatusPartial},
		{"fully paid", total, PaymentStatusPaid},
		{"overpaid", decimal.NewFromInt(5000), PaymentStatusPaid},
		{"refunded back to zero", decimal.Zero, PaymentStatusUnpaid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePaymentStatus(tc.paid, total))
		})
	}
}

func TestDerivePaymentStatusZeroTotal(t *testing.T) {
	// A zero-amount booking is never considered paid.
	assert.Equal(t, PaymentStatusUnpaid, DerivePaymentStatus(decimal.Zero, decimal.Zero))
}

func TestBalanceAmount(t *testing.T) {
	b := Booking{TotalAmount: decimal.NewFromInt(4244), PaidAmount: decimal.NewFromInt(2000)}
	assert.True(t, b.BalanceAmount().Equal(decimal.NewFromInt(2244)))
}

func TestValidateDates(t *testing.T) {
	pickup := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	delivery := pickup.AddDate(0, 0, 14)

	assert.True(t, ValidateDates(&pickup, &delivery))
	assert.False(t, ValidateDates(&delivery, &pickup))
	assert.False(t, ValidateDates(&pickup, &pickup))
	assert.True(t, ValidateDates(nil, &delivery), "missing dates pass")
	assert.True(t, ValidateDates(&pickup, nil))
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name      string
		status    BookingStatus
		estimated *time.Time
		want      bool
	}{
		{"in transit past estimate", StatusInTransit, &past, true},
		{"in transit before estimate", StatusInTransit, &future, false},
		{"no estimate", StatusInTransit, nil, false},
		{"delivered past estimate", StatusDelivered, &past, false},
		{"cancelled past estimate", StatusCancelled, &past, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Booking{Status: tc.status, EstimatedDelivery: tc.estimated}
			assert.Equal(t, tc.want, b.IsOverdue(now))
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   int
	}{
		{StatusPending, 0},
		{StatusConfirmed, 25},
		{StatusProcessing, 40},
		{StatusInTransit, 60},
		{StatusDelivered, 100},
		{StatusCompleted, 100},
		{StatusCancelled, 0},
	}
	for _, tc := range tests {
		b := Booking{Status: tc.status}
		assert.Equal(t, tc.want, b.ProgressPercent(), "status %s", tc.status)
	}
}
