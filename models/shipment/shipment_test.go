package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    ShipmentStatus
		to      ShipmentStatus
		allowed bool
	}{
		{StatusPreparing, StatusInTransit, true},
		{StatusPreparing, StatusDelayed, true},
		{StatusPreparing, StatusDelivered, false},
		{StatusInTransit, StatusCustoms, true},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusDelayed, true},
		{StatusCustoms, StatusInTransit, true},
		{StatusCustoms, StatusDelivered, true},
		{StatusCustoms, StatusDelayed, true},
		{StatusDelayed, StatusPreparing, true},
		{StatusDelayed, StatusInTransit, true},
		{StatusDelayed, StatusCustoms, true},
		{StatusDelayed, StatusDelivered, true},
		{StatusDelivered, StatusInTransit, false},
		{StatusDelivered, StatusDelayed, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAppendUpdate(t *testing.T) {
	now := time.Now()
	s := Shipment{CurrentLocation: "Port of New York"}

	s.AppendUpdate(StatusInTransit, "Atlantic Ocean", "departed on schedule", "ops@example.com", now)

	assert.Len(t, s.TrackingUpdates, 1)
	assert.Equal(t, "in_transit", s.TrackingUpdates[0].Status)
	assert.Equal(t, "Atlantic Ocean", s.CurrentLocation)

	s.AppendUpdate(StatusCustoms, "", "awaiting clearance", "ops@example.com", now.Add(time.Hour))

	assert.Len(t, s.TrackingUpdates, 2)
	assert.Equal(t, "Atlantic Ocean", s.CurrentLocation, "empty location keeps the last known one")
}

func TestWasOnTime(t *testing.T) {
	estimated := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	early := estimated.Add(-24 * time.Hour)
	late := estimated.Add(24 * time.Hour)

	tests := []struct {
		name      string
		status    ShipmentStatus
		estimated *time.Time
		actual    *time.Time
		onTime    bool
		known     bool
	}{
		{"arrived early", StatusDelivered, &estimated, &early, true, true},
		{"arrived exactly on estimate", StatusDelivered, &estimated, &estimated, true, true},
		{"arrived late", StatusDelivered, &estimated, &late, false, true},
		{"not delivered yet", StatusInTransit, &estimated, nil, false, false},
		{"delivered without estimate", StatusDelivered, nil, &early, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Shipment{Status: tc.status, EstimatedArrival: tc.estimated, ActualArrival: tc.actual}
			onTime, known := s.WasOnTime()
			assert.Equal(t, tc.onTime, onTime)
			assert.Equal(t, tc.known, known)
		})
	}
}

func TestTransitDays(t *testing.T) {
	departed := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	arrived := departed.AddDate(0, 0, 12)

	s := Shipment{DepartureDate: &departed, ActualArrival: &arrived}
	assert.InDelta(t, 12.0, s.TransitDays(), 0.001)

	s.ActualArrival = nil
	assert.Zero(t, s.TransitDays())
}

func TestIsDelayed(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&Shipment{Status: StatusInTransit, EstimatedArrival: &past}).IsDelayed(now))
	assert.False(t, (&Shipment{Status: StatusInTransit, EstimatedArrival: &future}).IsDelayed(now))
	assert.True(t, (&Shipment{Status: StatusDelayed, EstimatedArrival: &future}).IsDelayed(now))
	assert.False(t, (&Shipment{Status: StatusDelivered, EstimatedArrival: &past}).IsDelayed(now))
}
