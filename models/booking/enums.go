package booking

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusProcessing BookingStatus = "processing"
	StatusInTransit  BookingStatus = "in_transit"
	StatusDelivered  BookingStatus = "delivered"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus is the derived paid/partial/unpaid label.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusInTransit,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the booking can never move again.
func (bs BookingStatus) IsTerminal() bool {
	return bs == StatusCompleted || bs == StatusCancelled
}

// statusTransitions is the forward graph: the happy path advances
// monotonically, and cancellation is reachable from every state except
// delivered and completed.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusInTransit, StatusCancelled},
	StatusInTransit:  {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// forwardStep is the single happy-path hop out of each active status.
var forwardStep = map[BookingStatus]BookingStatus{
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusInTransit,
	StatusInTransit:  StatusDelivered,
}

// DeliveryPath returns the statuses a booking passes through, in order, to
// reach delivered from the given status. Nil means delivered is not
// reachable, including when the booking is already delivered.
func DeliveryPath(from BookingStatus) []BookingStatus {
	var path []BookingStatus
	for cur := from; cur != StatusDelivered; {
		next, ok := forwardStep[cur]
		if !ok {
			return nil
		}
		path = append(path, next)
		cur = next
	}
	return path
}

// CanTransitionTo reports whether the transition is allowed.
func (bs BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if !target.IsValid() {
		return false
	}
	for _, allowed := range statusTransitions[bs] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllStatuses returns every valid booking status.
func AllStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusConfirmed,
		StatusProcessing,
		StatusInTransit,
		StatusDelivered,
		StatusCompleted,
		StatusCancelled,
	}
}
