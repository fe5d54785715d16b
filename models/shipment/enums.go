package shipment

// ShipmentStatus is the physical movement state of a shipment.
type ShipmentStatus string

const (
	StatusPreparing ShipmentStatus = "preparing"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusCustoms   ShipmentStatus = "customs"
	StatusDelivered ShipmentStatus = "delivered"
	StatusDelayed   ShipmentStatus = "delayed"
)

func (ss ShipmentStatus) String() string {
	return string(ss)
}

func (ss ShipmentStatus) IsValid() bool {
	switch ss {
	case StatusPreparing, StatusInTransit, StatusCustoms, StatusDelivered, StatusDelayed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the shipment can move no further.
func (ss ShipmentStatus) IsTerminal() bool {
	return ss == StatusDelivered
}

// statusTransitions is the allowed movement between shipment states. Delayed
// is re-enterable from any non-terminal state and resumable back into the
// normal flow.
var statusTransitions = map[ShipmentStatus][]ShipmentStatus{
	StatusPreparing: {StatusInTransit, StatusDelayed},
	StatusInTransit: {StatusCustoms, StatusDelivered, StatusDelayed},
	StatusCustoms:   {StatusInTransit, StatusDelivered, StatusDelayed},
	StatusDelayed:   {StatusPreparing, StatusInTransit, StatusCustoms, StatusDelivered},
}

// CanTransitionTo reports whether moving from ss to target is allowed.
func (ss ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	for _, allowed := range statusTransitions[ss] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllStatuses lists every shipment status.
func AllStatuses() []ShipmentStatus {
	return []ShipmentStatus{StatusPreparing, StatusInTransit, StatusCustoms, StatusDelivered, StatusDelayed}
}
