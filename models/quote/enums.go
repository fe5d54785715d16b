package quote

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	StatusPending   QuoteStatus = "pending"
	StatusApproved  QuoteStatus = "approved"
	StatusRejected  QuoteStatus = "rejected"
	StatusExpired   QuoteStatus = "expired"
	StatusConverted QuoteStatus = "converted"
)

func (qs QuoteStatus) String() string {
	return string(qs)
}

func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired, StatusConverted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
// Converted, rejected and expired quotes never move again.
func (qs QuoteStatus) IsTerminal() bool {
	return qs == StatusConverted || qs == StatusRejected || qs == StatusExpired
}

// statusTransitions is the allowed forward graph. Expiry is not listed: it
// is a time-driven transition applied lazily at read, not a caller action.
var statusTransitions = map[QuoteStatus][]QuoteStatus{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusConverted},
	StatusRejected:  {},
	StatusExpired:   {},
	StatusConverted: {},
}

// CanTransitionTo reports whether a caller-driven transition is allowed.
func (qs QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if !target.IsValid() {
		return false
	}
	for _, allowed := range statusTransitions[qs] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllStatuses returns every valid quote status.
func AllStatuses() []QuoteStatus {
	return []QuoteStatus{StatusPending, StatusApproved, StatusRejected, StatusExpired, StatusConverted}
}
