package payment

// PaymentStatus is the state of a single payment row.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
	StatusRefunded  PaymentStatus = "refunded"
)

func (ps PaymentStatus) String() string {
	return string(ps)
}

func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (ps PaymentStatus) IsTerminal() bool {
	return ps == StatusCancelled || ps == StatusRefunded
}

// statusTransitions is the allowed movement between payment states. A failed
// payment may be retried back to pending; a completed payment may only move
// to refunded.
var statusTransitions = map[PaymentStatus][]PaymentStatus{
	StatusPending:   {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted: {StatusRefunded},
	StatusFailed:    {StatusPending, StatusCancelled},
}

// CanTransitionTo reports whether moving from ps to target is allowed.
func (ps PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, allowed := range statusTransitions[ps] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllStatuses lists every payment status.
func AllStatuses() []PaymentStatus {
	return []PaymentStatus{StatusPending, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded}
}

// PaymentMethod is the channel money moved through.
type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCash         PaymentMethod = "cash"
)

func (pm PaymentMethod) String() string {
	return string(pm)
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case MethodCreditCard, MethodBankTransfer, MethodMobileMoney, MethodCash:
		return true
	default:
		return false
	}
}

// AllMethods lists every payment method.
func AllMethods() []PaymentMethod {
	return []PaymentMethod{MethodCreditCard, MethodBankTransfer, MethodMobileMoney, MethodCash}
}
