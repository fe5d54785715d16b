package customer

import "github.com/shopspring/decimal"

// CustomerStatus is the account standing of a customer.
type CustomerStatus string

const (
	StatusActive    CustomerStatus = "active"
	StatusInactive  CustomerStatus = "inactive"
	StatusSuspended CustomerStatus = "suspended"
)

func (cs CustomerStatus) String() string {
	return string(cs)
}

func (cs CustomerStatus) IsValid() bool {
	switch cs {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

// Tier is the derived loyalty classification based on cumulative spend.
// It is never stored.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

var (
	tierPlatinumFloor = decimal.NewFromInt(50000)
	tierGoldFloor     = decimal.NewFromInt(25000)
	tierSilverFloor   = decimal.NewFromInt(10000)
)

// TierForSpend classifies a cumulative spend amount.
func TierForSpend(totalSpent decimal.Decimal) Tier {
	switch {
	case totalSpent.GreaterThanOrEqual(tierPlatinumFloor):
		return TierPlatinum
	case totalSpent.GreaterThanOrEqual(tierGoldFloor):
		return TierGold
	case totalSpent.GreaterThanOrEqual(tierSilverFloor):
		return TierSilver
	default:
		return TierBronze
	}
}

// DiscountPercent returns the loyalty discount a tier is entitled to.
func (t Tier) DiscountPercent() float64 {
	switch t {
	case TierPlatinum:
		return 15.0
	case TierGold:
		return 10.0
	case TierSilver:
		return 5.0
	default:
		return 0.0
	}
}
