package pricing

import (
	"github.com/shopspring/decimal"
)

// ModifierKind discriminates how a modifier's amount is applied.
type ModifierKind string

const (
	// ModifierFixed subtracts the amount as-is, in currency units.
	ModifierFixed ModifierKind = "fixed"
	// ModifierPercentage subtracts amount percent of the original base price.
	ModifierPercentage ModifierKind = "percentage"
)

// Modifier is one discount to apply against a base price.
type Modifier struct {
	Kind   ModifierKind
	Amount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Quote computes the final price for a base price and a set of modifiers.
//
// Percentage modifiers are always computed against the original base price,
// never the running total, so discounts do not compound. The result is clamped
// at zero.
func Quote(basePrice decimal.Decimal, modifiers []Modifier) decimal.Decimal {
	final := basePrice
	for _, m := range modifiers {
		switch m.Kind {
		case ModifierFixed:
			final = final.Sub(m.Amount)
		case ModifierPercentage:
			final = final.Sub(basePrice.Mul(m.Amount).Div(hundred))
		}
	}
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
