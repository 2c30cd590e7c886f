package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrBadSchedule reports a mis-specified bracket table (limits not strictly
// increasing, or a negative limit/rate). Raised at construction time so a bad
// table can never silently mis-tax.
var ErrBadSchedule = errors.New("invalid bracket schedule")

// Bracket is one band of a marginal-rate schedule: the Rate applies to the
// slice of an amount between the previous bracket's Limit and this one's.
type Bracket struct {
	Limit decimal.Decimal
	Rate  decimal.Decimal
}

// Schedule is an ordered marginal-rate table. The bounded brackets cover
// amounts up to the last Limit; topRate taxes everything above it, so any
// amount is covered.
type Schedule struct {
	brackets []Bracket
	topRate  decimal.Decimal
}

// NewSchedule builds a Schedule from bounded brackets in ascending limit
// order plus the rate for amounts above the last limit.
func NewSchedule(topRate decimal.Decimal, brackets ...Bracket) (Schedule, error) {
	if topRate.IsNegative() {
		return Schedule{}, fmt.Errorf("%w: top rate is negative", ErrBadSchedule)
	}

	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return Schedule{}, fmt.Errorf("%w: bracket %d has negative rate", ErrBadSchedule, i)
		}
		if b.Limit.LessThanOrEqual(prev) {
			return Schedule{}, fmt.Errorf("%w: bracket %d limit %s not above previous limit %s",
				ErrBadSchedule, i, b.Limit, prev)
		}
		prev = b.Limit
	}

	return Schedule{brackets: brackets, topRate: topRate}, nil
}

// mustSchedule backs the statutory tables; a panic here is a programming
// error in the compiled-in constants, not a runtime condition.
func mustSchedule(topRate decimal.Decimal, brackets ...Bracket) Schedule {
	s, err := NewSchedule(topRate, brackets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Tax applies the schedule marginally: each band's rate is charged only on
// the slice of amount that falls inside that band. Rates are fractional
// (0.035 = 3.5%) and no rounding is applied; callers round for display.
// The amount is assumed non-negative; Calculate validates before calling.
func (s Schedule) Tax(amount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	prev := decimal.Zero

	for _, b := range s.brackets {
		slice := decimal.Min(amount, b.Limit).Sub(prev)
		if slice.IsPositive() {
			total = total.Add(slice.Mul(b.Rate))
		}
		if amount.LessThanOrEqual(b.Limit) {
			return total
		}
		prev = b.Limit
	}

	// Everything above the last bounded bracket.
	if excess := amount.Sub(prev); excess.IsPositive() {
		total = total.Add(excess.Mul(s.topRate))
	}
	return total
}

// Brackets returns a copy of the bounded bands; callers cannot mutate the
// schedule through it.
func (s Schedule) Brackets() []Bracket {
	out := make([]Bracket, len(s.brackets))
	copy(out, s.brackets)
	return out
}

// TopRate returns the rate applied above the last bounded bracket.
func (s Schedule) TopRate() decimal.Decimal {
	return s.topRate
}
