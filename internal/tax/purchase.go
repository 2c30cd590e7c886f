// Package tax implements the statutory property-purchase tax computation:
// a progressive marginal-bracket schedule with four mutually exclusive
// eligibility tracks per buyer, plus a flat-rate override for land parcels.
// Everything here is pure (no I/O, no mutable state) and safe to call
// concurrently.
package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation reports malformed input to Calculate.
var ErrValidation = errors.New("invalid purchase tax input")

// Track identifies which schedule produced a buyer's tax.
type Track string

const (
	TrackRegular  Track = "regular"
	TrackOleh     Track = "oleh"
	TrackDisabled Track = "disabled"
	TrackBereaved Track = "bereaved"
	TrackLand     Track = "land"
)

// PropertyType selects the top-level computation mode.
type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyLand        PropertyType = "land"
)

// Buyer is one party to the purchase. SharePct is this buyer's percentage
// ownership (0-100); shares across all buyers should sum to 100 for sane
// output, but Calculate does not enforce the sum.
type Buyer struct {
	Name            string
	SharePct        decimal.Decimal
	FirstHome       bool
	ReplacementHome bool
	Oleh            bool
	Disabled        bool
	BereavedFamily  bool
}

// Options alters the top-level computation mode; its zero value means a
// residential purchase.
type Options struct {
	PropertyType PropertyType
}

// BreakdownLine records one buyer's result: the share of the price taxed,
// the tax owed, and the track that produced it.
type BreakdownLine struct {
	Buyer        Buyer
	PortionPrice decimal.Decimal
	Tax          decimal.Decimal
	Track        Track
}

// Result is the outcome of one Calculate call.
type Result struct {
	TotalTax  decimal.Decimal
	Breakdown []BreakdownLine
}

var hundred = decimal.NewFromInt(100)

// Calculate computes the purchase tax owed by each buyer and the total
// across all buyers. In land mode every buyer pays the flat land rate on
// their portion and eligibility flags are ignored. In residential mode each
// buyer is taxed by the cheapest schedule they are eligible for, the
// ordinary schedule always included.
func Calculate(price decimal.Decimal, buyers []Buyer, opts Options) (Result, error) {
	if price.IsNegative() {
		return Result{}, fmt.Errorf("%w: price must be non-negative, got %s", ErrValidation, price)
	}
	if len(buyers) == 0 {
		return Result{}, fmt.Errorf("%w: at least one buyer is required", ErrValidation)
	}
	for i, b := range buyers {
		if b.SharePct.IsNegative() || b.SharePct.GreaterThan(hundred) {
			return Result{}, fmt.Errorf("%w: buyer %d share %s outside [0, 100]", ErrValidation, i, b.SharePct)
		}
	}

	propertyType := opts.PropertyType
	if propertyType == "" {
		propertyType = PropertyResidential
	}

	switch propertyType {
	case PropertyLand:
		return calculateLand(price, buyers), nil
	case PropertyResidential:
		return calculateResidential(price, buyers), nil
	default:
		return Result{}, fmt.Errorf("%w: unknown property type %q", ErrValidation, opts.PropertyType)
	}
}

// calculateLand taxes every portion at the flat land rate. Eligibility
// flags are not consulted in this mode.
func calculateLand(price decimal.Decimal, buyers []Buyer) Result {
	res := Result{TotalTax: decimal.Zero, Breakdown: make([]BreakdownLine, 0, len(buyers))}
	for _, b := range buyers {
		portion := portionPrice(price, b)
		lineTax := portion.Mul(landRate)
		res.Breakdown = append(res.Breakdown, BreakdownLine{
			Buyer:        b,
			PortionPrice: portion,
			Tax:          lineTax,
			Track:        TrackLand,
		})
		res.TotalTax = res.TotalTax.Add(lineTax)
	}
	return res
}

func calculateResidential(price decimal.Decimal, buyers []Buyer) Result {
	res := Result{TotalTax: decimal.Zero, Breakdown: make([]BreakdownLine, 0, len(buyers))}
	for _, b := range buyers {
		portion := portionPrice(price, b)
		lineTax, track := cheapestTrack(portion, b)
		res.Breakdown = append(res.Breakdown, BreakdownLine{
			Buyer:        b,
			PortionPrice: portion,
			Tax:          lineTax,
			Track:        track,
		})
		res.TotalTax = res.TotalTax.Add(lineTax)
	}
	return res
}

// cheapestTrack evaluates every track the buyer is eligible for and keeps
// the minimum. A track whose flag is unset is never computed, so it can
// never win the selection. Ties are attributed oleh, then disabled, then
// bereaved, defaulting to regular. The amount is identical either way;
// only the reported track differs.
func cheapestTrack(portion decimal.Decimal, b Buyer) (decimal.Decimal, Track) {
	regular := regularTax(portion, b)
	min := regular

	var oleh, disabled, bereaved decimal.Decimal
	if b.Oleh {
		oleh = olehSchedule.Tax(portion)
		min = decimal.Min(min, oleh)
	}
	if b.Disabled {
		disabled = reducedCapTax(portion, b)
		min = decimal.Min(min, disabled)
	}
	if b.BereavedFamily {
		bereaved = reducedCapTax(portion, b)
		min = decimal.Min(min, bereaved)
	}

	switch {
	case b.Oleh && min.Equal(oleh):
		return min, TrackOleh
	case b.Disabled && min.Equal(disabled):
		return min, TrackDisabled
	case b.BereavedFamily && min.Equal(bereaved):
		return min, TrackBereaved
	default:
		return min, TrackRegular
	}
}

// regularTax applies the ordinary schedule: the first/only-home table when
// the buyer has no other residence (or is replacing it), otherwise the
// additional-home table.
func regularTax(portion decimal.Decimal, b Buyer) decimal.Decimal {
	if b.FirstHome || b.ReplacementHome {
		return firstHomeSchedule.Tax(portion)
	}
	return additionalHomeSchedule.Tax(portion)
}

// reducedCapTax is the shared disabled/bereaved-family rule: the reduced
// flat rate up to the cap, and the ordinary schedule re-run from its first
// bracket on the excess. The excess restarting the ladder (rather than
// continuing from the cap point) reproduces the schedule as published; the
// resulting jump at the cap boundary is pinned by a test.
func reducedCapTax(portion decimal.Decimal, b Buyer) decimal.Decimal {
	capped := decimal.Min(portion, reducedRateCap)
	t := capped.Mul(reducedRate)
	if excess := portion.Sub(reducedRateCap); excess.IsPositive() {
		t = t.Add(regularTax(excess, b))
	}
	return t
}

func portionPrice(price decimal.Decimal, b Buyer) decimal.Decimal {
	return price.Mul(b.SharePct).Div(hundred)
}
