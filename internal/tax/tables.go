package tax

import "github.com/shopspring/decimal"

// Statutory purchase-tax tables, 2024 schedule (amounts in NIS).
// Immutable package state: decimal values are never mutated and the
// schedules are only read, so concurrent callers need no coordination.
var (
	// First/only home: large zero-rated band, then climbing marginal rates.
	firstHomeSchedule = mustSchedule(
		dec("0.10"),
		Bracket{Limit: dec("1978745"), Rate: decimal.Zero},
		Bracket{Limit: dec("2347040"), Rate: dec("0.035")},
		Bracket{Limit: dec("6055070"), Rate: dec("0.05")},
		Bracket{Limit: dec("20183565"), Rate: dec("0.08")},
	)

	// Additional (investment) home: 8% from the first shekel.
	additionalHomeSchedule = mustSchedule(
		dec("0.10"),
		Bracket{Limit: dec("6055070"), Rate: dec("0.08")},
	)

	// New immigrant (oleh) reduced two-band table.
	olehSchedule = mustSchedule(
		dec("0.05"),
		Bracket{Limit: dec("1988090"), Rate: dec("0.005")},
	)
)

var (
	// Disabled and bereaved-family buyers pay this flat rate on the portion
	// of the price up to reducedRateCap; the excess re-enters the ordinary
	// schedule from its first bracket.
	reducedRate    = dec("0.005")
	reducedRateCap = dec("2500000")

	// Unbuilt land is taxed at a flat rate on the full portion price.
	landRate = dec("0.06")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
