package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewScheduleRejectsNonIncreasingLimits(t *testing.T) {
	_, err := NewSchedule(
		d("0.10"),
		Bracket{Limit: d("1000"), Rate: d("0.01")},
		Bracket{Limit: d("1000"), Rate: d("0.02")},
	)
	require.ErrorIs(t, err, ErrBadSchedule)

	_, err = NewSchedule(
		d("0.10"),
		Bracket{Limit: d("2000"), Rate: d("0.01")},
		Bracket{Limit: d("1500"), Rate: d("0.02")},
	)
	require.ErrorIs(t, err, ErrBadSchedule)
}

func TestNewScheduleRejectsNegativeRates(t *testing.T) {
	_, err := NewSchedule(d("0.10"), Bracket{Limit: d("1000"), Rate: d("-0.01")})
	require.ErrorIs(t, err, ErrBadSchedule)

	_, err = NewSchedule(d("-0.10"), Bracket{Limit: d("1000"), Rate: d("0.01")})
	require.ErrorIs(t, err, ErrBadSchedule)
}

func TestScheduleTaxAppliesRatesMarginally(t *testing.T) {
	s, err := NewSchedule(
		d("0.10"),
		Bracket{Limit: d("1000"), Rate: decimal.Zero},
		Bracket{Limit: d("2000"), Rate: d("0.05")},
	)
	require.NoError(t, err)

	// Entirely inside the zero band.
	assert.True(t, s.Tax(d("800")).IsZero())

	// Straddles the first boundary: only the slice above 1000 is taxed.
	assert.True(t, s.Tax(d("1500")).Equal(d("25")), "got %s", s.Tax(d("1500")))

	// Exactly at a boundary belongs to the lower band.
	assert.True(t, s.Tax(d("2000")).Equal(d("50")))

	// Above every bounded bracket: the top rate covers the tail.
	// 0 + 1000*0.05 + 500*0.10
	assert.True(t, s.Tax(d("2500")).Equal(d("100")))
}

func TestScheduleTaxZeroAmount(t *testing.T) {
	assert.True(t, firstHomeSchedule.Tax(decimal.Zero).IsZero())
	assert.True(t, additionalHomeSchedule.Tax(decimal.Zero).IsZero())
}

func TestAdditionalHomeScheduleLargeAmount(t *testing.T) {
	// 6,055,070 * 0.08 + 3,944,930 * 0.10
	got := additionalHomeSchedule.Tax(d("10000000"))
	assert.True(t, got.Equal(d("878898.6")), "got %s", got)
}

func TestBracketsReturnsACopy(t *testing.T) {
	bands := firstHomeSchedule.Brackets()
	require.NotEmpty(t, bands)
	bands[0].Limit = decimal.Zero

	again := firstHomeSchedule.Brackets()
	assert.False(t, again[0].Limit.IsZero())
}
