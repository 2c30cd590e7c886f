package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soleBuyer(b Buyer) []Buyer {
	b.SharePct = d("100")
	return []Buyer{b}
}

func TestCalculateFirstHome(t *testing.T) {
	res, err := Calculate(d("2000000"), soleBuyer(Buyer{Name: "dana", FirstHome: true}), Options{})
	require.NoError(t, err)

	// Only the slice above 1,978,745 is taxed, at 3.5%.
	assert.True(t, res.TotalTax.Equal(d("743.925")), "got %s", res.TotalTax)
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, TrackRegular, res.Breakdown[0].Track)
	assert.True(t, res.Breakdown[0].PortionPrice.Equal(d("2000000")))
}

func TestCalculateAdditionalHome(t *testing.T) {
	res, err := Calculate(d("1000000"), soleBuyer(Buyer{Name: "yossi"}), Options{})
	require.NoError(t, err)

	assert.True(t, res.TotalTax.Equal(d("80000")), "got %s", res.TotalTax)
	assert.Equal(t, TrackRegular, res.Breakdown[0].Track)
}

func TestCalculateLandFlatRateMultiBuyer(t *testing.T) {
	buyers := []Buyer{
		// Eligibility flags must be ignored in land mode.
		{Name: "a", SharePct: d("60"), FirstHome: true, Oleh: true},
		{Name: "b", SharePct: d("40"), Disabled: true, BereavedFamily: true},
	}

	res, err := Calculate(d("1000000"), buyers, Options{PropertyType: PropertyLand})
	require.NoError(t, err)

	assert.True(t, res.TotalTax.Equal(d("60000")), "got %s", res.TotalTax)
	require.Len(t, res.Breakdown, 2)
	assert.True(t, res.Breakdown[0].Tax.Equal(d("36000")))
	assert.True(t, res.Breakdown[1].Tax.Equal(d("24000")))
	for _, line := range res.Breakdown {
		assert.Equal(t, TrackLand, line.Track)
	}
}

func TestCalculatePicksCheapestEligibleTrack(t *testing.T) {
	// Additional-home regular tax on 2.2M is 176,000. Oleh:
	// 1,988,090*0.005 + 211,910*0.05 = 20,535.95. Disabled: 2.2M*0.005 = 11,000.
	res, err := Calculate(d("2200000"), soleBuyer(Buyer{Oleh: true, Disabled: true}), Options{})
	require.NoError(t, err)

	assert.True(t, res.TotalTax.Equal(d("11000")), "got %s", res.TotalTax)
	assert.Equal(t, TrackDisabled, res.Breakdown[0].Track)
}

func TestCalculateTieGoesToOlehBeforeDisabled(t *testing.T) {
	// Below both reduced thresholds the oleh and disabled tracks charge the
	// same 0.5%; the tie is reported as oleh.
	res, err := Calculate(d("1000000"), soleBuyer(Buyer{Oleh: true, Disabled: true}), Options{})
	require.NoError(t, err)

	assert.True(t, res.TotalTax.Equal(d("5000")), "got %s", res.TotalTax)
	assert.Equal(t, TrackOleh, res.Breakdown[0].Track)
}

func TestCalculateTieDisabledBeforeBereaved(t *testing.T) {
	res, err := Calculate(d("1000000"), soleBuyer(Buyer{Disabled: true, BereavedFamily: true}), Options{})
	require.NoError(t, err)

	assert.Equal(t, TrackDisabled, res.Breakdown[0].Track)
	assert.True(t, res.TotalTax.Equal(d("5000")))
}

func TestCalculateUnflaggedTrackNeverWins(t *testing.T) {
	// The oleh table would be far cheaper here, but the flag is unset.
	res, err := Calculate(d("1000000"), soleBuyer(Buyer{}), Options{})
	require.NoError(t, err)

	assert.Equal(t, TrackRegular, res.Breakdown[0].Track)
	assert.True(t, res.TotalTax.Equal(d("80000")))
}

func TestCalculateBereavedTrack(t *testing.T) {
	res, err := Calculate(d("1500000"), soleBuyer(Buyer{BereavedFamily: true}), Options{})
	require.NoError(t, err)

	assert.Equal(t, TrackBereaved, res.Breakdown[0].Track)
	assert.True(t, res.TotalTax.Equal(d("7500")))
}

// Pins the published reduced-cap rule: 0.5% up to the cap, then the
// ordinary schedule re-run from its first bracket on the excess. For a
// first-home buyer that means the marginal rate drops to zero just past the
// cap, so the tax curve goes flat there. Deliberately not "fixed" here.
func TestReducedCapRuleRestartsOrdinaryLadder(t *testing.T) {
	cases := []struct {
		price string
		want  string
	}{
		{"2400000", "12000"},
		{"2500000", "12500"},
		// Excess of 1,000,000 falls entirely in the first-home zero band.
		{"3500000", "12500"},
		// Excess 2,478,745: 368,295*0.035 + 131,705*0.05 on top of 12,500.
		{"4978745", "31975.575"},
	}

	for _, tc := range cases {
		res, err := Calculate(d(tc.price), soleBuyer(Buyer{FirstHome: true, Disabled: true}), Options{})
		require.NoError(t, err)
		assert.True(t, res.TotalTax.Equal(d(tc.want)), "price %s: want %s, got %s", tc.price, tc.want, res.TotalTax)
		assert.Equal(t, TrackDisabled, res.Breakdown[0].Track, "price %s", tc.price)
	}
}

func TestCalculateMonotonicInPrice(t *testing.T) {
	buyers := []struct {
		name  string
		buyer Buyer
	}{
		{"first home", Buyer{FirstHome: true}},
		{"additional home", Buyer{}},
		{"oleh", Buyer{Oleh: true}},
	}

	step := d("250000")
	for _, tc := range buyers {
		prev := decimal.Zero
		price := decimal.Zero
		for i := 0; i < 40; i++ {
			res, err := Calculate(price, soleBuyer(tc.buyer), Options{})
			require.NoError(t, err)
			assert.True(t, res.TotalTax.GreaterThanOrEqual(prev),
				"%s: tax decreased at price %s", tc.name, price)
			prev = res.TotalTax
			price = price.Add(step)
		}
	}
}

func TestCalculateIdempotent(t *testing.T) {
	buyers := []Buyer{
		{Name: "a", SharePct: d("50"), FirstHome: true, Oleh: true},
		{Name: "b", SharePct: d("50"), Disabled: true},
	}

	first, err := Calculate(d("3100000"), buyers, Options{})
	require.NoError(t, err)
	second, err := Calculate(d("3100000"), buyers, Options{})
	require.NoError(t, err)

	assert.True(t, first.TotalTax.Equal(second.TotalTax))
	require.Len(t, second.Breakdown, len(first.Breakdown))
	for i := range first.Breakdown {
		assert.True(t, first.Breakdown[i].Tax.Equal(second.Breakdown[i].Tax))
		assert.Equal(t, first.Breakdown[i].Track, second.Breakdown[i].Track)
	}
}

func TestPortionPriceFollowsShare(t *testing.T) {
	res, err := Calculate(d("1234567"), soleBuyer(Buyer{}), Options{})
	require.NoError(t, err)
	assert.True(t, res.Breakdown[0].PortionPrice.Equal(d("1234567")))

	res, err = Calculate(d("1000000"), []Buyer{{SharePct: d("25")}}, Options{})
	require.NoError(t, err)
	assert.True(t, res.Breakdown[0].PortionPrice.Equal(d("250000")))
}

func TestSplittingSharesWithinOneBracketPreservesTotal(t *testing.T) {
	// Both portions of 1M stay inside the additional-home 8% band, so the
	// marginal application is linear and the split changes nothing.
	single, err := Calculate(d("1000000"), soleBuyer(Buyer{}), Options{})
	require.NoError(t, err)

	split, err := Calculate(d("1000000"), []Buyer{
		{SharePct: d("60")},
		{SharePct: d("40")},
	}, Options{})
	require.NoError(t, err)

	assert.True(t, single.TotalTax.Equal(split.TotalTax),
		"single %s vs split %s", single.TotalTax, split.TotalTax)
}

func TestSplittingSharesAcrossBracketBoundaryIsNotLinear(t *testing.T) {
	// Boundary case: 2.2M crosses the first-home zero band as a whole, but
	// each 1.1M half sits entirely inside it. The split is strictly cheaper;
	// per-buyer marginal taxation is not additive across bracket boundaries.
	single, err := Calculate(d("2200000"), soleBuyer(Buyer{FirstHome: true}), Options{})
	require.NoError(t, err)

	split, err := Calculate(d("2200000"), []Buyer{
		{SharePct: d("50"), FirstHome: true},
		{SharePct: d("50"), FirstHome: true},
	}, Options{})
	require.NoError(t, err)

	assert.True(t, single.TotalTax.Equal(d("7743.925")), "got %s", single.TotalTax)
	assert.True(t, split.TotalTax.IsZero(), "got %s", split.TotalTax)
	assert.True(t, split.TotalTax.LessThan(single.TotalTax))
}

func TestCalculateValidation(t *testing.T) {
	valid := soleBuyer(Buyer{})

	_, err := Calculate(d("-1"), valid, Options{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Calculate(d("1000000"), nil, Options{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Calculate(d("1000000"), []Buyer{{SharePct: d("150")}}, Options{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Calculate(d("1000000"), []Buyer{{SharePct: d("-5")}}, Options{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Calculate(d("1000000"), valid, Options{PropertyType: "commercial"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalculateDefaultsToResidential(t *testing.T) {
	explicit, err := Calculate(d("1000000"), soleBuyer(Buyer{}), Options{PropertyType: PropertyResidential})
	require.NoError(t, err)

	implicit, err := Calculate(d("1000000"), soleBuyer(Buyer{}), Options{})
	require.NoError(t, err)

	assert.True(t, explicit.TotalTax.Equal(implicit.TotalTax))
	assert.Equal(t, TrackRegular, implicit.Breakdown[0].Track)
}

func TestCalculateZeroPrice(t *testing.T) {
	res, err := Calculate(decimal.Zero, soleBuyer(Buyer{FirstHome: true}), Options{})
	require.NoError(t, err)
	assert.True(t, res.TotalTax.IsZero())
}
