package tax

import "github.com/shopspring/decimal"

// ScheduleInfo is a read-only view of one statutory table, for UI form
// hints. Values are copies; mutating them cannot affect the computation.
type ScheduleInfo struct {
	Track    Track
	Name     string
	Brackets []Bracket
	TopRate  decimal.Decimal
}

// ReducedCapInfo describes the shared disabled/bereaved flat-rate rule.
type ReducedCapInfo struct {
	Rate decimal.Decimal
	Cap  decimal.Decimal
}

// Schedules returns the statutory tables in effect.
func Schedules() []ScheduleInfo {
	return []ScheduleInfo{
		{Track: TrackRegular, Name: "first or only home", Brackets: firstHomeSchedule.Brackets(), TopRate: firstHomeSchedule.TopRate()},
		{Track: TrackRegular, Name: "additional home", Brackets: additionalHomeSchedule.Brackets(), TopRate: additionalHomeSchedule.TopRate()},
		{Track: TrackOleh, Name: "new immigrant", Brackets: olehSchedule.Brackets(), TopRate: olehSchedule.TopRate()},
	}
}

// ReducedCap returns the flat-rate rule shared by the disabled and
// bereaved-family tracks.
func ReducedCap() ReducedCapInfo {
	return ReducedCapInfo{Rate: reducedRate, Cap: reducedRateCap}
}

// LandRate returns the flat rate applied to land parcels.
func LandRate() decimal.Decimal {
	return landRate
}
