package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  types.Season
	}{
		{time.January, types.SeasonWinter},
		{time.February, types.SeasonWinter},
		{time.March, types.SeasonSummer},
		{time.June, types.SeasonSummer},
		{time.July, types.SeasonMonsoon},
		{time.September, types.SeasonMonsoon},
		{time.October, types.SeasonPostMonsoon},
		{time.November, types.SeasonWinter},
		{time.December, types.SeasonWinter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonFor(day(2025, tt.month, 10)), "month %s", tt.month)
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	d := day(2025, time.July, 20)
	first := Snapshot(d)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Snapshot(d))
	}
	assert.Equal(t, types.SeasonMonsoon, first.Season)
	assert.Greater(t, first.HumidityMin, 70.0)
	assert.NotEmpty(t, first.Summary)
}

func TestDominant_MajorityWins(t *testing.T) {
	// July 30 + 5 days lands entirely in Monsoon, sanity check first
	assert.Equal(t, types.SeasonMonsoon, Dominant(day(2025, time.July, 30), 5))

	// Sep 28 + 6 days: 3 Monsoon (Sep 28-30), 3 Post-Monsoon (Oct 1-3);
	// the tie resolves to the season the trip starts in
	assert.Equal(t, types.SeasonMonsoon, Dominant(day(2025, time.September, 28), 6))

	// Sep 30 + 5 days: 1 Monsoon, 4 Post-Monsoon
	assert.Equal(t, types.SeasonPostMonsoon, Dominant(day(2025, time.September, 30), 5))
}

func TestDominant_JulyIntoAugustStaysMonsoon(t *testing.T) {
	assert.Equal(t, types.SeasonMonsoon, Dominant(day(2025, time.July, 29), 6))
	// per-day snapshots follow each date's own calendar month
	assert.Equal(t, types.SeasonMonsoon, Snapshot(day(2025, time.August, 2)).Season)
}

func TestDominant_ZeroDurationClamped(t *testing.T) {
	assert.Equal(t, types.SeasonWinter, Dominant(day(2025, time.December, 1), 0))
}
