// Package weather maps calendar dates to the region's fixed season bands
// and their temperature/humidity profiles. Everything here is pure and
// deterministic; there is no live weather integration.
package weather

import (
	"fmt"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// band holds a season's fixed climate profile.
type band struct {
	tempMin, tempMax         float64
	humidityMin, humidityMax float64
}

// Fixed calendar bands for the region:
// Winter Nov-Feb, Summer Mar-Jun, Monsoon Jul-Sep, Post-Monsoon Oct.
var bands = map[types.Season]band{
	types.SeasonWinter:      {tempMin: 15, tempMax: 28, humidityMin: 40, humidityMax: 60},
	types.SeasonSummer:      {tempMin: 30, tempMax: 42, humidityMin: 50, humidityMax: 70},
	types.SeasonMonsoon:     {tempMin: 26, tempMax: 34, humidityMin: 75, humidityMax: 95},
	types.SeasonPostMonsoon: {tempMin: 24, tempMax: 32, humidityMin: 60, humidityMax: 80},
}

// SeasonFor returns the season band covering t's calendar month.
func SeasonFor(t time.Time) types.Season {
	switch t.Month() {
	case time.November, time.December, time.January, time.February:
		return types.SeasonWinter
	case time.March, time.April, time.May, time.June:
		return types.SeasonSummer
	case time.July, time.August, time.September:
		return types.SeasonMonsoon
	default: // October
		return types.SeasonPostMonsoon
	}
}

// Snapshot returns the fixed weather profile for one calendar day.
func Snapshot(date time.Time) types.WeatherSnapshot {
	season := SeasonFor(date)
	b := bands[season]
	return types.WeatherSnapshot{
		Season:      season,
		TempMinC:    b.tempMin,
		TempMaxC:    b.tempMax,
		HumidityMin: b.humidityMin,
		HumidityMax: b.humidityMax,
		Summary: fmt.Sprintf("%s: %.0f-%.0f°C, %.0f-%.0f%% humidity",
			season, b.tempMin, b.tempMax, b.humidityMin, b.humidityMax),
	}
}

// DefaultSnapshot is the snapshot used when the start date is unknown:
// the season stays visible as Winter (the region's peak travel season)
// but callers should rely on TripContext.SeasonKnown before trusting it.
func DefaultSnapshot() types.WeatherSnapshot {
	return Snapshot(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
}

// Dominant returns the season covering the majority of the trip's days.
// When two seasons tie, the one the trip starts in wins.
func Dominant(start time.Time, duration int) types.Season {
	if duration < 1 {
		duration = 1
	}
	counts := make(map[types.Season]int, 2)
	for i := 0; i < duration; i++ {
		counts[SeasonFor(start.AddDate(0, 0, i))]++
	}

	best := SeasonFor(start)
	bestCount := counts[best]
	// iterate in date order so ties resolve to the earlier-starting season
	seen := map[types.Season]bool{best: true}
	for i := 1; i < duration; i++ {
		s := SeasonFor(start.AddDate(0, 0, i))
		if seen[s] {
			continue
		}
		seen[s] = true
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}
