package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func fee(v float64) *float64 { return &v }

func catalogRecord(name string, entryFee float64) types.PlaceRecord {
	return types.PlaceRecord{
		PlaceName:  name,
		Latitude:   20.0,
		Longitude:  85.0,
		EntryFee:   fee(entryFee),
		StayCost:   fee(1500),
		Provenance: types.ProvenanceCatalog,
	}
}

func TestChunkByDay(t *testing.T) {
	assert.Equal(t, []int{2, 2, 1}, chunkByDay(5, 3))
	assert.Equal(t, []int{1, 1, 1}, chunkByDay(3, 3))
	assert.Equal(t, []int{1, 1, 0}, chunkByDay(2, 3))
	assert.Equal(t, []int{4}, chunkByDay(4, 1))
	assert.Equal(t, []int{0, 0}, chunkByDay(0, 2))
}

func TestAssemble_ProducesDurationDays(t *testing.T) {
	req := &types.TripRequest{GroupSize: 4, Duration: 3, Budget: 15000, StartDate: "2025-02-14"}
	start, _ := req.Start()
	result := Assemble(AssembleInput{
		Request:    req,
		Context:    types.TripContext{Season: types.SeasonWinter, SeasonKnown: true, Pace: types.PaceModerate},
		Selection:  places.Selection{Places: []string{"Puri", "Konark"}, Source: places.SourceUser},
		Records:    []types.PlaceRecord{catalogRecord("Puri", 0), catalogRecord("Konark", 40)},
		Cost:       types.CostBreakdown{Stay: 500, Food: 312.5, Travel: 187.5, Activities: 150, Misc: 100, Total: 1250},
		Start:      start,
		StartKnown: true,
	})

	require.Len(t, result.Days, 3)
	for i, day := range result.Days {
		assert.Equal(t, i+1, day.Day)
	}
	// places distributed by list order, tail day left free
	assert.Equal(t, "Puri", result.Days[0].Destinations[0].PlaceName)
	assert.Equal(t, "Konark", result.Days[1].Destinations[0].PlaceName)
	assert.Empty(t, result.Days[2].Destinations)
	assert.Equal(t, "2025-02-14", result.Days[0].Date)
	assert.Equal(t, "2025-02-16", result.Days[2].Date)
}

func TestAssemble_ActivitiesOverriddenBySummedEntryFees(t *testing.T) {
	req := &types.TripRequest{GroupSize: 2, Duration: 1, Budget: 4000, StartDate: "2025-01-10"}
	start, _ := req.Start()
	base := types.CostBreakdown{Stay: 800, Food: 500, Travel: 300, Activities: 240, Misc: 160, Total: 2000}
	result := Assemble(AssembleInput{
		Request:    req,
		Context:    types.TripContext{Season: types.SeasonWinter, SeasonKnown: true},
		Selection:  places.Selection{Places: []string{"Konark", "Udayagiri"}, Source: places.SourceUser},
		Records:    []types.PlaceRecord{catalogRecord("Konark", 40), catalogRecord("Udayagiri", 25)},
		Cost:       base,
		Start:      start,
		StartKnown: true,
	})

	day := result.Days[0]
	assert.Equal(t, 65.0, day.Cost.Activities)
	assert.InDelta(t, day.Cost.Stay+day.Cost.Food+day.Cost.Travel+day.Cost.Activities+day.Cost.Misc, day.Cost.Total, 0.01)
}

func TestAssemble_UnknownFeesLeaveCostUntouched(t *testing.T) {
	req := &types.TripRequest{GroupSize: 2, Duration: 1, Budget: 4000, StartDate: "2025-01-10"}
	start, _ := req.Start()
	base := types.CostBreakdown{Stay: 800, Food: 500, Travel: 300, Activities: 240, Misc: 160, Total: 2000}
	rec := types.PlaceRecord{PlaceName: "Mystery", Provenance: types.ProvenanceExternal} // no fee metadata
	result := Assemble(AssembleInput{
		Request:    req,
		Context:    types.TripContext{Season: types.SeasonWinter, SeasonKnown: true},
		Selection:  places.Selection{Places: []string{"Mystery"}, Source: places.SourceUser},
		Records:    []types.PlaceRecord{rec},
		Cost:       base,
		Start:      start,
		StartKnown: true,
	})

	assert.Equal(t, base, result.Days[0].Cost)
}

func TestAssemble_PerDayWeatherFollowsEachDate(t *testing.T) {
	req := &types.TripRequest{GroupSize: 2, Duration: 4, Budget: 20000, StartDate: "2025-09-29"}
	start, _ := req.Start()
	result := Assemble(AssembleInput{
		Request:    req,
		Context:    types.TripContext{Season: types.SeasonMonsoon, SeasonKnown: true},
		Selection:  places.Selection{Places: []string{"Puri"}, Source: places.SourceUser},
		Records:    []types.PlaceRecord{catalogRecord("Puri", 0)},
		Cost:       types.CostBreakdown{Total: 2500},
		Start:      start,
		StartKnown: true,
	})

	assert.Equal(t, types.SeasonMonsoon, result.Days[0].Weather.Season)     // Sep 29
	assert.Equal(t, types.SeasonMonsoon, result.Days[1].Weather.Season)     // Sep 30
	assert.Equal(t, types.SeasonPostMonsoon, result.Days[2].Weather.Season) // Oct 1
	assert.Equal(t, types.SeasonPostMonsoon, result.Days[3].Weather.Season) // Oct 2
}

func TestTipsFor_AllApplicableRulesFire(t *testing.T) {
	ctx := types.TripContext{
		TripTypes:          []string{"family", "budget"},
		AccessibilityNeeds: true,
		Pace:               types.PaceSlow,
	}
	tips := tipsFor(ctx, types.SeasonSummer)
	require.GreaterOrEqual(t, len(tips), 4)
	joined := ""
	for _, tip := range tips {
		joined += tip + " "
	}
	assert.Contains(t, joined, "family")
	assert.Contains(t, joined, "step-free")
	assert.Contains(t, joined, "water")
	assert.Contains(t, joined, "budget")
}

func TestConfidence(t *testing.T) {
	catalog := []types.PlaceRecord{catalogRecord("Puri", 0), catalogRecord("Konark", 40)}
	external := []types.PlaceRecord{{Provenance: types.ProvenanceExternal}}
	synthetic := []types.PlaceRecord{{Provenance: types.ProvenanceSynthetic}}

	// user list resolved from the catalog, nothing fell back
	assert.InDelta(t, 0.92, confidence(places.SourceUser, catalog, 0), 0.001)
	// fully primary path
	assert.InDelta(t, 1.0, confidence(places.SourceAI, external, 0), 0.001)
	// everything degraded
	assert.LessOrEqual(t, confidence(places.SourceFallback, synthetic, 1), 0.5)
	// bounds hold for the empty case
	c := confidence(places.SourceFallback, nil, 3)
	assert.GreaterOrEqual(t, c, 0.0)
	assert.LessOrEqual(t, c, 1.0)
}

func TestAssemble_NoStartDateUsesDefaultSnapshot(t *testing.T) {
	req := &types.TripRequest{GroupSize: 2, Duration: 2, Budget: 10000}
	result := Assemble(AssembleInput{
		Request:    req,
		Context:    types.TripContext{Season: types.SeasonWinter, SeasonKnown: false},
		Selection:  places.Selection{Places: []string{"Puri"}, Source: places.SourceUser},
		Records:    []types.PlaceRecord{catalogRecord("Puri", 0)},
		Cost:       types.CostBreakdown{Total: 2500},
		Start:      time.Time{},
		StartKnown: false,
	})

	require.Len(t, result.Days, 2)
	assert.Empty(t, result.Days[0].Date)
	assert.NotEmpty(t, result.Days[0].Weather.Summary)
}
