package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/weather"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// confidence weights and per-tier scores
const (
	selectionWeight  = 0.4
	enrichmentWeight = 0.4
	stageWeight      = 0.2

	tierScoreExternal  = 1.0
	tierScoreCatalog   = 0.8
	tierScoreSynthetic = 0.3
)

// AssembleInput carries everything the assembler needs from the earlier
// pipeline stages.
type AssembleInput struct {
	Request        *types.TripRequest
	Context        types.TripContext
	Selection      places.Selection
	Records        []types.PlaceRecord
	Cost           types.CostBreakdown
	Start          time.Time
	StartKnown     bool
	StageFallbacks int
}

// Assemble distributes the selected places across the trip's days by list
// order and attaches weather, costs and tips to each day. It is pure: no
// external calls, no failure mode.
func Assemble(in AssembleInput) *types.ItineraryResult {
	duration := in.Request.Duration
	if duration < 1 {
		duration = 1
	}

	provenanceCounts := map[string]int{}
	for _, rec := range in.Records {
		provenanceCounts[string(rec.Provenance)]++
	}

	days := make([]types.DayPlan, 0, duration)
	chunks := chunkByDay(len(in.Records), duration)
	idx := 0
	for day := 1; day <= duration; day++ {
		dests := in.Records[idx : idx+chunks[day-1]]
		idx += chunks[day-1]

		var snapshot types.WeatherSnapshot
		date := ""
		if in.StartKnown {
			d := in.Start.AddDate(0, 0, day-1)
			snapshot = weather.Snapshot(d)
			date = d.Format("2006-01-02")
		} else {
			snapshot = weather.DefaultSnapshot()
		}

		days = append(days, types.DayPlan{
			Day:          day,
			Date:         date,
			Destinations: dests,
			Weather:      snapshot,
			Cost:         dayCost(in.Cost, dests),
			Tips:         tipsFor(in.Context, snapshot.Season),
		})
	}

	return &types.ItineraryResult{
		PlanID: uuid.New(),
		Summary: types.TripSummary{
			Season:           in.Context.Season,
			TripTypes:        in.Context.TripTypes,
			Pace:             in.Context.Pace,
			TotalBudget:      in.Request.Budget,
			PerDayPerPerson:  in.Cost.Total,
			PlaceCount:       len(in.Records),
			ProvenanceCounts: provenanceCounts,
		},
		Days:       days,
		Confidence: confidence(in.Selection.Source, in.Records, in.StageFallbacks),
	}
}

// chunkByDay splits n places over the days greedily by list order: every
// day gets n/duration places, the earliest days absorb the remainder. Days
// past the last place stay empty rather than repeating destinations.
func chunkByDay(n, duration int) []int {
	chunks := make([]int, duration)
	base, extra := n/duration, n%duration
	for i := range chunks {
		chunks[i] = base
		if i < extra {
			chunks[i]++
		}
	}
	return chunks
}

// dayCost applies the day-specific activities override: when any of the
// day's destinations carries a known entry fee, activities become the sum
// of those fees and the total shifts with them. Unknown fees are left
// alone rather than guessed.
func dayCost(base types.CostBreakdown, dests []types.PlaceRecord) types.CostBreakdown {
	feeSum := 0.0
	known := false
	for _, d := range dests {
		if d.EntryFee != nil {
			feeSum += *d.EntryFee
			known = true
		}
	}
	if !known {
		return base
	}
	out := base
	out.Activities = feeSum
	out.Total = out.Stay + out.Food + out.Travel + out.Activities + out.Misc
	return out
}

// Tip rules fire in fixed order; every applicable rule contributes and
// none suppresses another.
func tipsFor(tripCtx types.TripContext, season types.Season) []string {
	var tips []string
	if tripCtx.HasTripType("family") {
		tips = append(tips, "Plan regular breaks between sights so the whole family keeps up.")
	}
	if tripCtx.AccessibilityNeeds {
		tips = append(tips, "Verify step-free paths and facilities with venues before visiting.")
	}
	if season == types.SeasonSummer {
		tips = append(tips, "Carry water and keep the midday hours for shaded or indoor stops.")
	}
	if season == types.SeasonMonsoon {
		tips = append(tips, "Pack rain gear; coastal roads can be slow after heavy showers.")
	}
	if tripCtx.HasTripType("budget") {
		tips = append(tips, "Shared local transport stretches the daily budget furthest.")
	}
	if tripCtx.Pace == types.PaceSlow {
		tips = append(tips, "Keep one unhurried anchor sight per day and leave the rest flexible.")
	}
	return tips
}

// confidence reflects how much of the pipeline ran on primary paths:
// selection source, enrichment tiers, and whether any stage boundary had
// to substitute a fallback.
func confidence(source places.SelectionSource, records []types.PlaceRecord, stageFallbacks int) float64 {
	selectScore := 0.0
	if source == places.SourceUser || source == places.SourceAI {
		selectScore = 1.0
	}

	enrichScore := 0.0
	if len(records) > 0 {
		sum := 0.0
		for _, rec := range records {
			switch rec.Provenance {
			case types.ProvenanceExternal:
				sum += tierScoreExternal
			case types.ProvenanceCatalog:
				sum += tierScoreCatalog
			default:
				sum += tierScoreSynthetic
			}
		}
		enrichScore = sum / float64(len(records))
	}

	stageScore := 1.0
	if stageFallbacks > 0 || source == places.SourceFallback {
		stageScore = 0.0
	}

	c := selectionWeight*selectScore + enrichmentWeight*enrichScore + stageWeight*stageScore
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return c
}
