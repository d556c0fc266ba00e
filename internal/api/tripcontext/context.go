// Package tripcontext derives trip-level semantic context (trip types,
// accessibility, pace) from the raw request. Purely rule based, fixed rule
// order: trip-type tags first, then accessibility, then pace. Family and
// accessibility outcomes take precedence over vibe-driven pace.
package tripcontext

import (
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	// per-day-per-person amount (INR) below which the trip is tagged "budget"
	budgetThreshold = 1200.0
	// seniors at or above this fraction of the group imply accessibility needs
	seniorHeavyFraction = 0.5
)

var accessibilityKeywords = []string{
	"wheelchair", "mobility", "accessible", "walking difficulty",
	"dietary", "diet", "veg", "vegetarian", "vegan",
}

var vibeTags = map[string]string{
	"spiritual": "spiritual",
	"temple":    "spiritual",
	"nature":    "nature",
	"wildlife":  "nature",
	"beach":     "beach",
	"heritage":  "heritage",
	"culture":   "heritage",
	"adventure": "adventure",
}

// Extract builds the immutable TripContext for one request. season and
// seasonKnown come from the weather model; when the start date was absent
// the season still flows through but stays flagged unknown.
func Extract(req *types.TripRequest, season types.Season, seasonKnown bool) types.TripContext {
	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}
	seniors := req.Seniors
	if seniors < 0 {
		seniors = 0
	}
	children := req.ChildCount()
	if children < 0 {
		children = 0
	}
	// tolerated input anomaly: composition larger than the group is clamped
	if seniors+children > groupSize {
		if seniors > groupSize {
			seniors = groupSize
		}
		children = groupSize - seniors
	}

	duration := req.Duration
	if duration < 1 {
		duration = 1
	}
	perDayPerPerson := 0.0
	if req.Budget > 0 {
		perDayPerPerson = req.Budget / float64(duration*groupSize)
	}

	ctx := types.TripContext{
		Season:          season,
		SeasonKnown:     seasonKnown,
		PerDayPerPerson: perDayPerPerson,
	}

	// 1. trip-type tags (multiple may co-occur)
	if children > 0 || seniors > 0 {
		ctx.TripTypes = append(ctx.TripTypes, "family")
	}
	if perDayPerPerson > 0 && perDayPerPerson < budgetThreshold {
		ctx.TripTypes = append(ctx.TripTypes, "budget")
	}
	seen := map[string]bool{}
	for _, vibe := range req.Vibes {
		if tag, ok := vibeTags[strings.ToLower(strings.TrimSpace(vibe))]; ok && !seen[tag] {
			seen[tag] = true
			ctx.TripTypes = append(ctx.TripTypes, tag)
		}
	}

	// 2. accessibility
	prefs := strings.ToLower(req.Preferences)
	for _, kw := range accessibilityKeywords {
		if strings.Contains(prefs, kw) {
			ctx.AccessibilityNeeds = true
			ctx.AccessibilityDetail = "preferences mention: " + kw
			break
		}
	}
	seniorHeavy := float64(seniors) >= seniorHeavyFraction*float64(groupSize)
	if !ctx.AccessibilityNeeds && seniors > 0 && seniorHeavy {
		ctx.AccessibilityNeeds = true
		ctx.AccessibilityDetail = "senior-heavy group"
	}

	// 3. pace; family/accessibility rules outrank vibe-based adventure
	switch {
	case ctx.HasTripType("family"), ctx.AccessibilityNeeds:
		ctx.Pace = types.PaceSlow
	case (seen["nature"] || seen["adventure"]) && !ctx.AccessibilityNeeds:
		ctx.Pace = types.PaceAdventurous
	default:
		ctx.Pace = types.PaceModerate
	}

	return ctx
}

// Default is the stage fallback the workflow engine substitutes if
// extraction ever faults: a moderate, unknown-season context.
func Default() types.TripContext {
	return types.TripContext{
		Season:      types.SeasonWinter,
		SeasonKnown: false,
		Pace:        types.PaceModerate,
	}
}
