package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripRequest is the structured trip form the boundary layer hands to the
// workflow engine. Upstream extraction (voice/NLU) is expected to have
// produced it already; the engine does not re-derive any field.
type TripRequest struct {
	GroupSize      int      `json:"group_size"`
	Seniors        int      `json:"seniors"`
	Children       *int     `json:"children"`   // nullable, upstream may not know
	Duration       int      `json:"duration"`   // days
	StartDate      string   `json:"start_date"` // ISO date, e.g. 2025-02-14
	Budget         float64  `json:"budget"`     // total, INR
	Vibes          []string `json:"vibes"`
	SpecificPlaces string   `json:"specific_places,omitempty"` // comma-separated, original form shape
	Preferences    string   `json:"preferences,omitempty"`
}

// ChildCount returns the children field with absence treated as zero.
func (r *TripRequest) ChildCount() int {
	if r.Children == nil {
		return 0
	}
	return *r.Children
}

// Start parses the start date. A zero time plus false means the date was
// absent or malformed; callers must treat it as unknown, not as "today".
func (r *TripRequest) Start() (time.Time, bool) {
	if r.StartDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PlaceList splits the comma-separated specific_places field into trimmed,
// non-empty names, preserving order.
func (r *TripRequest) PlaceList() []string {
	if strings.TrimSpace(r.SpecificPlaces) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(r.SpecificPlaces, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Pace describes how packed the day plans should be.
type Pace string

const (
	PaceSlow        Pace = "slow"
	PaceModerate    Pace = "moderate"
	PaceAdventurous Pace = "adventurous"
)

// TripContext is derived once per request and read-only downstream.
type TripContext struct {
	Season              Season   `json:"season"`
	SeasonKnown         bool     `json:"season_known"` // false when start_date was absent/unparseable
	TripTypes           []string `json:"trip_types"`
	AccessibilityNeeds  bool     `json:"accessibility_needs"`
	AccessibilityDetail string   `json:"accessibility_detail,omitempty"`
	Pace                Pace     `json:"pace"`
	PerDayPerPerson     float64  `json:"per_day_per_person"`
}

// HasTripType reports whether the derived tag set contains t.
func (c *TripContext) HasTripType(t string) bool {
	for _, tt := range c.TripTypes {
		if tt == t {
			return true
		}
	}
	return false
}

// Season is a fixed calendar band for the region.
type Season string

const (
	SeasonWinter      Season = "Winter"
	SeasonSummer      Season = "Summer"
	SeasonMonsoon     Season = "Monsoon"
	SeasonPostMonsoon Season = "Post-Monsoon"
)

// Provenance records which resolution tier produced a PlaceRecord.
type Provenance string

const (
	ProvenanceExternal  Provenance = "external"
	ProvenanceCatalog   Provenance = "catalog"
	ProvenanceSynthetic Provenance = "synthetic"
)

// PlaceRecord is one resolved destination. EntryFee and StayCost are nil
// when the producing tier genuinely did not know them; nil must flow through
// as unknown rather than being replaced by a plausible-looking number.
type PlaceRecord struct {
	PlaceName   string     `json:"place_name"`
	Description string     `json:"description"`
	District    string     `json:"district,omitempty"`
	City        string     `json:"city,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	EntryFee    *float64   `json:"entry_fee"`
	StayCost    *float64   `json:"stay_cost"`
	Provenance  Provenance `json:"provenance"`
}

// WeatherSnapshot is the deterministic season-band weather for one day.
type WeatherSnapshot struct {
	Season      Season  `json:"season"`
	TempMinC    float64 `json:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c"`
	HumidityMin float64 `json:"humidity_min_pct"`
	HumidityMax float64 `json:"humidity_max_pct"`
	Summary     string  `json:"summary"`
}

// CostBreakdown is the per-day-per-person allocation across categories.
// Shares sum to Total within rounding tolerance.
type CostBreakdown struct {
	Stay       float64 `json:"stay"`
	Food       float64 `json:"food"`
	Travel     float64 `json:"travel"`
	Activities float64 `json:"activities"`
	Misc       float64 `json:"misc"`
	Total      float64 `json:"total_per_day_per_person"`
}

// DayPlan is one day of the assembled itinerary. Destinations keep
// selection order; no geographic optimization happens here.
type DayPlan struct {
	Day          int             `json:"day"`
	Date         string          `json:"date,omitempty"` // empty when start_date was unknown
	Destinations []PlaceRecord   `json:"destinations"`
	Weather      WeatherSnapshot `json:"weather"`
	Cost         CostBreakdown   `json:"cost"`
	Tips         []string        `json:"tips"`
}

// TripSummary aggregates the plan-level context and totals.
type TripSummary struct {
	Season           Season         `json:"season"`
	TripTypes        []string       `json:"trip_types"`
	Pace             Pace           `json:"pace"`
	TotalBudget      float64        `json:"total_budget"`
	PerDayPerPerson  float64        `json:"per_day_per_person"`
	PlaceCount       int            `json:"place_count"`
	ProvenanceCounts map[string]int `json:"provenance_counts"`
}

// ItineraryResult is the single response shape of the workflow engine.
// It is always well-formed; degradation shows up only in Confidence and
// in the provenance tags of the day plans.
type ItineraryResult struct {
	PlanID     uuid.UUID   `json:"plan_id"`
	Summary    TripSummary `json:"trip_summary"`
	Days       []DayPlan   `json:"days"`
	Confidence float64     `json:"confidence"`
}
