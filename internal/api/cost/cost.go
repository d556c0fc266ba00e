// Package cost distributes a trip budget across spend categories,
// adjusted for group composition. The model is evaluated once per plan;
// day-specific overrides (entry fees) happen downstream at assembly.
package cost

import "github.com/FACorreiaa/go-trip-itinerary/internal/types"

// Base category shares in percent. They sum to 100 before adjustment.
const (
	baseStay       = 40.0
	baseFood       = 25.0
	baseTravel     = 15.0
	baseActivities = 12.0
	baseMisc       = 8.0

	// composition nudges
	seniorTravelCut = 5.0 // shorter-range plans when seniors travel
	childFoodCut    = 2.0 // per child, smaller portions
	foodFloor       = 10.0
	travelFloor     = 5.0
)

// Breakdown computes the per-day-per-person allocation. Shares are nudged
// for seniors/children and then renormalized proportionally so the
// categories always sum back to exactly 100% of the per-day-per-person
// amount.
func Breakdown(budget float64, duration, groupSize, seniors, children int) types.CostBreakdown {
	if duration < 1 {
		duration = 1
	}
	if groupSize < 1 {
		groupSize = 1
	}
	if budget < 0 {
		budget = 0
	}
	perDayPerPerson := budget / float64(duration*groupSize)

	stay, food, travel, activities, misc := baseStay, baseFood, baseTravel, baseActivities, baseMisc

	if seniors > 0 {
		travel -= seniorTravelCut
		if travel < travelFloor {
			travel = travelFloor
		}
	}
	if children > 0 {
		food -= childFoodCut * float64(children)
		if food < foodFloor {
			food = foodFloor
		}
	}

	sum := stay + food + travel + activities + misc
	scale := 100.0 / sum

	return types.CostBreakdown{
		Stay:       perDayPerPerson * stay * scale / 100,
		Food:       perDayPerPerson * food * scale / 100,
		Travel:     perDayPerPerson * travel * scale / 100,
		Activities: perDayPerPerson * activities * scale / 100,
		Misc:       perDayPerPerson * misc * scale / 100,
		Total:      perDayPerPerson,
	}
}
