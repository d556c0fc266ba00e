package places

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func getPlaceRecommendationPrompt(req *types.TripRequest, tripCtx types.TripContext) string {
	return fmt.Sprintf(`
        Suggest between 3 and 6 of the best places to visit in Odisha, India for this trip:
        - vibes: %s
        - trip types: %s
        - pace: %s
        - season: %s
        - group size: %d (seniors: %d, children: %d)
        - duration: %d days
        - budget: %.0f INR total
        - preferences: %s
        Return ONLY the place names as a single comma-separated line, nothing else.
        Example: Puri, Konark, Chilika`,
		strings.Join(req.Vibes, ", "),
		strings.Join(tripCtx.TripTypes, ", "),
		tripCtx.Pace,
		tripCtx.Season,
		req.GroupSize, req.Seniors, req.ChildCount(),
		req.Duration,
		req.Budget,
		req.Preferences,
	)
}

// parsePlaceList splits an LLM answer expected to be a comma-separated
// line of names. Anything that parses to zero names counts as a malformed
// response.
func parsePlaceList(answer string) []string {
	answer = strings.TrimSpace(answer)
	// tolerate a fenced or multi-line answer by taking the last non-empty line
	lines := strings.Split(answer, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.Trim(strings.TrimSpace(lines[i]), "`")
		if line == "" {
			continue
		}
		var names []string
		for _, p := range strings.Split(line, ",") {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return nil
}
