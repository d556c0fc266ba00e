package places

import (
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func feeOf(v float64) *float64 { return &v }

// catalogEntry is one row of the static fallback catalog. The catalog is
// built once at init and never mutated afterwards.
type catalogEntry struct {
	name        string
	district    string
	city        string
	description string
	lat, lng    float64
	entryFee    float64
	stayCost    float64
}

// shortlistOrder is the order the default shortlist is served in when the
// recommendation call is unavailable.
var shortlistOrder = []string{
	"Puri", "Konark", "Chilika", "Bhubaneswar", "Gopalpur",
	"Udayagiri", "Dhauli", "Simlipal", "Bhitarkanika", "Cuttack",
}

var catalogEntries = []catalogEntry{
	{
		name: "Puri", district: "Puri", city: "Puri",
		description: "Coastal temple town, home of the Jagannath Temple and a long golden beach.",
		lat:         19.8135, lng: 85.8312, entryFee: 0, stayCost: 1500,
	},
	{
		name: "Konark", district: "Puri", city: "Konark",
		description: "Site of the 13th-century Sun Temple, a UNESCO World Heritage monument shaped as a stone chariot.",
		lat:         19.8876, lng: 86.0945, entryFee: 40, stayCost: 1200,
	},
	{
		name: "Chilika", district: "Khordha", city: "Satapada",
		description: "Asia's largest brackish water lagoon, known for Irrawaddy dolphins and migratory birds.",
		lat:         19.7160, lng: 85.3206, entryFee: 50, stayCost: 1400,
	},
	{
		name: "Bhubaneswar", district: "Khordha", city: "Bhubaneswar",
		description: "The temple city, with the Lingaraj Temple, cave complexes and the state museum.",
		lat:         20.2961, lng: 85.8245, entryFee: 20, stayCost: 1800,
	},
	{
		name: "Gopalpur", district: "Ganjam", city: "Gopalpur-on-Sea",
		description: "Quiet beach town with a lighthouse and the remains of an old trading port.",
		lat:         19.2646, lng: 84.9080, entryFee: 0, stayCost: 1600,
	},
	{
		name: "Udayagiri", district: "Khordha", city: "Bhubaneswar",
		description: "Rock-cut Jain caves of Udayagiri and Khandagiri dating to the 1st century BCE.",
		lat:         20.2628, lng: 85.7858, entryFee: 25, stayCost: 1800,
	},
	{
		name: "Dhauli", district: "Khordha", city: "Bhubaneswar",
		description: "Hill with the Shanti Stupa peace pagoda overlooking the Daya river, linked to the Kalinga war.",
		lat:         20.1928, lng: 85.8399, entryFee: 0, stayCost: 1800,
	},
	{
		name: "Simlipal", district: "Mayurbhanj", city: "Baripada",
		description: "National park and tiger reserve with sal forests and the Barehipani and Joranda waterfalls.",
		lat:         21.7500, lng: 86.3300, entryFee: 100, stayCost: 2200,
	},
	{
		name: "Bhitarkanika", district: "Kendrapara", city: "Rajnagar",
		description: "Mangrove wetland sanctuary known for saltwater crocodiles and nesting olive ridley turtles.",
		lat:         20.7400, lng: 86.8700, entryFee: 60, stayCost: 2000,
	},
	{
		name: "Cuttack", district: "Cuttack", city: "Cuttack",
		description: "The old capital on the Mahanadi, known for silver filigree work and the Barabati fort.",
		lat:         20.4625, lng: 85.8830, entryFee: 0, stayCost: 1500,
	},
}

// common spellings that should land on a catalog row
var catalogAliases = map[string]string{
	"chilika lake":      "chilika",
	"konark sun temple": "konark",
	"sun temple":        "konark",
	"jagannath temple":  "puri",
	"lingaraj temple":   "bhubaneswar",
	"khandagiri":        "udayagiri",
	"gopalpur-on-sea":   "gopalpur",
	"simlipal national park": "simlipal",
}

var catalogByName = func() map[string]catalogEntry {
	m := make(map[string]catalogEntry, len(catalogEntries))
	for _, e := range catalogEntries {
		m[normalizeName(e.name)] = e
	}
	return m
}()

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// lookupCatalog returns the catalog record for name, trying the alias table
// after a direct hit fails.
func lookupCatalog(name string) (types.PlaceRecord, bool) {
	key := normalizeName(name)
	e, ok := catalogByName[key]
	if !ok {
		if alias, found := catalogAliases[key]; found {
			e, ok = catalogByName[alias]
		}
	}
	if !ok {
		return types.PlaceRecord{}, false
	}
	return types.PlaceRecord{
		PlaceName:   e.name,
		Description: e.description,
		District:    e.district,
		City:        e.city,
		Latitude:    e.lat,
		Longitude:   e.lng,
		EntryFee:    feeOf(e.entryFee),
		StayCost:    feeOf(e.stayCost),
		Provenance:  types.ProvenanceCatalog,
	}, true
}

// Catalog returns every static catalog row as a PlaceRecord, in shortlist
// order. Used by the index seeding script.
func Catalog() []types.PlaceRecord {
	out := make([]types.PlaceRecord, 0, len(shortlistOrder))
	for _, name := range shortlistOrder {
		if rec, ok := lookupCatalog(name); ok {
			out = append(out, rec)
		}
	}
	return out
}

// DefaultShortlist sizes the fixed fallback list to roughly 1.5 places per
// day, never fewer than one and never more than the catalog holds.
func DefaultShortlist(duration int) []string {
	if duration < 1 {
		duration = 1
	}
	n := duration + duration/2
	if n < 1 {
		n = 1
	}
	if n > len(shortlistOrder) {
		n = len(shortlistOrder)
	}
	out := make([]string, n)
	copy(out, shortlistOrder[:n])
	return out
}
