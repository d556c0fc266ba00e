package places

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/semaphore"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/retry"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Synthetic coordinates stay inside this bounding box for the region.
const (
	regionLatMin, regionLatMax = 17.8, 22.6
	regionLngMin, regionLngMax = 81.4, 87.5
	regionBaseLat              = 20.2961 // state capital as the base point
	regionBaseLng              = 85.8245
	regionName                 = "Odisha"
)

const maxConcurrentResolutions = 4

// Resolver turns place names into PlaceRecords through an ordered strategy
// chain: external search, static catalog, synthetic generation. The last
// tier always succeeds, so resolution as a whole never fails.
type Resolver struct {
	logger      *slog.Logger
	search      SearchClient
	policy      *retry.Policy
	searchCache *cache.Cache
	sem         *semaphore.Weighted
}

func NewResolver(search SearchClient, policy *retry.Policy, logger *slog.Logger) *Resolver {
	return &Resolver{
		logger:      logger,
		search:      search,
		policy:      policy,
		searchCache: cache.New(24*time.Hour, 1*time.Hour),
		sem:         semaphore.NewWeighted(maxConcurrentResolutions),
	}
}

// Resolve runs the tier cascade for one name, short-circuiting on the
// first success.
func (r *Resolver) Resolve(ctx context.Context, name string) types.PlaceRecord {
	ctx, span := otel.Tracer("EnrichmentResolver").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("place.name", name))

	rec, ok := r.tryExternal(ctx, name)
	if !ok {
		rec, ok = lookupCatalog(name)
	}
	if !ok {
		rec = Synthetic(name)
	}
	span.SetAttributes(attribute.String("place.provenance", string(rec.Provenance)))
	metrics.Get().EnrichmentResolutionsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("tier", string(rec.Provenance))))
	return rec
}

// ResolveAll fans out per-place resolution; no place depends on another.
// Concurrency is bounded so a burst of places cannot flood the search
// service. Results keep input order.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) []types.PlaceRecord {
	ctx, span := otel.Tracer("EnrichmentResolver").Start(ctx, "ResolveAll")
	defer span.End()
	span.SetAttributes(attribute.Int("place.count", len(names)))

	records := make([]types.PlaceRecord, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			if err := r.sem.Acquire(ctx, 1); err != nil {
				// cancelled mid-request: still produce a usable record
				records[i] = Synthetic(name)
				return
			}
			defer r.sem.Release(1)
			records[i] = r.Resolve(ctx, name)
		}(i, name)
	}
	wg.Wait()
	return records
}

func (r *Resolver) tryExternal(ctx context.Context, name string) (types.PlaceRecord, bool) {
	if r.search == nil {
		return types.PlaceRecord{}, false
	}
	key := normalizeName(name)

	var match *SearchMatch
	if cached, found := r.searchCache.Get(key); found {
		match = cached.(*SearchMatch)
	} else {
		callStart := time.Now()
		err := r.policy.Execute(ctx, func(ctx context.Context) error {
			m, err := r.search.BestMatch(ctx, name)
			if err != nil {
				return err
			}
			match = m
			return nil
		})
		metrics.Get().ExternalCallDuration.Record(ctx, time.Since(callStart).Seconds(),
			metric.WithAttributes(attribute.String("target", "search")))
		if err != nil {
			r.logger.DebugContext(ctx, "external search tier failed, falling back",
				slog.String("place", name), slog.Any("error", err))
			return types.PlaceRecord{}, false
		}
		r.searchCache.Set(key, match, cache.DefaultExpiration)
	}

	displayName := match.Name
	if displayName == "" {
		displayName = name
	}
	return types.PlaceRecord{
		PlaceName:   displayName,
		Description: match.Description,
		District:    match.District,
		City:        match.City,
		Latitude:    match.Latitude,
		Longitude:   match.Longitude,
		EntryFee:    match.EntryFee,
		StayCost:    match.StayCost,
		Provenance:  types.ProvenanceExternal,
	}, true
}

// Synthetic builds a plausible record for a name nothing else knows.
// The offset is seeded by the name so repeated requests for the same
// unknown place land on the same spot.
func Synthetic(name string) types.PlaceRecord {
	h := fnv.New64a()
	h.Write([]byte(normalizeName(name)))
	seed := h.Sum64()

	unit := func(shift uint) float64 { // [0,1) slices of the hash
		return float64((seed>>shift)&0xffff) / 65536.0
	}

	lat := clamp(regionBaseLat+(unit(0)-0.5)*2.4, regionLatMin, regionLatMax)
	lng := clamp(regionBaseLng+(unit(16)-0.5)*3.0, regionLngMin, regionLngMax)
	entryFee := float64(int(unit(32) * 300))        // 0-300 INR
	stayCost := float64(800 + int(unit(48)*2200.0)) // 800-3000 INR

	return types.PlaceRecord{
		PlaceName: name,
		Description: fmt.Sprintf(
			"%s is a lesser-documented destination in %s. Local guidance is recommended for visits.",
			name, regionName),
		Latitude:   lat,
		Longitude:  lng,
		EntryFee:   &entryFee,
		StayCost:   &stayCost,
		Provenance: types.ProvenanceSynthetic,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
