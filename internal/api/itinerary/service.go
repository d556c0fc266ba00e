// Package itinerary hosts the workflow engine: a fixed directed pipeline
// that turns a trip request into a day-by-day itinerary. Every stage is
// wrapped in an error boundary so the engine always returns a complete,
// well-formed result; failures degrade confidence, never availability.
package itinerary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cost"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/tripcontext"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/weather"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the contract of the itinerary workflow engine.
type Service interface {
	Plan(ctx context.Context, req *types.TripRequest) *types.ItineraryResult
}

// PlaceSelector decides the destination list for a request.
type PlaceSelector interface {
	Select(ctx context.Context, req *types.TripRequest, tripCtx types.TripContext) places.Selection
}

// PlaceResolver enriches selected place names, never failing.
type PlaceResolver interface {
	ResolveAll(ctx context.Context, names []string) []types.PlaceRecord
}

type ServiceImpl struct {
	logger   *slog.Logger
	selector PlaceSelector
	resolver PlaceResolver
}

func NewServiceImpl(selector PlaceSelector, resolver PlaceResolver, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		selector: selector,
		resolver: resolver,
	}
}

// Plan executes the fixed stage order: context extraction, place
// selection, per-place enrichment, weather/cost, assembly. It never
// returns an error; each stage that faults is replaced by its documented
// default and counted against the result's confidence.
func (s *ServiceImpl) Plan(ctx context.Context, req *types.TripRequest) *types.ItineraryResult {
	ctx, span := otel.Tracer("WorkflowEngine").Start(ctx, "Plan")
	defer span.End()

	fallbacks := 0

	start, startKnown := req.Start()
	season := types.SeasonWinter
	if startKnown {
		season = weather.Dominant(start, req.Duration)
	}

	tripCtx, fellBack := guardStage(ctx, s.logger, "context_extraction",
		func() types.TripContext { return tripcontext.Extract(req, season, startKnown) },
		tripcontext.Default,
	)
	if fellBack {
		fallbacks++
	}

	selection, fellBack := guardStage(ctx, s.logger, "place_selection",
		func() places.Selection {
			if ctx.Err() != nil {
				// caller gone: skip the external call, serve the shortlist
				return places.Selection{Places: places.DefaultShortlist(req.Duration), Source: places.SourceFallback}
			}
			return s.selector.Select(ctx, req, tripCtx)
		},
		func() places.Selection {
			return places.Selection{Places: places.DefaultShortlist(req.Duration), Source: places.SourceFallback}
		},
	)
	if fellBack {
		fallbacks++
	}

	records, fellBack := guardStage(ctx, s.logger, "enrichment",
		func() []types.PlaceRecord { return s.resolver.ResolveAll(ctx, selection.Places) },
		func() []types.PlaceRecord {
			out := make([]types.PlaceRecord, len(selection.Places))
			for i, name := range selection.Places {
				out[i] = places.Synthetic(name)
			}
			return out
		},
	)
	if fellBack {
		fallbacks++
	}

	breakdown, fellBack := guardStage(ctx, s.logger, "cost_model",
		func() types.CostBreakdown {
			return cost.Breakdown(req.Budget, req.Duration, req.GroupSize, req.Seniors, req.ChildCount())
		},
		func() types.CostBreakdown { return types.CostBreakdown{} },
	)
	if fellBack {
		fallbacks++
	}

	in := AssembleInput{
		Request:        req,
		Context:        tripCtx,
		Selection:      selection,
		Records:        records,
		Cost:           breakdown,
		Start:          start,
		StartKnown:     startKnown,
		StageFallbacks: fallbacks,
	}
	result, fellBack := guardStage(ctx, s.logger, "assembly",
		func() *types.ItineraryResult { return Assemble(in) },
		func() *types.ItineraryResult { return minimalResult(req, tripCtx, breakdown) },
	)
	if fellBack {
		result.Confidence = 0
	}

	span.SetAttributes(
		attribute.Float64("plan.confidence", result.Confidence),
		attribute.Int("plan.days", len(result.Days)),
		attribute.Int("plan.stage_fallbacks", fallbacks),
	)
	s.logger.InfoContext(ctx, "itinerary planned",
		slog.Int("days", len(result.Days)),
		slog.Int("places", result.Summary.PlaceCount),
		slog.Float64("confidence", result.Confidence),
		slog.Int("stage_fallbacks", fallbacks),
	)
	return result
}

// guardStage is the per-stage error boundary: a panicking stage is logged
// with its identity and replaced by its documented fallback so downstream
// stages always receive well-formed input.
func guardStage[T any](ctx context.Context, logger *slog.Logger, stage string, run func() T, fallback func() T) (out T, fellBack bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "pipeline stage faulted, substituting default",
				slog.String("stage", stage), slog.Any("panic", r))
			metrics.Get().StageFallbacksTotal.Add(ctx, 1,
				metric.WithAttributes(attribute.String("stage", stage)))
			out = fallback()
			fellBack = true
		}
	}()
	out = run()
	return out, fellBack
}

// minimalResult is the assembly-stage fallback: the right number of empty
// day plans, so the response shape holds even if assembly itself faults.
func minimalResult(req *types.TripRequest, tripCtx types.TripContext, breakdown types.CostBreakdown) *types.ItineraryResult {
	duration := req.Duration
	if duration < 1 {
		duration = 1
	}
	days := make([]types.DayPlan, duration)
	for i := range days {
		days[i] = types.DayPlan{
			Day:          i + 1,
			Destinations: []types.PlaceRecord{},
			Weather:      weather.DefaultSnapshot(),
			Cost:         breakdown,
			Tips:         []string{},
		}
	}
	return &types.ItineraryResult{
		PlanID: uuid.New(),
		Summary: types.TripSummary{
			Season:           tripCtx.Season,
			TripTypes:        tripCtx.TripTypes,
			Pace:             tripCtx.Pace,
			TotalBudget:      req.Budget,
			PerDayPerPerson:  breakdown.Total,
			ProvenanceCounts: map[string]int{},
		},
		Days:       days,
		Confidence: 0,
	}
}
