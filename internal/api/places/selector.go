// Package places decides which destinations a trip visits and resolves
// each of them to a descriptive record through a fallback cascade.
package places

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/internal/retry"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Recommender is the slice of the Gemini client the selector needs.
type Recommender interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// SelectionSource records which path produced the place list.
type SelectionSource string

const (
	SourceUser     SelectionSource = "user"
	SourceAI       SelectionSource = "ai"
	SourceFallback SelectionSource = "fallback"
)

// Selection is the selector's output: an ordered place-name list plus the
// path that produced it (feeds the confidence score).
type Selection struct {
	Places []string
	Source SelectionSource
}

// Selector picks the destination list: the user's own list when provided,
// otherwise a recommendation call guarded by the retry policy, otherwise
// the fixed default shortlist. Selection never fails.
type Selector struct {
	logger *slog.Logger
	ai     Recommender
	policy *retry.Policy
}

func NewSelector(ai Recommender, policy *retry.Policy, logger *slog.Logger) *Selector {
	return &Selector{logger: logger, ai: ai, policy: policy}
}

func (s *Selector) Select(ctx context.Context, req *types.TripRequest, tripCtx types.TripContext) Selection {
	ctx, span := otel.Tracer("PlaceSelector").Start(ctx, "Select")
	defer span.End()

	if userPlaces := req.PlaceList(); len(userPlaces) > 0 {
		sel := Selection{Places: dedupe(userPlaces), Source: SourceUser}
		span.SetAttributes(
			attribute.String("selection.source", string(sel.Source)),
			attribute.Int("selection.count", len(sel.Places)),
		)
		return sel
	}

	if s.ai != nil {
		if names, ok := s.recommend(ctx, req, tripCtx); ok {
			span.SetAttributes(
				attribute.String("selection.source", string(SourceAI)),
				attribute.Int("selection.count", len(names)),
			)
			return Selection{Places: names, Source: SourceAI}
		}
	}

	fallback := DefaultShortlist(req.Duration)
	s.logger.WarnContext(ctx, "place recommendation unavailable, using default shortlist",
		slog.Int("count", len(fallback)))
	span.SetAttributes(
		attribute.String("selection.source", string(SourceFallback)),
		attribute.Int("selection.count", len(fallback)),
	)
	return Selection{Places: fallback, Source: SourceFallback}
}

func (s *Selector) recommend(ctx context.Context, req *types.TripRequest, tripCtx types.TripContext) ([]string, bool) {
	prompt := getPlaceRecommendationPrompt(req, tripCtx)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.5)}

	var answer string
	err := s.policy.Execute(ctx, func(ctx context.Context) error {
		txt, err := s.ai.GenerateContent(ctx, prompt, config)
		if err != nil {
			// the SDK does not distinguish network flakes for us; treat
			// call failures as transient and let the policy bound them
			return retry.MarkTransient(err)
		}
		answer = txt
		return nil
	})
	if err != nil {
		s.logger.DebugContext(ctx, "recommendation call failed", slog.Any("error", err))
		return nil, false
	}

	names := parsePlaceList(answer)
	if len(names) == 0 {
		// malformed response: fall back immediately, no point retrying
		s.logger.DebugContext(ctx, "recommendation response had no parseable places")
		return nil, false
	}
	return dedupe(names), true
}

// dedupe trims and case-insensitively deduplicates, preserving first-seen
// order.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := normalizeName(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
