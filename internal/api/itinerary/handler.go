package itinerary

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateItinerary plans a trip from the posted form. Beyond the structural
// checks below the pipeline tolerates inconsistent input, so a decodable
// request always produces a complete itinerary.
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateItinerary"))
	start := time.Now()

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if msg, ok := validate(&req); !ok {
		l.DebugContext(ctx, "Rejected malformed trip request", slog.String("reason", msg))
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	result := h.service.Plan(ctx, &req)

	m := metrics.Get()
	m.PlanRequestsTotal.Add(ctx, 1)
	m.PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(attribute.Float64("plan.confidence", result.Confidence))

	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// validate enforces only structural minimums; everything else is the
// pipeline's job to tolerate.
func validate(req *types.TripRequest) (string, bool) {
	switch {
	case req.GroupSize < 1:
		return "group_size must be at least 1", false
	case req.Duration < 1:
		return "duration must be at least 1 day", false
	case req.Budget < 0:
		return "budget must not be negative", false
	case req.Seniors < 0:
		return "seniors must not be negative", false
	case req.Children != nil && *req.Children < 0:
		return "children must not be negative", false
	}
	return "", true
}
