package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	PlanRequestsTotal          metric.Int64Counter
	PlanDurationSeconds        metric.Float64Histogram
	StageFallbacksTotal        metric.Int64Counter
	EnrichmentResolutionsTotal metric.Int64Counter
	ExternalCallDuration       metric.Float64Histogram
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripItinerary")
		var err error
		m := &AppMetrics{}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"plan_requests_total",
			metric.WithDescription("Total number of itinerary plan requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_requests_total: %v", err)
		}

		m.PlanDurationSeconds, err = meter.Float64Histogram(
			"plan_duration_seconds",
			metric.WithDescription("Duration of itinerary plan requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_duration_seconds: %v", err)
		}

		m.StageFallbacksTotal, err = meter.Int64Counter(
			"stage_fallbacks_total",
			metric.WithDescription("Total number of pipeline stages replaced by their fallback output"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create stage_fallbacks_total: %v", err)
		}

		m.EnrichmentResolutionsTotal, err = meter.Int64Counter(
			"enrichment_resolutions_total",
			metric.WithDescription("Total number of place resolutions, by tier"),
			metric.WithUnit("{resolution}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create enrichment_resolutions_total: %v", err)
		}

		m.ExternalCallDuration, err = meter.Float64Histogram(
			"external_call_duration_seconds",
			metric.WithDescription("Duration of calls to external services in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create external_call_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
