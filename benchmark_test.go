package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/retry"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// BenchmarkCreateItinerary measures the catalog-only planning path: user
// places, no AI, no reachable search service.
func BenchmarkCreateItinerary(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	metrics.InitAppMetrics()

	policy := retry.NewPolicy(retry.Config{MaxAttempts: 1, BaseDelay: time.Millisecond})
	selector := places.NewSelector(nil, policy, logger)
	resolver := places.NewResolver(nil, policy, logger)
	service := itinerary.NewServiceImpl(selector, resolver, logger)
	handler := itinerary.NewHandler(service, logger)

	body, _ := json.Marshal(types.TripRequest{
		GroupSize:      4,
		Duration:       3,
		StartDate:      "2025-02-14",
		Budget:         15000,
		Vibes:          []string{"Spiritual"},
		SpecificPlaces: "Puri, Konark, Chilika",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.CreateItinerary(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}
