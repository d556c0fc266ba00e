package places

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/retry"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

// MockRecommender is a mock implementation of Recommender
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fastPolicy() *retry.Policy {
	return retry.NewPolicy(retry.Config{MaxAttempts: 2, BaseDelay: 1, MaxDelay: 1})
}

func TestSelect_UserPlacesVerbatimNoAICall(t *testing.T) {
	ai := new(MockRecommender)
	s := NewSelector(ai, fastPolicy(), testLogger())

	req := &types.TripRequest{
		GroupSize:      4,
		Duration:       3,
		Budget:         15000,
		SpecificPlaces: " Puri , Konark, puri, Konark ",
	}
	sel := s.Select(context.Background(), req, types.TripContext{})

	assert.Equal(t, SourceUser, sel.Source)
	assert.Equal(t, []string{"Puri", "Konark"}, sel.Places)
	ai.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSelect_AIPathSuccess(t *testing.T) {
	ai := new(MockRecommender)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("Puri, Chilika, Gopalpur", nil).Once()

	s := NewSelector(ai, fastPolicy(), testLogger())
	req := &types.TripRequest{GroupSize: 2, Duration: 3, Budget: 20000, Vibes: []string{"Beach"}}
	sel := s.Select(context.Background(), req, types.TripContext{Pace: types.PaceModerate})

	assert.Equal(t, SourceAI, sel.Source)
	assert.Equal(t, []string{"Puri", "Chilika", "Gopalpur"}, sel.Places)
	ai.AssertExpectations(t)
}

func TestSelect_AIFailureFallsBackToShortlist(t *testing.T) {
	ai := new(MockRecommender)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("deadline exceeded"))

	s := NewSelector(ai, fastPolicy(), testLogger())
	req := &types.TripRequest{GroupSize: 2, Duration: 3, Budget: 20000}
	sel := s.Select(context.Background(), req, types.TripContext{})

	assert.Equal(t, SourceFallback, sel.Source)
	require.NotEmpty(t, sel.Places)
	assert.Equal(t, DefaultShortlist(3), sel.Places)
	// retried before giving up
	ai.AssertNumberOfCalls(t, "GenerateContent", 2)
}

func TestSelect_MalformedAIResponseNotRetried(t *testing.T) {
	ai := new(MockRecommender)
	ai.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return("   \n  ", nil)

	s := NewSelector(ai, fastPolicy(), testLogger())
	req := &types.TripRequest{GroupSize: 2, Duration: 2, Budget: 10000}
	sel := s.Select(context.Background(), req, types.TripContext{})

	assert.Equal(t, SourceFallback, sel.Source)
	// the call itself succeeded, parsing failed: exactly one attempt
	ai.AssertNumberOfCalls(t, "GenerateContent", 1)
}

func TestSelect_NilRecommenderFallsBack(t *testing.T) {
	s := NewSelector(nil, fastPolicy(), testLogger())
	req := &types.TripRequest{GroupSize: 2, Duration: 4, Budget: 10000}
	sel := s.Select(context.Background(), req, types.TripContext{})

	assert.Equal(t, SourceFallback, sel.Source)
	assert.Len(t, sel.Places, 6) // 4 days -> 6 places
}

func TestParsePlaceList(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{"plain", "Puri, Konark, Chilika", []string{"Puri", "Konark", "Chilika"}},
		{"fenced", "```\nPuri, Konark\n```", []string{"Puri", "Konark"}},
		{"preamble", "Here you go:\nPuri, Gopalpur", []string{"Puri", "Gopalpur"}},
		{"empty", "   ", nil},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePlaceList(tt.answer))
		})
	}
}

func TestDefaultShortlist_Sizing(t *testing.T) {
	assert.Len(t, DefaultShortlist(1), 1)
	assert.Len(t, DefaultShortlist(2), 3)
	assert.Len(t, DefaultShortlist(3), 4)
	assert.Len(t, DefaultShortlist(30), len(shortlistOrder))
	assert.Len(t, DefaultShortlist(0), 1)
}
