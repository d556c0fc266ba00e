package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-trip-itinerary/internal/retry"
)

// ErrNoMatch means the search service answered but had nothing close
// enough. It is terminal for the external tier, not retryable.
var ErrNoMatch = errors.New("places: no search match")

// SearchMatch is the best-match record the semantic search service returns
// for a place-name query. Fee fields are nil when the index has no cost
// metadata for the match.
type SearchMatch struct {
	Name        string   `json:"place_name"`
	Description string   `json:"description"`
	District    string   `json:"district,omitempty"`
	City        string   `json:"city,omitempty"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	EntryFee    *float64 `json:"entry_fee"`
	StayCost    *float64 `json:"stay_cost"`
}

// SearchClient queries the external vector-search index for one place name.
type SearchClient interface {
	BestMatch(ctx context.Context, query string) (*SearchMatch, error)
}

// HTTPSearchClient talks to a Chroma-style vector search service over
// HTTP/JSON. Network and 5xx/429 failures are marked transient so the
// retry policy re-attempts them; anything else fails fast.
type HTTPSearchClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSearchClient(baseURL string, timeout time.Duration) *HTTPSearchClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSearchClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Query    string `json:"query"`
	NResults int    `json:"n_results"`
}

type searchResponse struct {
	Matches []SearchMatch `json:"matches"`
}

func (c *HTTPSearchClient) BestMatch(ctx context.Context, query string) (*SearchMatch, error) {
	body, err := json.Marshal(searchRequest{Query: query, NResults: 1})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, retry.MarkTransient(fmt.Errorf("search call failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.MarkTransient(fmt.Errorf("search service returned %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("search service returned %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// malformed response: immediate fallback, not worth retrying
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(parsed.Matches) == 0 {
		return nil, ErrNoMatch
	}
	return &parsed.Matches[0], nil
}
