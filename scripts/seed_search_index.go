// Seeds the semantic search index with the static place catalog. Run it
// once against a fresh index so the external enrichment tier has data:
//
//	go run scripts/seed_search_index.go -url http://localhost:8081
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type indexDocument struct {
	Name        string   `json:"place_name"`
	Description string   `json:"description"`
	District    string   `json:"district,omitempty"`
	City        string   `json:"city,omitempty"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	EntryFee    *float64 `json:"entry_fee"`
	StayCost    *float64 `json:"stay_cost"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8081", "base URL of the search service")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	catalog := places.Catalog()
	for _, rec := range catalog {
		if err := addDocument(client, *baseURL, rec); err != nil {
			log.Fatalf("seeding %s: %v", rec.PlaceName, err)
		}
		fmt.Printf("indexed %s (%s)\n", rec.PlaceName, rec.District)
	}
	fmt.Printf("seeded %d documents\n", len(catalog))
}

func addDocument(client *http.Client, baseURL string, rec types.PlaceRecord) error {
	doc := indexDocument{
		Name:        rec.PlaceName,
		Description: rec.Description,
		District:    rec.District,
		City:        rec.City,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		EntryFee:    rec.EntryFee,
		StayCost:    rec.StayCost,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	resp, err := client.Post(baseURL+"/add", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("add call failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("search service returned %d", resp.StatusCode)
	}
	return nil
}
