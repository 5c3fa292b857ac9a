package apify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
)

func TestScrapeListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v2/acts/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if !strings.HasSuffix(r.URL.Path, "/run-sync-get-dataset-items") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "test-token" {
			t.Errorf("token not passed: %s", r.URL.RawQuery)
		}

		var input runInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if len(input.URLs) != 2 {
			t.Errorf("expected 2 urls, got %d", len(input.URLs))
		}
		if !input.Proxy.UseApifyProxy {
			t.Error("expected apify proxy enabled")
		}

		items := []map[string]any{
			{
				"url":          "https://www.magicbricks.com/propertyDetails/2-BHK-Flat-Koramangala",
				"title":        "2BHK Flat in Koramangala",
				"price":        "₹ 80 Lakh",
				"location":     "Koramangala, Bangalore",
				"propertyType": "Apartment",
				"bedrooms":     "2 BHK",
				"area":         "1100 sq.ft",
				"amenities":    []string{"Gym", "Parking"},
				"description":  "Nice flat.",
			},
			{
				// alias field names
				"url":                 "https://www.magicbricks.com/propertyDetails/3-BHK-Villa-Sarjapur/",
				"propertyName":        "3BHK Villa on Sarjapur Road",
				"price":               "₹ 2 Cr",
				"locality":            "Sarjapur Road, Bangalore",
				"bhkType":             "3 BHK",
				"carpetArea":          "2400 sq.ft",
				"propertyDescription": "Spacious villa.",
				"builderName":         "Sobha Developers",
				"aboutLocality":       "Developing corridor.",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}))
	defer server.Close()

	c := NewClient(&Config{
		APIToken: "test-token",
		BaseURL:  server.URL,
		ActorID:  "vendor/property-scraper",
		Logger:   zap.NewNop(),
	})

	listings, err := c.ScrapeListings(context.Background(), []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("ScrapeListings failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Title != "2BHK Flat in Koramangala" {
		t.Errorf("title = %q", first.Title)
	}
	if first.ID != "2-BHK-Flat-Koramangala" {
		t.Errorf("id = %q", first.ID)
	}
	if first.BHK != "2 BHK" {
		t.Errorf("bhk = %q", first.BHK)
	}

	second := listings[1]
	if second.Title != "3BHK Villa on Sarjapur Road" {
		t.Errorf("alias title not mapped: %q", second.Title)
	}
	if second.Location != "Sarjapur Road, Bangalore" {
		t.Errorf("alias location not mapped: %q", second.Location)
	}
	if second.Area != "2400 sq.ft" {
		t.Errorf("alias area not mapped: %q", second.Area)
	}
	if second.Builder != "Sobha Developers" {
		t.Errorf("alias builder not mapped: %q", second.Builder)
	}
	if second.ID != "3-BHK-Villa-Sarjapur" {
		t.Errorf("trailing slash not handled in id: %q", second.ID)
	}
}

func TestScrapeListings_EmptyInput(t *testing.T) {
	c := NewClient(&Config{APIToken: "t", ActorID: "a", Logger: zap.NewNop()})
	listings, err := c.ScrapeListings(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listings != nil {
		t.Errorf("expected nil for empty input")
	}
}

func TestScrapeListings_ActorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"usage-limit","message":"trial expired"}}`))
	}))
	defer server.Close()

	c := NewClient(&Config{
		APIToken: "t",
		BaseURL:  server.URL,
		ActorID:  "vendor/property-scraper",
		Logger:   zap.NewNop(),
	})

	_, err := c.ScrapeListings(context.Background(), []string{"u1"})
	if !errors.Is(err, domain.ErrScraperProvider) {
		t.Fatalf("expected ErrScraperProvider, got %v", err)
	}
}

func TestListingID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/a/b/listing-42", "listing-42"},
		{"https://example.com/a/b/listing-42/", "listing-42"},
		{"listing-plain", "listing-plain"},
	}
	for _, tc := range tests {
		if got := ListingID(tc.url); got != tc.want {
			t.Errorf("ListingID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestSampleListings(t *testing.T) {
	samples := SampleListings()
	if len(samples) != 15 {
		t.Fatalf("expected 15 sample listings, got %d", len(samples))
	}
	seen := map[string]bool{}
	for _, l := range samples {
		if l.ID == "" || l.Title == "" || l.Location == "" {
			t.Errorf("incomplete sample: %+v", l)
		}
		if seen[l.ID] {
			t.Errorf("duplicate sample id %q", l.ID)
		}
		seen[l.ID] = true
	}
}
