package ingest

import (
	"strings"
	"testing"

	"github.com/homescout-ai/homescout/internal/domain"
)

func TestSummarize(t *testing.T) {
	l := domain.Listing{
		Title:        "3 BHK Villa in Whitefield",
		Price:        "₹2.1 Cr",
		Location:     "Whitefield, Bangalore",
		PropertyType: "Villa",
		BHK:          "3 BHK",
		Bathrooms:    "3 Baths",
		Area:         "2400 sq ft",
		Builder:      "Prestige Group",
		Description:  "Spacious  villa\nwith   garden.",
		Amenities:    []string{"Clubhouse", "Pool"},
		LocalityInfo: "Close to  ITPL.",
		URL:          "https://example.com/villa",
	}

	got := Summarize(l)

	want := strings.Join([]string{
		"Property: 3 BHK Villa in Whitefield",
		"Price: ₹2.1 Cr",
		"Location: Whitefield, Bangalore",
		"Details: Type: Villa, 3 BHK, 3 Baths, Area: 2400 sq ft",
		"Builder: Prestige Group",
		"Description: Spacious villa with garden.",
		"Amenities: Clubhouse, Pool",
		"Locality: Close to ITPL.",
		"URL: https://example.com/villa",
	}, "\n")

	if got != want {
		t.Errorf("Summarize() =\n%s\nwant:\n%s", got, want)
	}
}

func TestSummarize_SkipsEmptyAndPlaceholderFields(t *testing.T) {
	l := domain.Listing{
		Title:    "Plot in Devanahalli",
		Price:    "N/A",
		Location: "Devanahalli",
		Builder:  "",
	}

	got := Summarize(l)

	if strings.Contains(got, "Price:") {
		t.Errorf("placeholder price included: %q", got)
	}
	if strings.Contains(got, "Builder:") || strings.Contains(got, "Details:") {
		t.Errorf("empty sections included: %q", got)
	}
	if !strings.Contains(got, "Location: Devanahalli") {
		t.Errorf("location missing: %q", got)
	}
}
