package ingest

import (
	"strings"

	"github.com/homescout-ai/homescout/internal/domain"
)

// Summarize renders a listing as the text that gets chunked and embedded.
// Fields that are empty or scraped as "N/A" are skipped so the embedding
// is not polluted by placeholder values.
func Summarize(l domain.Listing) string {
	var parts []string

	add := func(label, value string) {
		if present(value) {
			parts = append(parts, label+value)
		}
	}

	add("Property: ", l.Title)
	add("Price: ", l.Price)
	add("Location: ", l.Location)

	var details []string
	if present(l.PropertyType) {
		details = append(details, "Type: "+l.PropertyType)
	}
	if present(l.BHK) {
		details = append(details, l.BHK)
	}
	if present(l.Bathrooms) {
		details = append(details, l.Bathrooms)
	}
	if present(l.Area) {
		details = append(details, "Area: "+l.Area)
	}
	if len(details) > 0 {
		parts = append(parts, "Details: "+strings.Join(details, ", "))
	}

	add("Builder: ", l.Builder)
	add("Description: ", cleanText(l.Description))
	if len(l.Amenities) > 0 {
		parts = append(parts, "Amenities: "+strings.Join(l.Amenities, ", "))
	}
	add("Locality: ", cleanText(l.LocalityInfo))
	add("URL: ", l.URL)

	return strings.Join(parts, "\n")
}

func present(v string) bool {
	return v != "" && v != "N/A"
}

// cleanText collapses runs of whitespace (including newlines) into single
// spaces. Free-text fields arrive with markup leftovers from scraping.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
