package apify

import (
	"time"

	"github.com/homescout-ai/homescout/internal/domain"
)

// SampleListings returns a small built-in dataset of Bangalore properties.
// It is the ingestion fallback when the scraping API is unconfigured or its
// run fails, so the service can be exercised without scraper credentials.
func SampleListings() []domain.Listing {
	now := time.Now().UTC()

	mk := func(id, title, price, location, ptype, bhk, baths, area string, amenities []string, desc, builder, locality string) domain.Listing {
		return domain.Listing{
			ID:           id,
			Title:        title,
			Price:        price,
			Location:     location,
			PropertyType: ptype,
			BHK:          bhk,
			Bathrooms:    baths,
			Area:         area,
			Amenities:    amenities,
			Description:  desc,
			Builder:      builder,
			LocalityInfo: locality,
			URL:          "https://www.magicbricks.com/property-sample-" + id,
			ScrapedAt:    now,
		}
	}

	return []domain.Listing{
		mk("1", "Luxury 3BHK Apartment in Whitefield, Bangalore", "₹ 1.2 Cr", "Whitefield, Bangalore",
			"Apartment", "3 BHK", "3 Bathrooms", "1650 sq.ft",
			[]string{"Swimming Pool", "Gym", "Club House", "Power Backup", "Parking", "Security", "Lift"},
			"Premium 3BHK apartment in Whitefield with modern amenities. Close to IT parks, schools, and shopping centers.",
			"Prestige Group", "Whitefield is a major IT hub with excellent infrastructure."),
		mk("2", "2BHK Flat in Electronic City, Bangalore", "₹ 75 Lakh", "Electronic City, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "1100 sq.ft",
			[]string{"Gym", "Power Backup", "Parking", "Security", "Children Play Area"},
			"Spacious 2BHK apartment in Electronic City Phase 1. Near major IT companies.",
			"Brigade Group", "Electronic City is Bangalore's largest IT park."),
		mk("3", "4BHK Villa in Sarjapur Road, Bangalore", "₹ 2.5 Cr", "Sarjapur Road, Bangalore",
			"Villa", "4 BHK", "4 Bathrooms", "2800 sq.ft",
			[]string{"Private Garden", "Swimming Pool", "Gym", "Club House", "Power Backup", "Parking", "24x7 Security", "Gated Community"},
			"Luxurious 4BHK villa with private garden and premium fittings. Perfect for families.",
			"Sobha Developers", "Sarjapur Road is rapidly developing with excellent IT parks and schools."),
		mk("4", "3BHK Apartment in Indiranagar, Bangalore", "₹ 2.1 Cr", "Indiranagar, Bangalore",
			"Apartment", "3 BHK", "3 Bathrooms", "1800 sq.ft",
			[]string{"Gym", "Club House", "Power Backup", "Parking", "Lift", "Intercom", "Piped Gas"},
			"Premium apartment in the heart of Indiranagar. Walking distance to restaurants and cafes.",
			"Shriram Properties", "Indiranagar is one of Bangalore's most sought-after neighborhoods."),
		mk("5", "1BHK Studio Apartment in Koramangala, Bangalore", "₹ 55 Lakh", "Koramangala, Bangalore",
			"Studio Apartment", "1 BHK", "1 Bathroom", "650 sq.ft",
			[]string{"Power Backup", "Parking", "Security", "Lift"},
			"Compact studio apartment perfect for young professionals. Located in the startup hub.",
			"Purva Properties", "Koramangala is Bangalore's startup district with numerous cafes and restaurants."),
		mk("6", "2BHK Apartment in HSR Layout, Bangalore", "₹ 95 Lakh", "HSR Layout, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "1200 sq.ft",
			[]string{"Gym", "Swimming Pool", "Power Backup", "Parking", "Security", "Lift", "Club House"},
			"Well-maintained 2BHK in HSR Layout Sector 2. Great connectivity to ORR and metro.",
			"Sobha Developers", "HSR Layout is a well-developed residential area with excellent amenities."),
		mk("7", "3BHK Penthouse in JP Nagar, Bangalore", "₹ 1.8 Cr", "JP Nagar, Bangalore",
			"Penthouse", "3 BHK", "3 Bathrooms", "2200 sq.ft",
			[]string{"Private Terrace", "Swimming Pool", "Gym", "Club House", "Power Backup", "Parking", "Security"},
			"Stunning penthouse with private terrace and city views. Premium fittings throughout.",
			"Puravankara", "JP Nagar is a mature residential area with excellent schools and hospitals."),
		mk("8", "2BHK Flat in Marathahalli, Bangalore", "₹ 68 Lakh", "Marathahalli, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "950 sq.ft",
			[]string{"Power Backup", "Parking", "Security", "Lift", "Children Play Area"},
			"Affordable 2BHK near Marathahalli Bridge. Close to offices and tech parks.",
			"Salarpuria Sattva", "Marathahalli is a bustling IT hub with great connectivity."),
		mk("9", "1BHK Apartment in Bommanahalli, Bangalore", "₹ 42 Lakh", "Bommanahalli, Bangalore",
			"Apartment", "1 BHK", "1 Bathroom", "580 sq.ft",
			[]string{"Power Backup", "Parking", "Security"},
			"Compact 1BHK apartment near Electronic City. Ideal for first-time buyers.",
			"Mantri Developers", "Bommanahalli offers affordable housing near Electronic City."),
		mk("10", "4BHK Luxury Apartment in Bellandur, Bangalore", "₹ 3.2 Cr", "Bellandur, Bangalore",
			"Apartment", "4 BHK", "4 Bathrooms", "3200 sq.ft",
			[]string{"Private Pool", "Home Theater", "Gym", "Club House", "Concierge Service", "Power Backup", "Parking", "24x7 Security", "Smart Home"},
			"Ultra-luxury 4BHK with private pool and smart home features. Premium lake-facing views.",
			"Embassy Group", "Bellandur is a premium residential area near major IT parks."),
		mk("11", "3BHK Apartment in Hebbal, Bangalore", "₹ 1.5 Cr", "Hebbal, Bangalore",
			"Apartment", "3 BHK", "3 Bathrooms", "1750 sq.ft",
			[]string{"Swimming Pool", "Gym", "Club House", "Power Backup", "Parking", "Security", "Sports Court"},
			"Spacious 3BHK near Manyata Tech Park. Excellent for IT professionals.",
			"Brigade Group", "Hebbal is rapidly developing with excellent connectivity to airport."),
		mk("12", "2BHK Flat in Yelahanka, Bangalore", "₹ 62 Lakh", "Yelahanka, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "980 sq.ft",
			[]string{"Power Backup", "Parking", "Security", "Lift", "Children Play Area"},
			"Affordable 2BHK near Yelahanka metro. Close to schools and hospitals.",
			"Mahindra Lifespaces", "Yelahanka offers good connectivity to airport and city center."),
		mk("13", "3BHK Villa in Hennur Road, Bangalore", "₹ 1.9 Cr", "Hennur Road, Bangalore",
			"Villa", "3 BHK", "3 Bathrooms", "2100 sq.ft",
			[]string{"Private Garden", "Swimming Pool", "Gym", "Club House", "Power Backup", "Parking", "Gated Community"},
			"Beautiful villa with private garden. Perfect for families seeking peace.",
			"Shriram Properties", "Hennur Road is emerging as a premium residential corridor."),
		mk("14", "2BHK Apartment in Bannerghatta Road, Bangalore", "₹ 78 Lakh", "Bannerghatta Road, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "1080 sq.ft",
			[]string{"Gym", "Power Backup", "Parking", "Security", "Lift", "Landscaped Gardens"},
			"Well-designed 2BHK with modern amenities. Near IIM Bangalore.",
			"Sobha Developers", "Bannerghatta Road is a well-connected area with good social infrastructure."),
		mk("15", "2BHK Flat in BTM Layout, Bangalore", "₹ 85 Lakh", "BTM Layout, Bangalore",
			"Apartment", "2 BHK", "2 Bathrooms", "1050 sq.ft",
			[]string{"Gym", "Power Backup", "Parking", "Security", "Lift"},
			"Well-located 2BHK in BTM 2nd Stage. Near metro station and shopping centers.",
			"Prestige Group", "BTM Layout is a established residential area with good infrastructure."),
	}
}
