package directory

import "github.com/factsuniv/Pk4/internal/domain/model"

// DefaultCatalogue returns the seeded Collin County launch catalogue.
func DefaultCatalogue() []Business {
	return []Business{
		{
			ID:            "legacy-west",
			Name:          "Legacy West",
			Category:      "Shopping & Dining",
			Address:       "7250 Bishop Rd, Plano, TX 75024",
			Coordinates:   model.Coordinates{Lat: 33.0751, Lng: -96.8236},
			Description:   "Upscale mixed-use development with shops, restaurants, and offices",
			Tags:          []string{"shopping", "dining", "restaurants", "upscale"},
			ParkingDemand: DemandExtreme,
			PeakHours:     []string{"11:00-14:00", "18:00-22:00"},
		},
		{
			ID:            "the-star-frisco",
			Name:          "The Star in Frisco",
			Category:      "Sports & Entertainment",
			Address:       "1 Cowboys Way, Frisco, TX 75034",
			Coordinates:   model.Coordinates{Lat: 33.0878, Lng: -96.8364},
			Description:   "Dallas Cowboys world headquarters and entertainment district",
			Tags:          []string{"sports", "events", "cowboys", "entertainment"},
			ParkingDemand: DemandVeryHigh,
			PeakHours:     []string{"17:00-22:00"},
		},
		{
			ID:            "stonebriar-centre",
			Name:          "Stonebriar Centre",
			Category:      "Shopping Mall",
			Address:       "2601 Preston Rd, Frisco, TX 75034",
			Coordinates:   model.Coordinates{Lat: 33.0932, Lng: -96.8108},
			Description:   "Regional shopping mall with department stores and a food court",
			Tags:          []string{"shopping", "mall", "retail"},
			ParkingDemand: DemandHigh,
			PeakHours:     []string{"12:00-18:00"},
		},
		{
			ID:            "topgolf-the-colony",
			Name:          "TopGolf - The Colony",
			Category:      "Entertainment",
			Address:       "5151 TX-121, The Colony, TX 75056",
			Coordinates:   model.Coordinates{Lat: 33.0884, Lng: -96.8969},
			Description:   "Golf entertainment venue with food and drinks",
			Tags:          []string{"golf", "entertainment", "nightlife"},
			ParkingDemand: DemandVeryHigh,
			PeakHours:     []string{"18:00-23:00"},
		},
		{
			ID:            "grandscape",
			Name:          "Grandscape",
			Category:      "Shopping & Entertainment",
			Address:       "5752 Grandscape Blvd, The Colony, TX 75056",
			Coordinates:   model.Coordinates{Lat: 33.0892, Lng: -96.8964},
			Description:   "Large shopping and entertainment destination anchored by Nebraska Furniture Mart",
			Tags:          []string{"shopping", "entertainment", "dining"},
			ParkingDemand: DemandHigh,
			PeakHours:     []string{"11:00-14:00", "17:00-21:00"},
		},
		{
			ID:            "craig-ranch",
			Name:          "Craig Ranch",
			Category:      "Business District",
			Address:       "8910 State Hwy 121, McKinney, TX 75070",
			Coordinates:   model.Coordinates{Lat: 33.1067, Lng: -96.8142},
			Description:   "Corporate campus and business district",
			Tags:          []string{"business", "offices", "corporate"},
			ParkingDemand: DemandMedium,
			PeakHours:     []string{"08:00-10:00"},
		},
		{
			ID:            "historic-downtown-mckinney",
			Name:          "Historic Downtown McKinney",
			Category:      "Shopping & Dining",
			Address:       "111 N Tennessee St, McKinney, TX 75069",
			Coordinates:   model.Coordinates{Lat: 33.1976, Lng: -96.6153},
			Description:   "Historic square with boutiques, restaurants, and festivals",
			Tags:          []string{"historic", "dining", "boutiques", "festivals"},
			ParkingDemand: DemandHigh,
			PeakHours:     []string{"18:00-22:00"},
		},
		{
			ID:            "allen-premium-outlets",
			Name:          "Allen Premium Outlets",
			Category:      "Shopping Mall",
			Address:       "820 W Stacy Rd, Allen, TX 75013",
			Coordinates:   model.Coordinates{Lat: 33.1282, Lng: -96.6895},
			Description:   "Outlet mall with designer and brand-name stores",
			Tags:          []string{"shopping", "outlets", "deals"},
			ParkingDemand: DemandMedium,
			PeakHours:     []string{"12:00-17:00"},
		},
	}
}
