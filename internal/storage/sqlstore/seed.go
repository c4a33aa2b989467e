package sqlstore

import "hotel_booking/internal/domain"

// SeedCatalog is inserted once, the first time the hotels table is found empty.
var SeedCatalog = domain.Catalog{Hotels: []domain.CatalogHotel{
	{
		Name:        "Grand Plaza Hotel",
		Description: "Luxury downtown hotel with stunning city views and rooftop pool.",
		Address:     "100 Main Street",
		City:        "New York",
		Country:     "USA",
		StarRating:  5,
		HasPool:     true,
		Rooms: []domain.CatalogRoom{
			{Name: "Deluxe King", Description: "Spacious room with king bed and city view.", RoomType: "deluxe", PricePerNightCents: 29900, MaxGuests: 2},
			{Name: "Executive Suite", Description: "Luxury suite with living area and skyline view.", RoomType: "suite", PricePerNightCents: 49900, MaxGuests: 4},
			{Name: "Standard Double", Description: "Comfortable double room with all amenities.", RoomType: "standard", PricePerNightCents: 18900, MaxGuests: 2},
		},
	},
	{
		Name:        "Seaside Resort",
		Description: "Beachfront resort with private beach, spa and pool.",
		Address:     "50 Ocean Drive",
		City:        "Miami",
		Country:     "USA",
		StarRating:  5,
		HasPool:     true,
		Rooms: []domain.CatalogRoom{
			{Name: "Ocean View Room", Description: "Wake up to the sound of the waves.", RoomType: "deluxe", PricePerNightCents: 34900, MaxGuests: 2},
			{Name: "Beach Bungalow", Description: "Private bungalow steps from the beach.", RoomType: "bungalow", PricePerNightCents: 59900, MaxGuests: 4},
			{Name: "Garden Room", Description: "Quiet room with garden view.", RoomType: "standard", PricePerNightCents: 22900, MaxGuests: 2},
		},
	},
	{
		Name:        "Mountain Lodge",
		Description: "Cozy lodge in the mountains. Perfect for skiing.",
		Address:     "200 Pine Road",
		City:        "Aspen",
		Country:     "USA",
		StarRating:  4,
		HasPool:     false,
		Rooms: []domain.CatalogRoom{
			{Name: "Mountain View", Description: "Room with panoramic mountain views.", RoomType: "deluxe", PricePerNightCents: 27900, MaxGuests: 2},
			{Name: "Family Suite", Description: "Two bedrooms, ideal for families.", RoomType: "suite", PricePerNightCents: 42900, MaxGuests: 6},
		},
	},
}}
