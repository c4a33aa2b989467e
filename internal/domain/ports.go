package domain

import "context"

type HotelRepository interface {
	// Read paths
	ListHotels(ctx context.Context, hasPool *bool) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]Room, error)
	SearchRooms(ctx context.Context, f RoomFilter) ([]RoomWithHotel, error)
	GetRoom(ctx context.Context, id int64) (RoomWithHotel, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)

	// Write paths
	CreateBooking(ctx context.Context, b NewBooking) (int64, error)
	FindHotelID(ctx context.Context, name, city string) (int64, error)
	InsertHotel(ctx context.Context, h CatalogHotel) (Hotel, []Room, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CatalogSource yields catalog documents for the importer.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
}
