package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	hotels   []domain.Hotel
	rooms    []domain.RoomWithHotel
	bookings []domain.NewBooking
	calls    map[string]int
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hotels: []domain.Hotel{
			{ID: 1, Name: "Grand Plaza Hotel", City: "New York", StarRating: 5, HasPool: true},
			{ID: 3, Name: "Mountain Lodge", City: "Aspen", StarRating: 4, HasPool: false},
		},
		rooms: []domain.RoomWithHotel{
			{Room: domain.Room{ID: 3, HotelID: 1, Name: "Standard Double", PricePerNightCents: 18900, MaxGuests: 2}, HotelName: "Grand Plaza Hotel", HotelCity: "New York", HotelHasPool: true},
			{Room: domain.Room{ID: 1, HotelID: 1, Name: "Deluxe King", PricePerNightCents: 29900, MaxGuests: 2}, HotelName: "Grand Plaza Hotel", HotelCity: "New York", HotelHasPool: true},
			{Room: domain.Room{ID: 8, HotelID: 3, Name: "Family Suite", PricePerNightCents: 42900, MaxGuests: 6}, HotelName: "Mountain Lodge", HotelCity: "Aspen"},
		},
		calls: map[string]int{},
	}
}

func (f *fakeRepo) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.failWith
}

func (f *fakeRepo) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRepo) ListHotels(ctx context.Context, hasPool *bool) ([]domain.Hotel, error) {
	if err := f.hit("ListHotels"); err != nil {
		return nil, err
	}
	out := []domain.Hotel{}
	for _, h := range f.hotels {
		if hasPool == nil || *hasPool == h.HasPool {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	if err := f.hit("GetHotel"); err != nil {
		return domain.Hotel{}, err
	}
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeRepo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if err := f.hit("ListRoomsByHotel"); err != nil {
		return nil, err
	}
	out := []domain.Room{}
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, r.Room)
		}
	}
	return out, nil
}

func (f *fakeRepo) SearchRooms(ctx context.Context, flt domain.RoomFilter) ([]domain.RoomWithHotel, error) {
	if err := f.hit("SearchRooms"); err != nil {
		return nil, err
	}
	cp := make([]domain.RoomWithHotel, len(f.rooms))
	copy(cp, f.rooms)
	return flt.Apply(cp), nil
}

func (f *fakeRepo) GetRoom(ctx context.Context, id int64) (domain.RoomWithHotel, error) {
	if err := f.hit("GetRoom"); err != nil {
		return domain.RoomWithHotel{}, err
	}
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.RoomWithHotel{}, domain.ErrNotFound
}

func (f *fakeRepo) CreateBooking(ctx context.Context, b domain.NewBooking) (int64, error) {
	if err := f.hit("CreateBooking"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
	return int64(len(f.bookings)), nil
}

func (f *fakeRepo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	if err := f.hit("GetBooking"); err != nil {
		return domain.Booking{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if id < 1 || int(id) > len(f.bookings) {
		return domain.Booking{}, domain.ErrNotFound
	}
	b := f.bookings[id-1]
	return domain.Booking{
		ID: id, RoomID: b.RoomID, GuestName: b.GuestName, GuestEmail: b.GuestEmail,
		CheckIn: b.CheckIn, CheckOut: b.CheckOut, Guests: b.Guests, TotalCents: b.TotalCents,
	}, nil
}

func (f *fakeRepo) FindHotelID(ctx context.Context, name, city string) (int64, error) {
	if err := f.hit("FindHotelID"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hotels {
		if h.Name == name && h.City == city {
			return h.ID, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (f *fakeRepo) InsertHotel(ctx context.Context, ch domain.CatalogHotel) (domain.Hotel, []domain.Room, error) {
	if err := f.hit("InsertHotel"); err != nil {
		return domain.Hotel{}, nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := domain.Hotel{ID: int64(100 + len(f.hotels)), Name: ch.Name, City: ch.City, StarRating: ch.StarRating, HasPool: ch.HasPool}
	f.hotels = append(f.hotels, h)
	var rooms []domain.Room
	for i, cr := range ch.Rooms {
		rm := domain.Room{ID: int64(1000 + len(f.rooms) + i), HotelID: h.ID, Name: cr.Name, PricePerNightCents: cr.PricePerNightCents, MaxGuests: cr.MaxGuests}
		rooms = append(rooms, rm)
	}
	for _, rm := range rooms {
		f.rooms = append(f.rooms, domain.RoomWithHotel{Room: rm, HotelName: h.Name, HotelCity: h.City, HotelHasPool: h.HasPool})
	}
	return h, rooms, nil
}

// fakeCache stores values by key and copies them back through a type switch.
type fakeCache struct {
	mu      sync.Mutex
	store   map[string]any
	dels    []string
	failGet bool
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("cache down")
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	case *[]domain.Room:
		*d = v.([]domain.Room)
	case *domain.RoomWithHotel:
		*d = v.(domain.RoomWithHotel)
	case *[]domain.RoomWithHotel:
		*d = v.([]domain.RoomWithHotel)
	default:
		return false, nil
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func ptr[T any](v T) *T { return &v }
