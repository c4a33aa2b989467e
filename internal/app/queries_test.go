package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	h, err := q.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Grand Plaza Hotel" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.hotels[0].Name = "SHOULD NOT SEE THIS"

	h2, err := q.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "Grand Plaza Hotel" {
		t.Fatalf("expected cached name, got %s", h2.Name)
	}
	if n := repo.count("GetHotel"); n != 1 {
		t.Fatalf("repo hit %d times, want 1", n)
	}
}

func TestGetHotel_NotFoundIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := q.GetHotel(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	}
	if n := repo.count("GetHotel"); n != 2 {
		t.Fatalf("repo hit %d times, want 2", n)
	}
}

func TestListHotels_CachedPerAmenityFilter(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, time.Minute)
	ctx := context.Background()

	all, _ := q.ListHotels(ctx, nil)
	pool, _ := q.ListHotels(ctx, ptr(true))
	noPool, _ := q.ListHotels(ctx, ptr(false))
	if len(all) != 2 || len(pool) != 1 || len(noPool) != 1 {
		t.Fatalf("sizes all=%d pool=%d nopool=%d", len(all), len(pool), len(noPool))
	}
	if pool[0].Name != "Grand Plaza Hotel" || noPool[0].Name != "Mountain Lodge" {
		t.Fatalf("wrong partition: %+v / %+v", pool, noPool)
	}

	_, _ = q.ListHotels(ctx, ptr(true))
	if n := repo.count("ListHotels"); n != 3 {
		t.Fatalf("repo hit %d times, want 3 (one per filter)", n)
	}
}

func TestSearchRooms_FiltersCachedCatalog(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, time.Minute)
	ctx := context.Background()

	ny, err := q.SearchRooms(ctx, domain.RoomFilter{City: ptr("NEW YORK"), Guests: ptr(2)})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(ny) != 2 || ny[0].PricePerNightCents > ny[1].PricePerNightCents {
		t.Fatalf("unexpected: %+v", ny)
	}

	big, _ := q.SearchRooms(ctx, domain.RoomFilter{Guests: ptr(3)})
	if len(big) != 1 || big[0].Name != "Family Suite" {
		t.Fatalf("unexpected: %+v", big)
	}

	if n := repo.count("SearchRooms"); n != 1 {
		t.Fatalf("catalog loaded %d times, want 1", n)
	}
}

func TestReads_SurviveCacheFailure(t *testing.T) {
	repo := newFakeRepo()
	q := app.NewQueryService(repo, &fakeCache{failGet: true}, time.Minute)

	r, err := q.GetRoom(context.Background(), 8)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if r.HotelName != "Mountain Lodge" {
		t.Fatalf("unexpected room: %+v", r)
	}
}

func TestHotelDetail(t *testing.T) {
	repo := newFakeRepo()
	q := app.NewQueryService(repo, nil, time.Minute)

	h, rooms, err := q.HotelDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID != 1 || len(rooms) != 2 {
		t.Fatalf("unexpected detail: %+v %+v", h, rooms)
	}

	if _, _, err := q.HotelDetail(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStorageErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	boom := errors.New("disk on fire")
	repo.failWith = boom
	q := app.NewQueryService(repo, nil, time.Minute)

	if _, err := q.ListHotels(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("want storage error, got %v", err)
	}
	if _, err := q.GetBooking(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("want storage error, got %v", err)
	}
}
