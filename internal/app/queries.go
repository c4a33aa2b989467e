package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/domain"
)

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	if c == nil {
		c = NopCache{}
	}
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// readThrough serves key from cache or loads and stores it. Cache errors
// degrade to a plain repository read; load errors are never cached.
func readThrough[T any](ctx context.Context, s *QueryService, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	ok, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache get failed")
	}
	if ok && err == nil {
		return v, nil
	}
	v, err = load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
	return v, nil
}

func (s *QueryService) ListHotels(ctx context.Context, hasPool *bool) ([]domain.Hotel, error) {
	return readThrough(ctx, s, HotelsKey(hasPool), func(ctx context.Context) ([]domain.Hotel, error) {
		return s.repo.ListHotels(ctx, hasPool)
	})
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return readThrough(ctx, s, HotelKey(id), func(ctx context.Context) (domain.Hotel, error) {
		return s.repo.GetHotel(ctx, id)
	})
}

func (s *QueryService) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return readThrough(ctx, s, HotelRoomsKey(hotelID), func(ctx context.Context) ([]domain.Room, error) {
		return s.repo.ListRoomsByHotel(ctx, hotelID)
	})
}

// HotelDetail loads a hotel and its rooms concurrently.
func (s *QueryService) HotelDetail(ctx context.Context, id int64) (domain.Hotel, []domain.Room, error) {
	var (
		h     domain.Hotel
		rooms []domain.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		h, err = s.GetHotel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.ListRoomsByHotel(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Hotel{}, nil, err
	}
	return h, rooms, nil
}

// SearchRooms filters the cached, price-ordered catalog in memory.
func (s *QueryService) SearchRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomWithHotel, error) {
	all, err := readThrough(ctx, s, CatalogKey, func(ctx context.Context) ([]domain.RoomWithHotel, error) {
		return s.repo.SearchRooms(ctx, domain.RoomFilter{})
	})
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (s *QueryService) GetRoom(ctx context.Context, id int64) (domain.RoomWithHotel, error) {
	return readThrough(ctx, s, RoomKey(id), func(ctx context.Context) (domain.RoomWithHotel, error) {
		return s.repo.GetRoom(ctx, id)
	})
}

func (s *QueryService) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

// BookingDetail returns a booking with the room and hotel it refers to.
func (s *QueryService) BookingDetail(ctx context.Context, id int64) (domain.Booking, domain.RoomWithHotel, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, domain.RoomWithHotel{}, err
	}
	room, err := s.GetRoom(ctx, b.RoomID)
	if err != nil {
		return domain.Booking{}, domain.RoomWithHotel{}, err
	}
	return b, room, nil
}
