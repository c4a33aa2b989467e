package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/domain"
)

// CatalogImporter loads hotels and rooms created out of band.
type CatalogImporter struct {
	repo  domain.HotelRepository
	cache domain.Cache
}

func NewCatalogImporter(r domain.HotelRepository, c domain.Cache) *CatalogImporter {
	if c == nil {
		c = NopCache{}
	}
	return &CatalogImporter{repo: r, cache: c}
}

type ImportResult struct {
	Name    string
	HotelID int64
	Rooms   int
	Skipped bool
}

type ImportSummary struct {
	Inserted int
	Skipped  int
	Failed   int
	Results  []ImportResult
	Errors   []error
}

func validateHotel(h domain.CatalogHotel) error {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.City) == "" {
		return fmt.Errorf("%w: hotel name and city are required", domain.ErrInvalidInput)
	}
	if h.StarRating < 1 || h.StarRating > 5 {
		return fmt.Errorf("%w: hotel %q star rating %d outside 1..5", domain.ErrInvalidInput, h.Name, h.StarRating)
	}
	for _, r := range h.Rooms {
		if r.PricePerNightCents < 0 || r.MaxGuests < 0 {
			return fmt.Errorf("%w: room %q in %q has negative price or capacity", domain.ErrInvalidInput, r.Name, h.Name)
		}
	}
	return nil
}

// ImportHotel inserts h with its rooms unless a hotel with the same name and
// city already exists.
func (s *CatalogImporter) ImportHotel(ctx context.Context, h domain.CatalogHotel) (ImportResult, error) {
	res := ImportResult{Name: h.Name}
	if err := validateHotel(h); err != nil {
		return res, err
	}

	id, err := s.repo.FindHotelID(ctx, h.Name, h.City)
	switch {
	case err == nil:
		res.HotelID, res.Skipped = id, true
		return res, nil
	case !errors.Is(err, domain.ErrNotFound):
		return res, err
	}

	hotel, rooms, err := s.repo.InsertHotel(ctx, h)
	if err != nil {
		return res, err
	}
	res.HotelID, res.Rooms = hotel.ID, len(rooms)

	// new hotel changes every list and the search catalog
	s.invalidateLists(ctx)
	_ = s.cache.Del(ctx, HotelKey(hotel.ID))
	_ = s.cache.Del(ctx, HotelRoomsKey(hotel.ID))
	return res, nil
}

// ImportCatalog imports hotels concurrently with at most workers in flight.
// A failing hotel does not stop the others.
func (s *CatalogImporter) ImportCatalog(ctx context.Context, cat domain.Catalog, workers int) (ImportSummary, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sum ImportSummary
	)
	seen := make(map[string]bool, len(cat.Hotels))

	for _, h := range cat.Hotels {
		key := strings.ToLower(h.Name) + "|" + strings.ToLower(h.City)
		if seen[key] {
			log.Warn().Str("hotel", h.Name).Str("city", h.City).Msg("duplicate hotel in catalog ignored")
			continue
		}
		seen[key] = true

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return sum, err
		}

		wg.Add(1)
		go func(h domain.CatalogHotel) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := s.ImportHotel(ctx, h)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Failed++
				sum.Errors = append(sum.Errors, fmt.Errorf("hotel %q: %w", h.Name, err))
				log.Warn().Str("hotel", h.Name).Err(err).Msg("import failed")
				return
			}
			sum.Results = append(sum.Results, res)
			if res.Skipped {
				sum.Skipped++
				log.Info().Str("hotel", h.Name).Int64("id", res.HotelID).Msg("already present")
				return
			}
			sum.Inserted++
			log.Info().Str("hotel", h.Name).Int64("id", res.HotelID).Int("rooms", res.Rooms).Msg("import ok")
		}(h)
	}

	wg.Wait()
	return sum, nil
}

func (s *CatalogImporter) invalidateLists(ctx context.Context) {
	t, f := true, false
	for _, k := range []string{HotelsKey(nil), HotelsKey(&t), HotelsKey(&f), CatalogKey} {
		_ = s.cache.Del(ctx, k)
	}
}
