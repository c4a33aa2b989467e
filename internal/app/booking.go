package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// BookingRequest carries a submission as received from the client.
type BookingRequest struct {
	RoomID     int64
	GuestName  string
	GuestEmail string
	CheckIn    string
	CheckOut   string
	Guests     string
}

// Quote is the validated, priced form of a request.
type Quote struct {
	Room     domain.RoomWithHotel
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Guests   int
	Total    domain.Cents
}

// BookingService validates and prices submissions, then persists them.
// Overlapping stays for the same room are not detected.
type BookingService struct {
	repo domain.HotelRepository
}

func NewBookingService(r domain.HotelRepository) *BookingService {
	return &BookingService{repo: r}
}

// ParseStay parses both dates and requires check-out strictly after check-in.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, int, error) {
	in, err := time.Parse(domain.DateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: check-in %q is not a YYYY-MM-DD date", domain.ErrInvalidInput, checkIn)
	}
	out, err := time.Parse(domain.DateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: check-out %q is not a YYYY-MM-DD date", domain.ErrInvalidInput, checkOut)
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: check-out must be after check-in", domain.ErrInvalidInput)
	}
	return in, out, domain.NightsBetween(in, out), nil
}

// ParseGuests reads the party size. Unparseable or non-positive values fall
// back to 1 and report defaulted=true instead of failing the request.
func ParseGuests(s string) (n int, defaulted bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1, true
	}
	return n, false
}

// Total is the nightly price times the number of nights.
func Total(nightly domain.Cents, nights int) domain.Cents {
	return nightly * domain.Cents(nights)
}

// Quote validates req against the current room and prices the stay.
func (s *BookingService) Quote(ctx context.Context, req BookingRequest) (Quote, error) {
	in, out, nights, err := ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return Quote{}, err
	}

	guests, defaulted := ParseGuests(req.Guests)
	if defaulted {
		log.Warn().Int64("room_id", req.RoomID).Str("guests", req.Guests).Msg("guest count unusable; defaulting to 1")
	}

	room, err := s.repo.GetRoom(ctx, req.RoomID)
	if err != nil {
		return Quote{}, err
	}
	if guests > room.MaxGuests {
		return Quote{}, fmt.Errorf("%w: %d guests exceed room capacity of %d", domain.ErrInvalidInput, guests, room.MaxGuests)
	}

	return Quote{
		Room:     room,
		CheckIn:  in,
		CheckOut: out,
		Nights:   nights,
		Guests:   guests,
		Total:    Total(room.PricePerNightCents, nights),
	}, nil
}

// Create prices and stores a booking, returning the new id and the quote it
// was stored with. The total is a snapshot; later price changes do not touch it.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (int64, Quote, error) {
	q, err := s.Quote(ctx, req)
	if err != nil {
		return 0, Quote{}, err
	}

	id, err := s.repo.CreateBooking(ctx, domain.NewBooking{
		RoomID:     req.RoomID,
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestEmail: strings.TrimSpace(req.GuestEmail),
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		Guests:     q.Guests,
		TotalCents: q.Total,
	})
	if err != nil {
		return 0, Quote{}, err
	}

	log.Info().
		Int64("booking_id", id).
		Int64("room_id", req.RoomID).
		Int("nights", q.Nights).
		Int64("total_cents", int64(q.Total)).
		Msg("booking created")
	return id, q, nil
}
