package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar-date format for stays.
const DateLayout = "2006-01-02"

// Cents is an amount in minor currency units.
type Cents int64

// String renders the amount as dollars, e.g. 29900 -> "$299.00".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, int64(c)/100, int64(c)%100)
}

type Hotel struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	StarRating  int     `json:"star_rating"`
	HasPool     bool    `json:"has_pool"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Stars is the rating as a row of star glyphs.
func (h Hotel) Stars() string {
	if h.StarRating <= 0 {
		return ""
	}
	return strings.Repeat("★", h.StarRating)
}

type Room struct {
	ID                 int64   `json:"id"`
	HotelID            int64   `json:"hotel_id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	RoomType           string  `json:"room_type"`
	PricePerNightCents Cents   `json:"price_per_night_cents"`
	MaxGuests          int     `json:"max_guests"`
	ImageURL           *string `json:"image_url,omitempty"`
}

// RoomWithHotel is a read-only projection of a room joined with its hotel.
// It is computed per query and never written back.
type RoomWithHotel struct {
	Room
	HotelName    string `json:"hotel_name"`
	HotelCity    string `json:"hotel_city"`
	HotelHasPool bool   `json:"hotel_has_pool"`
}

type Booking struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalCents Cents     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// Nights is the stay length in whole calendar days.
func (b Booking) Nights() int { return NightsBetween(b.CheckIn, b.CheckOut) }

// NightlyRate is the per-night price the booking was priced at, derived from
// the stored total so later room price changes do not affect it.
func (b Booking) NightlyRate() Cents {
	n := b.Nights()
	if n <= 0 {
		return b.TotalCents
	}
	return b.TotalCents / Cents(n)
}

// NewBooking is the write model handed to the repository. Identity and
// creation time are assigned by the store.
type NewBooking struct {
	RoomID     int64
	GuestName  string
	GuestEmail string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalCents Cents
}

// NightsBetween counts calendar days from checkIn to checkOut. Both are
// truncated to their UTC date first so clock times never leak into the count.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// CatalogHotel is a hotel with its rooms as loaded by seeding and the importer.
type CatalogHotel struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	Country     string        `json:"country"`
	StarRating  int           `json:"star_rating"`
	HasPool     bool          `json:"has_pool"`
	ImageURL    *string       `json:"image_url,omitempty"`
	Rooms       []CatalogRoom `json:"rooms"`
}

type CatalogRoom struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	RoomType           string  `json:"room_type"`
	PricePerNightCents Cents   `json:"price_per_night_cents"`
	MaxGuests          int     `json:"max_guests"`
	ImageURL           *string `json:"image_url,omitempty"`
}

type Catalog struct {
	Hotels []CatalogHotel `json:"hotels"`
}
