package receipt_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/adapters/receipt"
	"hotel_booking/internal/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestQR_IsPNG(t *testing.T) {
	b, err := receipt.QR("http://localhost:3000/booking/1", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestPDF_IsPDF(t *testing.T) {
	b := domain.Booking{
		ID: 7, RoomID: 1, GuestName: "Zoë Müller", GuestEmail: "zoe@example.com",
		CheckIn:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalCents: 89700,
	}
	room := domain.RoomWithHotel{
		Room:      domain.Room{ID: 1, Name: "Deluxe King", RoomType: "deluxe", PricePerNightCents: 29900, MaxGuests: 2},
		HotelName: "Grand Plaza Hotel", HotelCity: "New York",
	}

	out, err := receipt.PDF(b, room, "http://localhost:3000/booking/7")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}
