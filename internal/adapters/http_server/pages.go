package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/receipt"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type homeView struct {
	Hotels         []domain.Hotel
	FilterAll      bool
	FilterWithPool bool
	FilterNoPool   bool
}

type searchView struct {
	Rooms   []domain.RoomWithHotel
	City    string
	Guests  string
	HasPool string
}

type hotelView struct {
	Hotel domain.Hotel
	Rooms []domain.Room
}

type roomView struct {
	Room  domain.RoomWithHotel
	Today string
}

type bookingView struct {
	Booking    domain.Booking
	Room       domain.RoomWithHotel
	Nights     int
	ReceiptURL string
	QRURL      string
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	hasPool := parseAmenity(r.URL.Query().Get("has_pool"))
	hotels, err := h.Q.ListHotels(r.Context(), hasPool)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render(w, http.StatusOK, "home", homeView{
		Hotels:         hotels,
		FilterAll:      hasPool == nil,
		FilterWithPool: hasPool != nil && *hasPool,
		FilterNoPool:   hasPool != nil && !*hasPool,
	})
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	f := roomFilter(r)
	rooms, err := h.Q.SearchRooms(r.Context(), f)
	if err != nil {
		renderError(w, r, err)
		return
	}
	q := r.URL.Query()
	v := searchView{Rooms: rooms, City: q.Get("city"), Guests: q.Get("guests")}
	if f.HasPool != nil {
		v.HasPool = "0"
		if *f.HasPool {
			v.HasPool = "1"
		}
	}
	render(w, http.StatusOK, "search", v)
}

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	hotel, rooms, err := h.Q.HotelDetail(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render(w, http.StatusOK, "hotel_detail", hotelView{Hotel: hotel, Rooms: rooms})
}

func (h *Handlers) roomDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	room, err := h.Q.GetRoom(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render(w, http.StatusOK, "room_detail", roomView{Room: room, Today: time.Now().UTC().Format(domain.DateLayout)})
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		observability.ObserveBookingRejected("invalid")
		renderError(w, r, fmt.Errorf("%w: unreadable form", domain.ErrInvalidInput))
		return
	}

	bookingID, q, err := h.B.Create(r.Context(), app.BookingRequest{
		RoomID:     id,
		GuestName:  r.PostFormValue("guest_name"),
		GuestEmail: r.PostFormValue("guest_email"),
		CheckIn:    r.PostFormValue("check_in"),
		CheckOut:   r.PostFormValue("check_out"),
		Guests:     r.PostFormValue("guests"),
	})
	if err != nil {
		observability.ObserveBookingRejected(rejectReason(err))
		renderError(w, r, err)
		return
	}
	observability.ObserveBooking(q.Nights)
	http.Redirect(w, r, fmt.Sprintf("/booking/%d", bookingID), http.StatusSeeOther)
}

func (h *Handlers) bookingConfirmation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	b, room, err := h.Q.BookingDetail(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render(w, http.StatusOK, "booking_confirmation", bookingView{
		Booking:    b,
		Room:       room,
		Nights:     b.Nights(),
		ReceiptURL: fmt.Sprintf("/booking/%d/receipt.pdf", b.ID),
		QRURL:      fmt.Sprintf("/booking/%d/qr.png", b.ID),
	})
}

// bookingLink is the absolute confirmation URL printed on receipts.
func (h *Handlers) bookingLink(id int64) string {
	return fmt.Sprintf("%s/booking/%d", strings.TrimRight(h.BaseURL, "/"), id)
}

func (h *Handlers) bookingReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	b, room, err := h.Q.BookingDetail(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	pdf, err := receipt.PDF(b, room, h.bookingLink(b.ID))
	if err != nil {
		renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="booking-%d.pdf"`, b.ID))
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Int64("booking_id", b.ID).Msg("write receipt failed")
	}
}

func (h *Handlers) bookingQR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	b, err := h.Q.GetBooking(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	png, err := receipt.QR(h.bookingLink(b.ID), 256)
	if err != nil {
		renderError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Int64("booking_id", b.ID).Msg("write qr failed")
	}
}
