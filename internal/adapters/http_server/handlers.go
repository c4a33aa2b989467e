package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
	// Store backs /healthz; nil reports healthy without checking.
	Store Pinger
	// BaseURL is the public origin used in receipt links.
	BaseURL string
	// Limiter throttles booking submissions; nil disables it.
	Limiter *BookingLimiter
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	staticFS, _ := fs.Sub(assets, "static")
	s.mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.Get("/", h.home)
	s.mux.Get("/search", h.search)
	s.mux.Get("/hotel/{id}", h.hotelDetail)
	s.mux.Get("/room/{id}", h.roomDetail)
	s.mux.With(h.Limiter.Middleware).Post("/room/{id}/book", h.book)
	s.mux.Get("/booking/{id}", h.bookingConfirmation)
	s.mux.Get("/booking/{id}/receipt.pdf", h.bookingReceipt)
	s.mux.Get("/booking/{id}/qr.png", h.bookingQR)

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/hotels", h.apiListHotels)
		r.Get("/hotels/{id}", h.apiGetHotel)
		r.Get("/rooms", h.apiSearchRooms)
		r.Get("/rooms/{id}", h.apiGetRoom)
		r.With(h.Limiter.Middleware).Post("/rooms/{id}/bookings", h.apiCreateBooking)
		r.Get("/bookings/{id}", h.apiGetBooking)
	})
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// rejectReason labels a failed booking for metrics.
func rejectReason(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseAmenity reads a tri-state flag: "1|true|yes" is true, "0|false|no" is
// false, anything else (including absence) means no constraint.
func parseAmenity(v string) *bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		t := true
		return &t
	case "0", "false", "no":
		f := false
		return &f
	}
	return nil
}

// roomFilter builds a search filter from query parameters. Blank or
// non-numeric guests impose no constraint.
func roomFilter(r *http.Request) domain.RoomFilter {
	q := r.URL.Query()
	var f domain.RoomFilter
	if city := strings.TrimSpace(q.Get("city")); city != "" {
		f.City = &city
	}
	if g, err := strconv.Atoi(strings.TrimSpace(q.Get("guests"))); err == nil && g > 0 {
		f.Guests = &g
	}
	f.HasPool = parseAmenity(q.Get("has_pool"))
	return f
}
