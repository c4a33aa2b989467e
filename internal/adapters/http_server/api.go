package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type hotelDetailResponse struct {
	Hotel domain.Hotel  `json:"hotel"`
	Rooms []domain.Room `json:"rooms"`
}

type bookingRequest struct {
	GuestName  string          `json:"guest_name"`
	GuestEmail string          `json:"guest_email"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Guests     json.RawMessage `json:"guests"`
}

// guestsText passes a number or string guests value through as text so the
// JSON API applies the same defaulting as the form.
func guestsText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// bookingJSON renders stay dates as plain calendar dates.
type bookingJSON struct {
	ID           int64        `json:"id"`
	RoomID       int64        `json:"room_id"`
	GuestName    string       `json:"guest_name"`
	GuestEmail   string       `json:"guest_email"`
	CheckIn      string       `json:"check_in"`
	CheckOut     string       `json:"check_out"`
	Guests       int          `json:"guests"`
	Nights       int          `json:"nights"`
	TotalCents   domain.Cents `json:"total_cents"`
	TotalDisplay string       `json:"total_display"`
	CreatedAt    string       `json:"created_at"`
}

type bookingResponse struct {
	Booking bookingJSON          `json:"booking"`
	Room    domain.RoomWithHotel `json:"room"`
}

func toBookingJSON(b domain.Booking) bookingJSON {
	return bookingJSON{
		ID:           b.ID,
		RoomID:       b.RoomID,
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		CheckIn:      b.CheckIn.Format(domain.DateLayout),
		CheckOut:     b.CheckOut.Format(domain.DateLayout),
		Guests:       b.Guests,
		Nights:       b.Nights(),
		TotalCents:   b.TotalCents,
		TotalDisplay: b.TotalCents.String(),
		CreatedAt:    b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeErrorProblem maps a service error to a problem response.
func writeErrorProblem(w http.ResponseWriter, r *http.Request, err error) {
	switch status := statusFor(err); status {
	case http.StatusBadRequest:
		writeProblem(w, status, "Bad Request", err.Error())
	case http.StatusNotFound:
		writeProblem(w, status, "Not Found", "resource not found")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("api request failed")
		writeProblem(w, status, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with a weak ETag, answering 304 when the
// client already holds the same representation.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write JSON body failed")
	}
}

func (h *Handlers) apiListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context(), parseAmenity(r.URL.Query().Get("has_pool")))
	if err != nil {
		writeErrorProblem(w, r, err)
		return
	}
	writeCached(w, r, hotels)
}

func (h *Handlers) apiGetHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	hotel, rooms, err := h.Q.HotelDetail(r.Context(), id)
	if err != nil {
		writeErrorProblem(w, r, err)
		return
	}
	writeCached(w, r, hotelDetailResponse{Hotel: hotel, Rooms: rooms})
}

func (h *Handlers) apiSearchRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Q.SearchRooms(r.Context(), roomFilter(r))
	if err != nil {
		writeErrorProblem(w, r, err)
		return
	}
	writeCached(w, r, rooms)
}

func (h *Handlers) apiGetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	room, err := h.Q.GetRoom(r.Context(), id)
	if err != nil {
		writeErrorProblem(w, r, err)
		return
	}
	writeCached(w, r, room)
}

func (h *Handlers) apiCreateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	var in bookingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		observability.ObserveBookingRejected("invalid")
		writeProblem(w, http.StatusBadRequest, "Bad Request", "body must be a JSON booking object")
		return
	}

	bookingID, q, err := h.B.Create(r.Context(), app.BookingRequest{
		RoomID:     id,
		GuestName:  in.GuestName,
		GuestEmail: in.GuestEmail,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Guests:     guestsText(in.Guests),
	})
	if err != nil {
		observability.ObserveBookingRejected(rejectReason(err))
		writeErrorProblem(w, r, err)
		return
	}
	observability.ObserveBooking(q.Nights)

	b, err := h.Q.GetBooking(r.Context(), bookingID)
	if err != nil {
		writeErrorProblem(w, r, fmt.Errorf("reload booking %d: %w", bookingID, err))
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/bookings/%d", bookingID))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(bookingResponse{Booking: toBookingJSON(b), Room: q.Room}); err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("write booking response failed")
	}
}

func (h *Handlers) apiGetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	b, room, err := h.Q.BookingDetail(r.Context(), id)
	if err != nil {
		writeErrorProblem(w, r, err)
		return
	}
	writeCached(w, r, bookingResponse{Booking: toBookingJSON(b), Room: room})
}
