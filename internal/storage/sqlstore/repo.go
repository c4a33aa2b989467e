package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// timestampLayout matches SQLite's CURRENT_TIMESTAMP text form.
const timestampLayout = "2006-01-02 15:04:05"

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Repo is the shared store handle. *sql.DB is safe for concurrent use, so a
// single Repo is injected into every request path.
type Repo struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sql.DB, d Dialect) *Repo { return &Repo{db: db, dialect: d, now: time.Now} }

// WithClock overrides the clock used for booking creation timestamps.
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

func (r *Repo) Dialect() Dialect { return r.dialect }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *Repo) Close() error { return r.db.Close() }

// ---- hotels ----

func scanHotel(s rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var img sql.NullString
	if err := s.Scan(&h.ID, &h.Name, &h.Description, &h.Address, &h.City, &h.Country,
		&h.StarRating, &h.HasPool, &img); err != nil {
		return domain.Hotel{}, err
	}
	h.ImageURL = strPtr(img)
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context, hasPool *bool) ([]domain.Hotel, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if hasPool == nil {
		rows, err = r.db.QueryContext(ctx, listHotelsSQL)
	} else {
		rows, err = r.db.QueryContext(ctx, listHotelsByPoolSQL, *hasPool)
	}
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, fmt.Errorf("get hotel %d: %w", id, err)
	}
	return h, nil
}

func (r *Repo) CountHotels(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countHotelsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hotels: %w", err)
	}
	return n, nil
}

func (r *Repo) FindHotelID(ctx context.Context, name, city string) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, findHotelIDSQL, name, city).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("find hotel %q: %w", name, err)
	}
	return id, nil
}

// InsertHotel writes a hotel and all of its rooms in one transaction.
func (r *Repo) InsertHotel(ctx context.Context, ch domain.CatalogHotel) (domain.Hotel, []domain.Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Hotel{}, nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	h, rooms, err := insertHotelTx(ctx, tx, ch)
	if err != nil {
		return domain.Hotel{}, nil, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Hotel{}, nil, fmt.Errorf("commit hotel %q: %w", ch.Name, err)
	}
	return h, rooms, nil
}

func insertHotelTx(ctx context.Context, tx *sql.Tx, ch domain.CatalogHotel) (domain.Hotel, []domain.Room, error) {
	res, err := tx.ExecContext(ctx, insertHotelSQL,
		ch.Name, ch.Description, ch.Address, ch.City, ch.Country,
		ch.StarRating, ch.HasPool, valStr(ch.ImageURL),
	)
	if err != nil {
		return domain.Hotel{}, nil, fmt.Errorf("insert hotel %q: %w", ch.Name, err)
	}
	hotelID, err := res.LastInsertId()
	if err != nil {
		return domain.Hotel{}, nil, fmt.Errorf("insert hotel %q: %w", ch.Name, err)
	}

	rooms := make([]domain.Room, 0, len(ch.Rooms))
	for _, cr := range ch.Rooms {
		if cr.PricePerNightCents < 0 || cr.MaxGuests < 0 {
			return domain.Hotel{}, nil, fmt.Errorf("%w: room %q has negative price or capacity", domain.ErrInvalidInput, cr.Name)
		}
		res, err := tx.ExecContext(ctx, insertRoomSQL,
			hotelID, cr.Name, cr.Description, cr.RoomType,
			int64(cr.PricePerNightCents), cr.MaxGuests, valStr(cr.ImageURL),
		)
		if err != nil {
			return domain.Hotel{}, nil, fmt.Errorf("insert room %q: %w", cr.Name, err)
		}
		roomID, err := res.LastInsertId()
		if err != nil {
			return domain.Hotel{}, nil, fmt.Errorf("insert room %q: %w", cr.Name, err)
		}
		rooms = append(rooms, domain.Room{
			ID:                 roomID,
			HotelID:            hotelID,
			Name:               cr.Name,
			Description:        cr.Description,
			RoomType:           cr.RoomType,
			PricePerNightCents: cr.PricePerNightCents,
			MaxGuests:          cr.MaxGuests,
			ImageURL:           cr.ImageURL,
		})
	}

	h := domain.Hotel{
		ID:          hotelID,
		Name:        ch.Name,
		Description: ch.Description,
		Address:     ch.Address,
		City:        ch.City,
		Country:     ch.Country,
		StarRating:  ch.StarRating,
		HasPool:     ch.HasPool,
		ImageURL:    ch.ImageURL,
	}
	return h, rooms, nil
}

// ---- rooms ----

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsByHotelSQL, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms for hotel %d: %w", hotelID, err)
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		var rm domain.Room
		var price int64
		var img sql.NullString
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.Name, &rm.Description, &rm.RoomType,
			&price, &rm.MaxGuests, &img); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rm.PricePerNightCents = domain.Cents(price)
		rm.ImageURL = strPtr(img)
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms for hotel %d: %w", hotelID, err)
	}
	return out, nil
}

func scanRoomWithHotel(s rowScanner) (domain.RoomWithHotel, error) {
	var rw domain.RoomWithHotel
	var price int64
	var img sql.NullString
	if err := s.Scan(
		&rw.ID, &rw.HotelID, &rw.Name, &rw.Description, &rw.RoomType,
		&price, &rw.MaxGuests, &img,
		&rw.HotelName, &rw.HotelCity, &rw.HotelHasPool,
	); err != nil {
		return domain.RoomWithHotel{}, err
	}
	rw.PricePerNightCents = domain.Cents(price)
	rw.ImageURL = strPtr(img)
	return rw, nil
}

// ListRoomsWithHotel returns every room joined with its hotel, cheapest first.
func (r *Repo) ListRoomsWithHotel(ctx context.Context) ([]domain.RoomWithHotel, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsWithHotelSQL)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	out := []domain.RoomWithHotel{}
	for rows.Next() {
		rw, err := scanRoomWithHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return out, nil
}

// SearchRooms filters the full joined set in memory. Fine for catalogs of
// tens of rooms; push the predicates into SQL before growing past that.
func (r *Repo) SearchRooms(ctx context.Context, f domain.RoomFilter) ([]domain.RoomWithHotel, error) {
	rows, err := r.ListRoomsWithHotel(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(rows), nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.RoomWithHotel, error) {
	rw, err := scanRoomWithHotel(r.db.QueryRowContext(ctx, getRoomSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RoomWithHotel{}, domain.ErrNotFound
		}
		return domain.RoomWithHotel{}, fmt.Errorf("get room %d: %w", id, err)
	}
	return rw, nil
}

// ---- bookings ----

// CreateBooking inserts one row and returns its id. It performs no overlap or
// capacity checks.
func (r *Repo) CreateBooking(ctx context.Context, b domain.NewBooking) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.RoomID,
		b.GuestName,
		b.GuestEmail,
		b.CheckIn.Format(domain.DateLayout),
		b.CheckOut.Format(domain.DateLayout),
		b.Guests,
		int64(b.TotalCents),
		r.now().UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return id, nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	var (
		b                            domain.Booking
		checkIn, checkOut, createdAt any
		total                        int64
	)
	err := r.db.QueryRowContext(ctx, getBookingSQL, id).Scan(
		&b.ID, &b.RoomID, &b.GuestName, &b.GuestEmail,
		&checkIn, &checkOut, &b.Guests, &total, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking %d: %w", id, err)
	}
	if b.CheckIn, err = storedDate(checkIn); err != nil {
		return domain.Booking{}, fmt.Errorf("booking %d check_in: %w", id, err)
	}
	if b.CheckOut, err = storedDate(checkOut); err != nil {
		return domain.Booking{}, fmt.Errorf("booking %d check_out: %w", id, err)
	}
	// NULL or unreadable creation times stay zero
	if ts, err := storedTime(createdAt); err == nil {
		b.CreatedAt = ts
	}
	b.TotalCents = domain.Cents(total)
	return b, nil
}

// Text forms a date or timestamp column may hold. Stores created with
// DATE/DATETIME columns come back from the SQLite driver as time.Time instead.
var storedLayouts = []string{
	domain.DateLayout,
	timestampLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// storedTime reads a scanned date/timestamp value. A NULL is the zero time.
func storedTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case []byte:
		s = string(t)
	case string:
		s = t
	default:
		return time.Time{}, fmt.Errorf("unexpected %T", v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range storedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// storedDate is storedTime truncated to the calendar date; NULL is an error.
func storedDate(v any) (time.Time, error) {
	if v == nil {
		return time.Time{}, errors.New("missing date")
	}
	t, err := storedTime(v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
