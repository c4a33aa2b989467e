package domain

import "strings"

// RoomFilter holds the optional search criteria. A nil field means the
// criterion was not supplied and always passes.
type RoomFilter struct {
	City    *string
	Guests  *int
	HasPool *bool
}

// Match ANDs the supplied criteria against one candidate.
func (f RoomFilter) Match(r RoomWithHotel) bool {
	// empty city is "no filter", not "match empty city"
	if f.City != nil && *f.City != "" && !strings.EqualFold(r.HotelCity, *f.City) {
		return false
	}
	if f.Guests != nil && *f.Guests > r.MaxGuests {
		return false
	}
	if f.HasPool != nil && *f.HasPool != r.HotelHasPool {
		return false
	}
	return true
}

// Apply keeps candidates satisfying Match, preserving input order.
func (f RoomFilter) Apply(rows []RoomWithHotel) []RoomWithHotel {
	out := make([]RoomWithHotel, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
