package domain_test

import (
	"testing"

	"hotel_booking/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func candidates() []domain.RoomWithHotel {
	return []domain.RoomWithHotel{
		{Room: domain.Room{ID: 1, MaxGuests: 2, PricePerNightCents: 18900}, HotelCity: "New York", HotelHasPool: true},
		{Room: domain.Room{ID: 2, MaxGuests: 4, PricePerNightCents: 29900}, HotelCity: "Miami", HotelHasPool: true},
		{Room: domain.Room{ID: 3, MaxGuests: 6, PricePerNightCents: 42900}, HotelCity: "Aspen", HotelHasPool: false},
	}
}

func ids(rs []domain.RoomWithHotel) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRoomFilter_Apply(t *testing.T) {
	cases := []struct {
		name string
		f    domain.RoomFilter
		want []int64
	}{
		{"no criteria", domain.RoomFilter{}, []int64{1, 2, 3}},
		{"empty city passes", domain.RoomFilter{City: ptr("")}, []int64{1, 2, 3}},
		{"city exact", domain.RoomFilter{City: ptr("Miami")}, []int64{2}},
		{"city lower", domain.RoomFilter{City: ptr("new york")}, []int64{1}},
		{"city upper", domain.RoomFilter{City: ptr("NEW YORK")}, []int64{1}},
		{"city is not a substring match", domain.RoomFilter{City: ptr("York")}, []int64{}},
		{"guests zero", domain.RoomFilter{Guests: ptr(0)}, []int64{1, 2, 3}},
		{"guests at capacity", domain.RoomFilter{Guests: ptr(4)}, []int64{2, 3}},
		{"guests above all", domain.RoomFilter{Guests: ptr(7)}, []int64{}},
		{"pool true", domain.RoomFilter{HasPool: ptr(true)}, []int64{1, 2}},
		{"pool false", domain.RoomFilter{HasPool: ptr(false)}, []int64{3}},
		{"all combined", domain.RoomFilter{City: ptr("miami"), Guests: ptr(3), HasPool: ptr(true)}, []int64{2}},
		{"combined mismatch", domain.RoomFilter{City: ptr("aspen"), HasPool: ptr(true)}, []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(tc.f.Apply(candidates()))
			if !equalIDs(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRoomFilter_GuestsNeverExceedCapacity(t *testing.T) {
	for g := 0; g <= 8; g++ {
		for _, r := range (domain.RoomFilter{Guests: ptr(g)}).Apply(candidates()) {
			if r.MaxGuests < g {
				t.Fatalf("guests=%d returned room %d with capacity %d", g, r.ID, r.MaxGuests)
			}
		}
	}
}
