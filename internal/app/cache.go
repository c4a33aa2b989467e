package app

import (
	"context"
	"fmt"
)

// NopCache is used when no cache backend is configured; every read misses.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, int) error    { return nil }
func (NopCache) Del(context.Context, string) error              { return nil }

// Cache keys. Only immutable reference data is cached; bookings never are.
const CatalogKey = "rooms:catalog"

func HotelsKey(hasPool *bool) string {
	switch {
	case hasPool == nil:
		return "hotels:all"
	case *hasPool:
		return "hotels:pool"
	default:
		return "hotels:nopool"
	}
}

func HotelKey(id int64) string      { return fmt.Sprintf("hotel:%d", id) }
func HotelRoomsKey(id int64) string { return fmt.Sprintf("hotel:%d:rooms", id) }
func RoomKey(id int64) string       { return fmt.Sprintf("room:%d", id) }
