package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/domain"
)

func TestSeed_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "hotel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	_, err = repo.db.ExecContext(ctx, `DELETE FROM rooms`)
	require.NoError(t, err)
	_, err = repo.db.ExecContext(ctx, `DELETE FROM hotels`)
	require.NoError(t, err)

	broken := domain.Catalog{Hotels: []domain.CatalogHotel{
		SeedCatalog.Hotels[0],
		{Name: "Bad", City: "Nowhere", StarRating: 3, Rooms: []domain.CatalogRoom{{Name: "x", PricePerNightCents: -1}}},
	}}
	err = repo.seed(ctx, broken)
	require.Error(t, err)

	n, err := repo.CountHotels(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a failed seed must leave the store empty")

	// the next start seeds the full catalog
	require.NoError(t, repo.Init(ctx))
	n, err = repo.CountHotels(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedCatalog.Hotels), n)
}
