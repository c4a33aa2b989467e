//go:build integration

package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/sqlstore"
)

// startMySQL runs an isolated MySQL container and returns a DSN for it.
func startMySQL(t *testing.T) string {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?charset=utf8mb4&loc=UTC", resource.GetPort("3306/tcp"))
	if err := pool.Retry(func() error {
		db, e := sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		defer db.Close()
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	return dsn
}

func TestRepo_MySQL_SeedSearchBook(t *testing.T) {
	dsn := startMySQL(t)
	ctx := context.Background()

	repo, err := sqlstore.Open(ctx, sqlstore.MySQL, dsn)
	require.NoError(t, err)
	defer repo.Close()

	// second initialization: migration fails harmlessly, no reseed
	again, err := sqlstore.Open(ctx, sqlstore.MySQL, dsn)
	require.NoError(t, err)
	defer again.Close()
	n, err := again.CountHotels(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pool, err := repo.ListHotels(ctx, ptr(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Grand Plaza Hotel", "Seaside Resort"}, hotelNames(pool))

	rooms, err := repo.SearchRooms(ctx, domain.RoomFilter{City: ptr("new york"), Guests: ptr(2)})
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.True(t, rooms[0].HotelHasPool)

	id, err := repo.CreateBooking(ctx, domain.NewBooking{
		RoomID:     rooms[1].ID,
		GuestName:  "Grace Hopper",
		GuestEmail: "grace@example.com",
		CheckIn:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalCents: rooms[1].PricePerNightCents * 3,
	})
	require.NoError(t, err)

	b, err := repo.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rooms[1].ID, b.RoomID)
	assert.Equal(t, rooms[1].PricePerNightCents*3, b.TotalCents)
	assert.Equal(t, 3, b.Nights())

	_, err = repo.GetRoom(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
