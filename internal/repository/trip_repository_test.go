package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rideshareai/rideshare-backend-go/internal/database"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

func openTestDB(t *testing.T) *TripRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "cache.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTripRepository(db)
}

func TestTripRepository_RoundTrip(t *testing.T) {
	repo := openTestDB(t)
	age := 29.0
	trips := []models.Trip{
		{
			TripID: "1", BookingUserID: "u1",
			PickUpLat: 30.28, PickUpLng: -97.74, DropOffLat: 30.2835, DropOffLng: -97.7385,
			PickUpAddress: "West Campus", DropOffAddress: "Moody Center, Austin",
			Time: time.Date(2025, 8, 15, 12, 5, 0, 0, time.UTC), Passengers: 7, Age: &age,
			Hour: 12, Date: "2025-08-15", Day: "friday", LargeGroup: true, AgeGroup: "25-34",
			PickUpNormalized: "West Campus", DropOffNormalized: "Moody Center",
		},
		{
			TripID: "2", Time: time.Date(2025, 8, 16, 1, 0, 0, 0, time.UTC), Passengers: 1,
			Hour: 1, Date: "2025-08-16", Day: "saturday", AgeGroup: "unknown",
		},
	}

	require.NoError(t, repo.ReplaceAll(trips))
	n, err := repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got, err := repo.LoadAll()
	require.NoError(t, err)
	require.Equal(t, trips, got)

	// replacing drops the previous contents
	require.NoError(t, repo.ReplaceAll(trips[:1]))
	got, err = repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestTripRepository_Meta(t *testing.T) {
	repo := openTestDB(t)

	v, err := repo.GetMeta("source")
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, repo.SetMeta("source", "data/a.csv"))
	require.NoError(t, repo.SetMeta("source", "data/b.csv"))
	v, err = repo.GetMeta("source")
	require.NoError(t, err)
	require.Equal(t, "data/b.csv", v)
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := database.Open(database.Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.Open(database.Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&n))
	require.Equal(t, 2, n)
}
