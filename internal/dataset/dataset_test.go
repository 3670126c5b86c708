package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
)

const tripsCSV = `Trip ID,Booking User ID,Pick Up Latitude,Pick Up Longitude,Drop Off Latitude,Drop Off Longitude,Pick Up Address,Drop Off Address,Trip Date and Time,Total Passengers,Age
1,u1,30.28,-97.74,30.2835,-97.7385,West Campus,Moody Center,8/15/2025 12:05,3,22
2,u2,30.28,-97.74,30.2835,-97.7385,West Campus,Moody Center,8/15/2025 12:30,8,
3,u3,30.28,-97.74,30.26,-97.74,West Campus,Downtown,8/16/2025 21:10,2,40
4,u4,30.28,-97.74,30.26,-97.74,West Campus,Downtown,garbage,2,30
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuild_FromCSV(t *testing.T) {
	ds, err := Build(context.Background(), Options{DataPath: writeFile(t, "trips.csv", tripsCSV)})
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	require.Equal(t, SourceCSV, ds.Source())

	fri, ok := ds.Weekday("friday")
	require.True(t, ok)
	require.Equal(t, 2, fri.TotalRides)
	require.Equal(t, 5.5, fri.AvgPassengers)

	sat, ok := ds.Daily("2025-08-16")
	require.True(t, ok)
	require.Equal(t, "saturday", sat.Weekday)

	_, ok = ds.Weekday("monday")
	require.False(t, ok)

	p := ds.Demand().Predict("Friday", 12)
	require.True(t, p.Found())
	require.Equal(t, 2, p.Count)

	require.Len(t, ds.WeekdaySummaries(), 2)
	require.Equal(t, "friday", ds.WeekdaySummaries()[0].Day)
	require.Equal(t, "2025-08-15", ds.DailySummaries()[0].Date)
}

func TestBuild_DemandFile(t *testing.T) {
	ds, err := Build(context.Background(), Options{
		DataPath:   writeFile(t, "trips.csv", tripsCSV),
		DemandPath: writeFile(t, "demand.csv", "day,hour,trip_count\nFriday,18,42\n"),
	})
	require.NoError(t, err)

	require.Equal(t, 42, ds.Demand().Predict("friday", 18).Count)
	require.Equal(t, predictor.StatusHourNotFound, ds.Demand().Predict("friday", 12).Status)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(context.Background(), Options{DataPath: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, err)

	_, err = Build(context.Background(), Options{})
	require.Error(t, err)

	header := "Trip Date and Time,Total Passengers\n"
	_, err = Build(context.Background(), Options{DataPath: writeFile(t, "empty.csv", header)})
	require.Error(t, err)
}

func TestBuild_Cache(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache", "trips.db")

	first, err := Build(context.Background(), Options{
		DataPath:  writeFile(t, "trips.csv", tripsCSV),
		CachePath: cache,
	})
	require.NoError(t, err)
	require.Equal(t, SourceCSV, first.Source())

	second, err := Build(context.Background(), Options{
		CachePath:   cache,
		PreferCache: true,
	})
	require.NoError(t, err)
	require.Equal(t, SourceCache, second.Source())
	require.Equal(t, first.Trips(), second.Trips())
	require.Equal(t, first.WeekdaySummaries(), second.WeekdaySummaries())
}

func TestDataset_Context(t *testing.T) {
	ds, err := Build(context.Background(), Options{DataPath: writeFile(t, "trips.csv", tripsCSV)})
	require.NoError(t, err)

	c := ds.Context()
	require.Equal(t, 3, c.Rows)
	require.Equal(t, "2025-08-15", c.FirstDate)
	require.Equal(t, "2025-08-16", c.LastDate)
	require.Equal(t, []string{"friday", "saturday"}, c.Days)
	require.Contains(t, c.Hotspots, "Moody Center")
	require.Contains(t, c.String(), "3 rows from 2025-08-15 to 2025-08-16")
}

func TestNew(t *testing.T) {
	ds := New(nil, nil)
	require.Equal(t, 0, ds.Len())
	require.Empty(t, ds.WeekdaySummaries())
	require.Equal(t, predictor.StatusDayNotFound, ds.Demand().Predict("friday", 12).Status)
}
