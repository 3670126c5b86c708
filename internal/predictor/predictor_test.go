package predictor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

func testTable() *Table {
	return NewTable([]models.DemandRow{
		{Day: "Friday", Hour: 12, TripCount: 40},
		{Day: "friday", Hour: 18, TripCount: 75},
		{Day: "saturday", Hour: 22, TripCount: 90},
	})
}

func TestTable_Predict(t *testing.T) {
	table := testTable()

	p := table.Predict("FRIDAY", 18)
	require.True(t, p.Found())
	require.Equal(t, 75, p.Count)
	require.Equal(t, "75", p.Message())

	p = table.Predict("saturday", 3)
	require.Equal(t, StatusHourNotFound, p.Status)
	require.Equal(t, "No data for saturday at hour 3.", p.Message())

	p = table.Predict("Funday", 3)
	require.Equal(t, StatusDayNotFound, p.Status)
	require.Equal(t, "No data for funday.", p.Message())
}

func TestTable_FromTrips(t *testing.T) {
	trips := []models.Trip{
		{Day: "friday", Hour: 12},
		{Day: "friday", Hour: 12},
		{Day: "friday", Hour: 12},
		{Day: "friday", Hour: 13},
		{Day: "friday", Hour: 13},
	}
	table := FromTrips(trips)
	require.Equal(t, 3, table.Predict("friday", 12).Count)
	require.Equal(t, 2, table.Predict("friday", 13).Count)
	require.Equal(t, StatusHourNotFound, table.Predict("friday", 14).Status)
	require.Equal(t, StatusDayNotFound, table.Predict("monday", 12).Status)
}

func TestTable_DaysAndRows(t *testing.T) {
	table := NewTable([]models.DemandRow{
		{Day: "sunday", Hour: 1, TripCount: 1},
		{Day: "monday", Hour: 5, TripCount: 2},
		{Day: "monday", Hour: 2, TripCount: 3},
		{Day: "monday", Hour: 2, TripCount: 4},
	})
	require.Equal(t, []string{"monday", "sunday"}, table.Days())
	require.Equal(t, []models.DemandRow{
		{Day: "monday", Hour: 2, TripCount: 7},
		{Day: "monday", Hour: 5, TripCount: 2},
		{Day: "sunday", Hour: 1, TripCount: 1},
	}, table.Rows())
}

func TestParseDayHour(t *testing.T) {
	tests := []struct {
		in   string
		day  string
		hour int
	}{
		{"Friday 6 PM", "friday", 18},
		{"friday 12 PM", "friday", 12},
		{"Saturday 9 am", "saturday", 9},
		{"monday 6pm", "monday", 18},
		{"monday", "monday", 12},
		{"", "friday", 12},
		{"   ", "friday", 12},
		{"tuesday noon", "tuesday", 12},
		{"sunday 15", "sunday", 15},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			day, hour := ParseDayHour(tt.in)
			require.Equal(t, tt.day, day)
			require.Equal(t, tt.hour, hour)
		})
	}
}
