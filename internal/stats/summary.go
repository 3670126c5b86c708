package stats

import (
	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// Summarize computes ride totals, top locations, mean passengers and peak
// hours for a set of trips. An empty set yields a zero summary with empty lists.
func Summarize(trips []models.Trip) models.Summary {
	passengers := make([]float64, len(trips))
	for i, t := range trips {
		passengers[i] = float64(t.Passengers)
	}

	return models.Summary{
		TotalRides:    len(trips),
		TopPickups:    TopLocations(trips, func(t models.Trip) string { return t.PickUpNormalized }, models.SummaryTopLocations),
		TopDropoffs:   TopLocations(trips, func(t models.Trip) string { return t.DropOffNormalized }, models.SummaryTopLocations),
		AvgPassengers: Round(Mean(passengers), 2),
		PeakHours:     PeakHours(trips, models.SummaryPeakHours),
	}
}

// TopLocations ranks location names by ride count
func TopLocations(trips []models.Trip, name func(models.Trip) string, n int) []models.NameCount {
	top := TopN(CountBy(trips, name), n)
	out := make([]models.NameCount, len(top))
	for i, c := range top {
		out[i] = models.NameCount{Name: c.Key, Count: c.Count}
	}
	return out
}

// PeakHours ranks hours of day by ride count
func PeakHours(trips []models.Trip, n int) []models.HourCount {
	top := TopN(CountBy(trips, func(t models.Trip) int { return t.Hour }), n)
	out := make([]models.HourCount, len(top))
	for i, c := range top {
		out[i] = models.HourCount{Hour: c.Key, Count: c.Count}
	}
	return out
}

// WeekdaySummaries builds one summary per weekday present in the trips
func WeekdaySummaries(trips []models.Trip) map[string]models.WeekdaySummary {
	groups := make(map[string][]models.Trip)
	for _, t := range trips {
		groups[t.Day] = append(groups[t.Day], t)
	}
	out := make(map[string]models.WeekdaySummary, len(groups))
	for day, ts := range groups {
		out[day] = models.WeekdaySummary{Day: day, Summary: Summarize(ts)}
	}
	return out
}

// DailySummaries builds one summary per calendar date present in the trips
func DailySummaries(trips []models.Trip) map[string]models.DailySummary {
	groups := make(map[string][]models.Trip)
	for _, t := range trips {
		groups[t.Date] = append(groups[t.Date], t)
	}
	out := make(map[string]models.DailySummary, len(groups))
	for date, ts := range groups {
		out[date] = models.DailySummary{
			Date:    date,
			Weekday: ts[0].Day,
			Summary: Summarize(ts),
		}
	}
	return out
}
