package dataset

import (
	"sort"
	"time"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

// Dataset is the enriched trip table plus its precomputed summaries.
// It is immutable after construction and safe for concurrent readers.
type Dataset struct {
	trips    []models.Trip
	weekday  map[string]models.WeekdaySummary
	daily    map[string]models.DailySummary
	demand   *predictor.Table
	hotspots []string
	source   string
	loadedAt time.Time
}

// New builds a dataset from already enriched trips. A nil demand table is
// derived from the trips.
func New(trips []models.Trip, demand *predictor.Table) *Dataset {
	if demand == nil {
		demand = predictor.FromTrips(trips)
	}
	return &Dataset{
		trips:    trips,
		weekday:  stats.WeekdaySummaries(trips),
		daily:    stats.DailySummaries(trips),
		demand:   demand,
		source:   SourceMemory,
		loadedAt: time.Now().UTC(),
	}
}

// Trips returns the enriched trip table. Callers must not modify it.
func (d *Dataset) Trips() []models.Trip {
	return d.trips
}

// Len returns the number of trips
func (d *Dataset) Len() int {
	return len(d.trips)
}

// Weekday returns the summary for a lowercase weekday name
func (d *Dataset) Weekday(day string) (models.WeekdaySummary, bool) {
	s, ok := d.weekday[day]
	return s, ok
}

// Daily returns the summary for a YYYY-MM-DD date
func (d *Dataset) Daily(date string) (models.DailySummary, bool) {
	s, ok := d.daily[date]
	return s, ok
}

// WeekdaySummaries returns all weekday summaries in calendar order
func (d *Dataset) WeekdaySummaries() []models.WeekdaySummary {
	out := make([]models.WeekdaySummary, 0, len(d.weekday))
	for _, day := range sortedDays(d.weekday) {
		out = append(out, d.weekday[day])
	}
	return out
}

// DailySummaries returns all daily summaries ordered by date
func (d *Dataset) DailySummaries() []models.DailySummary {
	dates := make([]string, 0, len(d.daily))
	for date := range d.daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	out := make([]models.DailySummary, len(dates))
	for i, date := range dates {
		out[i] = d.daily[date]
	}
	return out
}

// Demand returns the point-lookup demand table
func (d *Dataset) Demand() *predictor.Table {
	return d.demand
}

// Source describes where the trips were loaded from
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was built
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

var calendar = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func sortedDays(m map[string]models.WeekdaySummary) []string {
	days := make([]string, 0, len(m))
	for _, day := range calendar {
		if _, ok := m[day]; ok {
			days = append(days, day)
		}
	}
	return days
}
