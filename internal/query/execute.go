package query

import (
	"fmt"
	"strconv"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

// Result is the computed value of a plan
type Result struct {
	Operation string `json:"operation"`
	Plan      Plan   `json:"plan"`
	Value     any    `json:"value"`
}

// LargeGroupShare reports how many trips carried a large group
type LargeGroupShare struct {
	LargeGroups int     `json:"large_groups"`
	TotalRides  int     `json:"total_rides"`
	Share       float64 `json:"share"`
}

// Execute runs a plan against the dataset. Filters that match nothing yield
// empty values rather than errors.
func Execute(ds *dataset.Dataset, p Plan) (*Result, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	filter := stats.Filter{Day: p.Day, Date: p.Date, Hour: p.Hour}
	trips := stats.Apply(ds.Trips(), filter)

	var value any
	switch p.Operation {
	case OpTripCount:
		value = len(trips)

	case OpGroupCount:
		groups, err := stats.GroupCount(trips, p.Columns, p.limit(models.DefaultHotzoneLimit))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
		value = groups

	case OpWeekdaySummary:
		value = weekdaySummary(ds, p, trips)

	case OpDailySummary:
		value = dailySummary(ds, p, trips)

	case OpHotzones:
		hf := models.HotzoneFilter{Day: p.Day}
		if p.Hour != nil {
			hf.Hour = strconv.Itoa(*p.Hour)
		}
		scope := ds.Trips()
		if p.Date != "" {
			scope = stats.Apply(scope, stats.Filter{Date: p.Date})
		}
		value = stats.Hotzones(scope, hf, p.limit(models.DefaultHotzoneLimit))

	case OpPredictDemand:
		hour := predictor.DefaultHour
		if p.Hour != nil {
			hour = *p.Hour
		}
		value = ds.Demand().Predict(p.Day, hour)

	case OpTopPickups:
		value = stats.TopLocations(trips, func(t models.Trip) string { return t.PickUpNormalized }, p.limit(models.SummaryTopLocations))

	case OpTopDropoffs:
		value = stats.TopLocations(trips, func(t models.Trip) string { return t.DropOffNormalized }, p.limit(models.SummaryTopLocations))

	case OpPeakHours:
		value = stats.PeakHours(trips, p.limit(models.SummaryPeakHours))

	case OpLargeGroupShare:
		large := 0
		for _, t := range trips {
			if t.LargeGroup {
				large++
			}
		}
		value = LargeGroupShare{
			LargeGroups: large,
			TotalRides:  len(trips),
			Share:       stats.Round(stats.Share(large, len(trips)), 4),
		}
	}

	return &Result{Operation: p.Operation, Plan: p, Value: value}, nil
}

// weekdaySummary uses the precomputed summaries unless the plan narrows the
// day further.
func weekdaySummary(ds *dataset.Dataset, p Plan, trips []models.Trip) any {
	if p.Date != "" || p.Hour != nil {
		return models.WeekdaySummary{Day: p.Day, Summary: stats.Summarize(trips)}
	}
	if p.Day == "" {
		return ds.WeekdaySummaries()
	}
	if s, ok := ds.Weekday(p.Day); ok {
		return s
	}
	return models.WeekdaySummary{Day: p.Day, Summary: stats.Summarize(nil)}
}

func dailySummary(ds *dataset.Dataset, p Plan, trips []models.Trip) any {
	if p.Date != "" {
		if p.Day == "" && p.Hour == nil {
			if s, ok := ds.Daily(p.Date); ok {
				return s
			}
		}
		weekday := p.Day
		if len(trips) > 0 {
			weekday = trips[0].Day
		}
		return models.DailySummary{Date: p.Date, Weekday: weekday, Summary: stats.Summarize(trips)}
	}

	if p.Hour != nil {
		byDate := stats.DailySummaries(trips)
		out := make([]models.DailySummary, 0, len(byDate))
		for _, s := range ds.DailySummaries() {
			if hs, ok := byDate[s.Date]; ok {
				out = append(out, hs)
			}
		}
		return out
	}

	all := ds.DailySummaries()
	if p.Day == "" {
		return all
	}
	out := make([]models.DailySummary, 0)
	for _, s := range all {
		if s.Weekday == p.Day {
			out = append(out, s)
		}
	}
	return out
}
