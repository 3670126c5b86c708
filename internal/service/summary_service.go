package service

import (
	"errors"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

// ErrNotFound is returned for a weekday or date absent from the dataset
var ErrNotFound = errors.New("not found")

// SummaryService serves precomputed summaries, demand lookups and rankings
type SummaryService struct {
	ds *dataset.Dataset
}

// NewSummaryService creates a summary service
func NewSummaryService(ds *dataset.Dataset) *SummaryService {
	return &SummaryService{ds: ds}
}

// WeekdaySummaries returns every weekday summary in calendar order
func (s *SummaryService) WeekdaySummaries() []models.WeekdaySummary {
	return s.ds.WeekdaySummaries()
}

// WeekdaySummary returns the summary for one weekday
func (s *SummaryService) WeekdaySummary(day string) (models.WeekdaySummary, error) {
	summary, ok := s.ds.Weekday(strings.ToLower(strings.TrimSpace(day)))
	if !ok {
		return models.WeekdaySummary{}, ErrNotFound
	}
	return summary, nil
}

// DailySummaries returns every daily summary ordered by date
func (s *SummaryService) DailySummaries() []models.DailySummary {
	return s.ds.DailySummaries()
}

// DailySummary returns the summary for one YYYY-MM-DD date
func (s *SummaryService) DailySummary(date string) (models.DailySummary, error) {
	summary, ok := s.ds.Daily(strings.TrimSpace(date))
	if !ok {
		return models.DailySummary{}, ErrNotFound
	}
	return summary, nil
}

// Demand looks up historical demand for a day and hour
func (s *SummaryService) Demand(filter models.DemandFilter) predictor.Prediction {
	return s.ds.Demand().Predict(filter.Day, filter.Hour)
}

// DemandTable returns the full demand table
func (s *SummaryService) DemandTable() []models.DemandRow {
	return s.ds.Demand().Rows()
}

// Top counts trips per value of column after applying the filter.
// Unknown columns return stats.ErrUnknownColumn.
func (s *SummaryService) Top(column string, filter models.TopFilter) ([]models.GroupCount, error) {
	n := filter.N
	if n <= 0 {
		n = models.DefaultHotzoneLimit
	}
	trips := stats.Apply(s.ds.Trips(), stats.NewFilter(filter.Day, filter.Date, filter.Hour))
	return stats.GroupCount(trips, strings.Split(column, ","), n)
}
