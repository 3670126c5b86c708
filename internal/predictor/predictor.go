package predictor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// Status tells a found count apart from the two kinds of miss
type Status string

const (
	StatusFound        Status = "found"
	StatusDayNotFound  Status = "day_not_found"
	StatusHourNotFound Status = "hour_not_found"
)

// Prediction is the result of a (day, hour) lookup
type Prediction struct {
	Day    string `json:"day"`
	Hour   int    `json:"hour"`
	Count  int    `json:"trip_count"`
	Status Status `json:"status"`
}

// Found reports whether the lookup hit a row
func (p Prediction) Found() bool {
	return p.Status == StatusFound
}

// Message renders the prediction the way the demand tool reports it
func (p Prediction) Message() string {
	switch p.Status {
	case StatusDayNotFound:
		return fmt.Sprintf("No data for %s.", p.Day)
	case StatusHourNotFound:
		return fmt.Sprintf("No data for %s at hour %d.", p.Day, p.Hour)
	default:
		return strconv.Itoa(p.Count)
	}
}

type slot struct {
	day  string
	hour int
}

// Table is a read-only (day, hour) -> trip count lookup
type Table struct {
	counts map[slot]int
	days   map[string]struct{}
}

// NewTable builds a table from demand rows. Days are lowercased; duplicate
// (day, hour) rows are summed.
func NewTable(rows []models.DemandRow) *Table {
	t := &Table{counts: make(map[slot]int), days: make(map[string]struct{})}
	for _, r := range rows {
		day := strings.ToLower(strings.TrimSpace(r.Day))
		t.counts[slot{day, r.Hour}] += r.TripCount
		t.days[day] = struct{}{}
	}
	return t
}

// FromTrips derives the demand table by counting trips per (day, hour)
func FromTrips(trips []models.Trip) *Table {
	rows := make([]models.DemandRow, len(trips))
	for i, tr := range trips {
		rows[i] = models.DemandRow{Day: tr.Day, Hour: tr.Hour, TripCount: 1}
	}
	return NewTable(rows)
}

// Predict looks up historical demand for a day and hour
func (t *Table) Predict(day string, hour int) Prediction {
	day = strings.ToLower(strings.TrimSpace(day))
	p := Prediction{Day: day, Hour: hour}
	if _, ok := t.days[day]; !ok {
		p.Status = StatusDayNotFound
		return p
	}
	count, ok := t.counts[slot{day, hour}]
	if !ok {
		p.Status = StatusHourNotFound
		return p
	}
	p.Count = count
	p.Status = StatusFound
	return p
}

var weekdayOrder = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

// Days returns the known days, weekdays first in calendar order
func (t *Table) Days() []string {
	days := make([]string, 0, len(t.days))
	for d := range t.days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		oi, iok := weekdayOrder[days[i]]
		oj, jok := weekdayOrder[days[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return days[i] < days[j]
		}
	})
	return days
}

// Rows returns the table contents ordered by day then hour
func (t *Table) Rows() []models.DemandRow {
	order := make(map[string]int)
	for i, d := range t.Days() {
		order[d] = i
	}
	rows := make([]models.DemandRow, 0, len(t.counts))
	for s, c := range t.counts {
		rows = append(rows, models.DemandRow{Day: s.day, Hour: s.hour, TripCount: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return order[rows[i].Day] < order[rows[j].Day]
		}
		return rows[i].Hour < rows[j].Hour
	})
	return rows
}
