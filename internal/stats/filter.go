package stats

import (
	"strconv"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// Filter narrows a trip set. Zero fields match everything.
type Filter struct {
	Day  string // weekday name, case-insensitive exact match
	Date string // YYYY-MM-DD
	Hour *int   // 0-23
}

// IsZero reports whether the filter matches every trip
func (f Filter) IsZero() bool {
	return f.Day == "" && f.Date == "" && f.Hour == nil
}

// Match reports whether a trip passes the filter
func (f Filter) Match(t models.Trip) bool {
	if f.Day != "" && !strings.EqualFold(t.Day, strings.TrimSpace(f.Day)) {
		return false
	}
	if f.Date != "" && t.Date != strings.TrimSpace(f.Date) {
		return false
	}
	if f.Hour != nil && t.Hour != *f.Hour {
		return false
	}
	return true
}

// Apply returns the trips that pass the filter
func Apply(trips []models.Trip, f Filter) []models.Trip {
	if f.IsZero() {
		return trips
	}
	out := make([]models.Trip, 0)
	for _, t := range trips {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ParseHour parses an hour of day from text. Values that are not integers
// in 0-23 are reported as not ok so callers can ignore them.
func ParseHour(s string) (int, bool) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// NewFilter builds a filter from text parameters, ignoring an invalid hour
func NewFilter(day, date, hour string) Filter {
	f := Filter{Day: strings.TrimSpace(day), Date: strings.TrimSpace(date)}
	if h, ok := ParseHour(hour); ok {
		f.Hour = &h
	}
	return f
}
