package query

import (
	"errors"
	"fmt"
	"strings"
)

// Operations understood by Execute
const (
	OpTripCount       = "trip_count"
	OpGroupCount      = "group_count"
	OpWeekdaySummary  = "weekday_summary"
	OpDailySummary    = "daily_summary"
	OpHotzones        = "hotzones"
	OpPredictDemand   = "predict_demand"
	OpTopPickups      = "top_pickups"
	OpTopDropoffs     = "top_dropoffs"
	OpPeakHours       = "peak_hours"
	OpLargeGroupShare = "large_group_share"
)

// Operations lists every supported operation
var Operations = []string{
	OpTripCount, OpGroupCount, OpWeekdaySummary, OpDailySummary, OpHotzones,
	OpPredictDemand, OpTopPickups, OpTopDropoffs, OpPeakHours, OpLargeGroupShare,
}

// MaxLimit caps the number of rows any ranked result may return
const MaxLimit = 100

var (
	ErrInvalidPlan      = errors.New("invalid query plan")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Plan is a structured computation over the trip table. Day, Date and Hour
// narrow the trips the operation sees.
type Plan struct {
	Operation string   `json:"operation"`
	Day       string   `json:"day,omitempty"`
	Date      string   `json:"date,omitempty"`
	Hour      *int     `json:"hour,omitempty"`
	Columns   []string `json:"columns,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// Normalize lowercases names and trims whitespace
func (p Plan) Normalize() Plan {
	p.Operation = strings.ToLower(strings.TrimSpace(p.Operation))
	p.Day = strings.ToLower(strings.TrimSpace(p.Day))
	p.Date = strings.TrimSpace(p.Date)
	cols := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			cols = append(cols, c)
		}
	}
	p.Columns = cols
	return p
}

// Validate checks a normalized plan
func (p Plan) Validate() error {
	known := false
	for _, op := range Operations {
		if p.Operation == op {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, p.Operation)
	}
	if p.Hour != nil && (*p.Hour < 0 || *p.Hour > 23) {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidPlan, *p.Hour)
	}
	if p.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidPlan)
	}
	switch p.Operation {
	case OpGroupCount:
		if len(p.Columns) == 0 {
			return fmt.Errorf("%w: group_count needs columns", ErrInvalidPlan)
		}
	case OpPredictDemand:
		if p.Day == "" {
			return fmt.Errorf("%w: predict_demand needs a day", ErrInvalidPlan)
		}
	}
	return nil
}

func (p Plan) limit(def int) int {
	switch {
	case p.Limit <= 0:
		return def
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}
