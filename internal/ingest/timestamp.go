package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultTimestampLayout is month/day/year hour:minute
const DefaultTimestampLayout = "1/2/2006 15:04"

// ErrUnparseableTimestamp is returned when no layout matches
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// US-style layouts cast does not know about
var fallbackLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
}

// ParseTimestamp tries layout first, then a permissive parse. Times without
// a zone are read as UTC.
func ParseTimestamp(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableTimestamp
	}
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
		return t, nil
	}
	for _, l := range fallbackLayouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, ErrUnparseableTimestamp
	}
	return t, nil
}
