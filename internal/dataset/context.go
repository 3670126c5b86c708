package dataset

import (
	"fmt"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

// Context describes the dataset to a query agent
type Context struct {
	Rows      int      `json:"rows"`
	Columns   []string `json:"columns"`
	FirstDate string   `json:"first_date"`
	LastDate  string   `json:"last_date"`
	Days      []string `json:"days"`
	Hotspots  []string `json:"hotspots"`
	Source    string   `json:"source"`
}

// Context returns a description of the dataset
func (d *Dataset) Context() Context {
	c := Context{
		Rows:     len(d.trips),
		Columns:  stats.GroupColumns,
		Days:     sortedDays(d.weekday),
		Hotspots: d.hotspots,
		Source:   d.source,
	}
	for _, t := range d.trips {
		if c.FirstDate == "" || t.Date < c.FirstDate {
			c.FirstDate = t.Date
		}
		if t.Date > c.LastDate {
			c.LastDate = t.Date
		}
	}
	return c
}

// String renders the context for a prompt
func (c Context) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rideshare trips: %d rows", c.Rows)
	if c.FirstDate != "" {
		fmt.Fprintf(&b, " from %s to %s", c.FirstDate, c.LastDate)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Groupable columns: %s.\n", strings.Join(c.Columns, ", "))
	if len(c.Days) > 0 {
		fmt.Fprintf(&b, "Weekdays present: %s.\n", strings.Join(c.Days, ", "))
	}
	if len(c.Hotspots) > 0 {
		fmt.Fprintf(&b, "Known hotspots: %s.\n", strings.Join(c.Hotspots, ", "))
	}
	return b.String()
}
