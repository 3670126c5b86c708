package models

// NameCount is a ranked location with its ride count
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// HourCount is a ranked hour of day with its ride count
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// GroupCount is one row of a grouped count query
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary holds the statistics shared by weekday and daily summaries
type Summary struct {
	TotalRides    int         `json:"total_rides"`
	TopPickups    []NameCount `json:"top_pickups"`    // top 5 normalized pickups
	TopDropoffs   []NameCount `json:"top_dropoffs"`   // top 5 normalized dropoffs
	AvgPassengers float64     `json:"avg_passengers"` // rounded to 2 decimals
	PeakHours     []HourCount `json:"peak_hours"`     // top 3 hours
}

// WeekdaySummary aggregates all trips sharing a weekday name
type WeekdaySummary struct {
	Day string `json:"day"`
	Summary
}

// DailySummary aggregates trips on one calendar date
type DailySummary struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Summary
}

// Summary limits
const (
	SummaryTopLocations = 5
	SummaryPeakHours    = 3
	DefaultHotzoneLimit = 10
)
