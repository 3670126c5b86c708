package models

// DemandRow is one (day, hour) entry of the historical demand table
type DemandRow struct {
	Day       string `json:"day"`
	Hour      int    `json:"hour"`
	TripCount int    `json:"trip_count"`
}
