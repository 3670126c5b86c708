package models

// Hotzone represents a dropoff location ranked by ride count
type Hotzone struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Count int     `json:"count"`
	Name  string  `json:"name"`
}

// CellHotzone represents dropoffs aggregated into one s2 cell
type CellHotzone struct {
	CellID string  `json:"cell_id"` // s2 cell token
	Level  int     `json:"level"`
	Lat    float64 `json:"lat"` // cell center
	Lng    float64 `json:"lng"`
	Count  int     `json:"count"`
	Name   string  `json:"name"` // most common normalized dropoff in the cell
}
