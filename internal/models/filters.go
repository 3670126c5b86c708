package models

// HotzoneFilter represents query parameters for GET /hotzones
type HotzoneFilter struct {
	Day  string `form:"day"`  // weekday name, case-insensitive
	Hour string `form:"hour"` // 0-23, invalid values are ignored
}

// CellHotzoneFilter represents query parameters for GET /hotzones/cells
type CellHotzoneFilter struct {
	Level int `form:"level"` // s2 cell level 1-30
	N     int `form:"n"`     // max results
}

// TopFilter represents query parameters for GET /top/:column
type TopFilter struct {
	N    int    `form:"n"`    // max results, default 10
	Day  string `form:"day"`  // optional weekday filter
	Hour string `form:"hour"` // optional hour filter
	Date string `form:"date"` // optional YYYY-MM-DD filter
}

// DemandFilter represents query parameters for GET /demand
type DemandFilter struct {
	Day  string `form:"day" binding:"required"`
	Hour int    `form:"hour"`
}
