package models

import "time"

// Trip represents one enriched rideshare trip record
type Trip struct {
	TripID        string `json:"trip_id" db:"trip_id"`
	BookingUserID string `json:"booking_user_id" db:"booking_user_id"`

	// Pickup and dropoff
	PickUpLat      float64 `json:"pick_up_latitude" db:"pick_up_latitude"`
	PickUpLng      float64 `json:"pick_up_longitude" db:"pick_up_longitude"`
	DropOffLat     float64 `json:"drop_off_latitude" db:"drop_off_latitude"`
	DropOffLng     float64 `json:"drop_off_longitude" db:"drop_off_longitude"`
	PickUpAddress  string  `json:"pick_up_address" db:"pick_up_address"`
	DropOffAddress string  `json:"drop_off_address" db:"drop_off_address"`

	// Raw facts
	Time       time.Time `json:"trip_date_and_time" db:"trip_date_and_time"`
	Passengers int       `json:"total_passengers" db:"total_passengers"`
	Age        *float64  `json:"age" db:"age"` // nil when absent or unparseable

	// Derived at load time
	Hour              int    `json:"hour" db:"hour"`                   // 0-23
	Date              string `json:"date" db:"date"`                   // YYYY-MM-DD
	Day               string `json:"day" db:"day"`                     // lowercase weekday name
	LargeGroup        bool   `json:"large_group" db:"large_group"`     // passengers > threshold
	AgeGroup          string `json:"age_group" db:"age_group"`         // unknown, 18-24, 25-34, 35-44, 45+
	PickUpNormalized  string `json:"pick_up_normalized" db:"pick_up_normalized"`
	DropOffNormalized string `json:"drop_off_normalized" db:"drop_off_normalized"`
}

// RawRow is one input row keyed by cleaned column name
type RawRow map[string]string

// Source column names after cleaning
const (
	ColTripID         = "trip_id"
	ColBookingUserID  = "booking_user_id"
	ColPickUpLat      = "pick_up_latitude"
	ColPickUpLng      = "pick_up_longitude"
	ColDropOffLat     = "drop_off_latitude"
	ColDropOffLng     = "drop_off_longitude"
	ColPickUpAddress  = "pick_up_address"
	ColDropOffAddress = "drop_off_address"
	ColTimestamp      = "trip_date_and_time"
	ColPassengers     = "total_passengers"
	ColAge            = "age"
)

// Age group buckets
const (
	AgeGroupUnknown = "unknown"
	AgeGroup18To24  = "18-24"
	AgeGroup25To34  = "25-34"
	AgeGroup35To44  = "35-44"
	AgeGroup45Plus  = "45+"
)
