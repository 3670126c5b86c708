package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rideshareai/rideshare-backend-go/internal/database"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// TripRepository persists the normalized trip table
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `trip_id, booking_user_id,
		pick_up_latitude, pick_up_longitude, drop_off_latitude, drop_off_longitude,
		pick_up_address, drop_off_address, trip_date_and_time, total_passengers, age,
		hour, date, day, large_group, age_group, pick_up_normalized, drop_off_normalized`

// ReplaceAll swaps the stored table for trips in one transaction
func (r *TripRepository) ReplaceAll(trips []models.Trip) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM trips_normalized"); err != nil {
			return fmt.Errorf("failed to clear trips: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO trips_normalized (` + tripColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, t := range trips {
			var age sql.NullFloat64
			if t.Age != nil {
				age = sql.NullFloat64{Float64: *t.Age, Valid: true}
			}
			_, err := stmt.Exec(
				t.TripID, t.BookingUserID,
				t.PickUpLat, t.PickUpLng, t.DropOffLat, t.DropOffLng,
				t.PickUpAddress, t.DropOffAddress, t.Time.UTC().Format(time.RFC3339Nano), t.Passengers, age,
				t.Hour, t.Date, t.Day, t.LargeGroup, t.AgeGroup, t.PickUpNormalized, t.DropOffNormalized,
			)
			if err != nil {
				return fmt.Errorf("failed to insert trip %s: %w", t.TripID, err)
			}
		}
		return nil
	})
}

// LoadAll returns every stored trip in insertion order
func (r *TripRepository) LoadAll() ([]models.Trip, error) {
	rows, err := r.db.Query("SELECT " + tripColumns + " FROM trips_normalized ORDER BY row_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var (
			t   models.Trip
			ts  string
			age sql.NullFloat64
		)
		err := rows.Scan(
			&t.TripID, &t.BookingUserID,
			&t.PickUpLat, &t.PickUpLng, &t.DropOffLat, &t.DropOffLng,
			&t.PickUpAddress, &t.DropOffAddress, &ts, &t.Passengers, &age,
			&t.Hour, &t.Date, &t.Day, &t.LargeGroup, &t.AgeGroup, &t.PickUpNormalized, &t.DropOffNormalized,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		if t.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse stored timestamp %q: %w", ts, err)
		}
		if age.Valid {
			v := age.Float64
			t.Age = &v
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Count returns the number of stored trips
func (r *TripRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips_normalized").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

// SetMeta records a dataset metadata value
func (r *TripRepository) SetMeta(key, value string) error {
	_, err := r.db.Exec(`INSERT INTO dataset_meta (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %s: %w", key, err)
	}
	return nil
}

// GetMeta returns a dataset metadata value, or "" when unset
func (r *TripRepository) GetMeta(key string) (string, error) {
	var v string
	err := r.db.QueryRow("SELECT value FROM dataset_meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get meta %s: %w", key, err)
	}
	return v, nil
}
