package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/rideshareai/rideshare-backend-go/internal/metrics"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// DefaultLargeGroupThreshold marks trips with more than 6 passengers as large groups
const DefaultLargeGroupThreshold = 6

// Drop reasons
const (
	DropTimestamp   = "timestamp"
	DropPassengers  = "passengers"
	DropCoordinates = "coordinates"
)

var (
	errMissingField      = errors.New("missing field")
	errInvalidPassengers = errors.New("passenger count must be a positive whole number")
)

// EnricherConfig configures row parsing and derivation
type EnricherConfig struct {
	Logger              *slog.Logger
	LargeGroupThreshold int
	TimestampLayout     string
	Hotspots            []Hotspot
}

// Enricher turns raw rows into enriched trip records
type Enricher struct {
	log        *slog.Logger
	threshold  int
	layout     string
	normalizer *Normalizer
}

// Report summarizes one enrichment pass
type Report struct {
	Total   int            `json:"total"`
	Kept    int            `json:"kept"`
	Dropped map[string]int `json:"dropped"` // by reason
}

// DroppedTotal returns the number of excluded rows
func (r Report) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// NewEnricher creates an enricher, filling defaults for zero values
func NewEnricher(cfg EnricherConfig) *Enricher {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	threshold := cfg.LargeGroupThreshold
	if threshold <= 0 {
		threshold = DefaultLargeGroupThreshold
	}
	layout := cfg.TimestampLayout
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return &Enricher{
		log:        log,
		threshold:  threshold,
		layout:     layout,
		normalizer: NewNormalizer(cfg.Hotspots),
	}
}

// Normalizer returns the address normalizer in use
func (e *Enricher) Normalizer() *Normalizer {
	return e.normalizer
}

// Enrich parses and derives every row. Rows missing a required field are
// excluded and counted in the report, never returned as errors.
func (e *Enricher) Enrich(rows []models.RawRow) ([]models.Trip, Report) {
	rep := Report{Total: len(rows), Dropped: map[string]int{}}
	trips := make([]models.Trip, 0, len(rows))
	for i, row := range rows {
		t, reason, err := e.enrichRow(row)
		if err != nil {
			rep.Dropped[reason]++
			metrics.IngestRowsTotal.WithLabelValues("dropped_" + reason).Inc()
			e.log.Debug("dropping row", "row", i+1, "reason", reason, "error", err)
			continue
		}
		trips = append(trips, t)
	}
	rep.Kept = len(trips)
	metrics.IngestRowsTotal.WithLabelValues("kept").Add(float64(rep.Kept))
	return trips, rep
}

func (e *Enricher) enrichRow(row models.RawRow) (models.Trip, string, error) {
	ts, err := ParseTimestamp(row[models.ColTimestamp], e.layout)
	if err != nil {
		return models.Trip{}, DropTimestamp, err
	}

	n, err := parsePassengers(row[models.ColPassengers])
	if err != nil {
		return models.Trip{}, DropPassengers, err
	}

	var coords [4]float64
	for i, col := range []string{models.ColPickUpLat, models.ColPickUpLng, models.ColDropOffLat, models.ColDropOffLng} {
		v, err := parseNumber(row[col])
		if err != nil {
			return models.Trip{}, DropCoordinates, fmt.Errorf("%s: %w", col, err)
		}
		coords[i] = v
	}

	var age *float64
	if v, err := parseNumber(row[models.ColAge]); err == nil {
		age = &v
	}

	pickUp := row[models.ColPickUpAddress]
	dropOff := row[models.ColDropOffAddress]

	return models.Trip{
		TripID:            strings.TrimSpace(row[models.ColTripID]),
		BookingUserID:     strings.TrimSpace(row[models.ColBookingUserID]),
		PickUpLat:         coords[0],
		PickUpLng:         coords[1],
		DropOffLat:        coords[2],
		DropOffLng:        coords[3],
		PickUpAddress:     pickUp,
		DropOffAddress:    dropOff,
		Time:              ts,
		Passengers:        n,
		Age:               age,
		Hour:              ts.Hour(),
		Date:              ts.Format("2006-01-02"),
		Day:               strings.ToLower(ts.Weekday().String()),
		LargeGroup:        n > e.threshold,
		AgeGroup:          AgeBucket(age),
		PickUpNormalized:  e.normalizer.Normalize(pickUp),
		DropOffNormalized: e.normalizer.Normalize(dropOff),
	}, "", nil
}

// parsePassengers accepts whole counts of at least one. "3.0" is read as 3;
// fractional, zero and negative counts are rejected.
func parsePassengers(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", errInvalidPassengers, strings.TrimSpace(s))
	}
	return int(v), nil
}

// parseNumber parses a numeric cell; blanks and NaN count as missing
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, errMissingField
	}
	return cast.ToFloat64E(s)
}
