package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// ErrNoRows is returned when a dataset yields no usable trips
var ErrNoRows = errors.New("dataset has no usable rows")

// LoadFile reads and enriches a trip CSV file. A missing file or an empty
// result after dropping bad rows is an error.
func LoadFile(ctx context.Context, path string, e *Enricher) ([]models.Trip, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, Report{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	trips, rep := e.Enrich(rows)
	e.log.Info("dataset enriched", "path", path, "total", rep.Total, "kept", rep.Kept, "dropped", rep.DroppedTotal())
	if len(trips) == 0 {
		return nil, rep, fmt.Errorf("%s: %w", path, ErrNoRows)
	}
	return trips, rep, nil
}

// LoadDemandFile reads a day,hour,trip_count CSV file
func LoadDemandFile(path string) ([]models.DemandRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demand table: %w", err)
	}
	defer f.Close()

	rows, err := ReadDemandCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read demand table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRows)
	}
	return rows, nil
}
