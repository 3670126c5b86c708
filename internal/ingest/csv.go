package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// ReadCSV reads a header row plus records into raw rows keyed by cleaned column name.
// Short records are padded with empty cells; extra cells are ignored.
func ReadCSV(r io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		// strip a UTF-8 BOM left by spreadsheet exports
		cols[i] = CleanColumnName(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows []models.RawRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record on line %d: %w", line, err)
		}
		row := make(models.RawRow, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = rec[i]
			} else {
				row[c] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadDemandCSV reads a day,hour,trip_count table. Rows with a missing day or a
// non-integer hour or count are skipped.
func ReadDemandCSV(r io.Reader) ([]models.DemandRow, error) {
	raw, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.DemandRow, 0, len(raw))
	for _, row := range raw {
		day := strings.ToLower(strings.TrimSpace(row["day"]))
		if day == "" {
			continue
		}
		hour, err := strconv.Atoi(strings.TrimSpace(row["hour"]))
		if err != nil {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(row["trip_count"]))
		if err != nil {
			continue
		}
		out = append(out, models.DemandRow{Day: day, Hour: hour, TripCount: count})
	}
	return out, nil
}
