package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// ErrUnknownColumn is returned when grouping by a column the trip table lacks
var ErrUnknownColumn = errors.New("unknown column")

// compositeSep joins the values of a composite key
const compositeSep = " | "

// GroupColumns lists the columns accepted by GroupCount
var GroupColumns = []string{
	"day", "date", "hour",
	"pick_up_normalized", "drop_off_normalized",
	"pick_up_address", "drop_off_address",
	"age_group", "large_group", "total_passengers", "booking_user_id",
}

// Field returns the string value of a named column of a trip
func Field(t models.Trip, column string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(column)) {
	case "day", "weekday":
		return t.Day, nil
	case "date":
		return t.Date, nil
	case "hour":
		return strconv.Itoa(t.Hour), nil
	case "pick_up_normalized", "pickup":
		return t.PickUpNormalized, nil
	case "drop_off_normalized", "dropoff":
		return t.DropOffNormalized, nil
	case "pick_up_address":
		return t.PickUpAddress, nil
	case "drop_off_address":
		return t.DropOffAddress, nil
	case "age_group":
		return t.AgeGroup, nil
	case "large_group":
		return strconv.FormatBool(t.LargeGroup), nil
	case "total_passengers":
		return strconv.Itoa(t.Passengers), nil
	case "booking_user_id":
		return t.BookingUserID, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
}

// GroupCount counts trips per distinct value of one or more columns and
// returns the top n groups. Composite keys join values with " | ".
func GroupCount(trips []models.Trip, columns []string, n int) ([]models.GroupCount, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrUnknownColumn)
	}
	blank := models.Trip{}
	for _, c := range columns {
		if _, err := Field(blank, c); err != nil {
			return nil, err
		}
	}

	counts := CountBy(trips, func(t models.Trip) string {
		parts := make([]string, len(columns))
		for i, c := range columns {
			parts[i], _ = Field(t, c)
		}
		return strings.Join(parts, compositeSep)
	})

	top := TopN(counts, n)
	out := make([]models.GroupCount, len(top))
	for i, c := range top {
		out[i] = models.GroupCount{Key: c.Key, Count: c.Count}
	}
	return out, nil
}
