package stats

import (
	"github.com/golang/geo/s2"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/spatial"
)

type hotzoneKey struct {
	lat, lng float64
	name     string
}

// Hotzones ranks dropoff points by ride count, optionally filtered by weekday
// and hour. An hour that does not parse is ignored rather than rejected.
func Hotzones(trips []models.Trip, filter models.HotzoneFilter, n int) []models.Hotzone {
	if n <= 0 {
		n = models.DefaultHotzoneLimit
	}
	filtered := Apply(trips, NewFilter(filter.Day, "", filter.Hour))

	top := TopN(CountBy(filtered, func(t models.Trip) hotzoneKey {
		return hotzoneKey{lat: t.DropOffLat, lng: t.DropOffLng, name: t.DropOffNormalized}
	}), n)

	out := make([]models.Hotzone, len(top))
	for i, c := range top {
		out[i] = models.Hotzone{Lat: c.Key.lat, Lng: c.Key.lng, Count: c.Count, Name: c.Key.name}
	}
	return out
}

// CellHotzones ranks s2 cells at the given level by dropoff count. Each cell
// is labelled with its most common normalized dropoff name.
func CellHotzones(trips []models.Trip, level, n int) []models.CellHotzone {
	level = spatial.ClampLevel(level)
	if n <= 0 {
		n = models.DefaultHotzoneLimit
	}

	byCell := make(map[s2.CellID][]models.Trip)
	for _, t := range trips {
		id := spatial.CellID(t.DropOffLat, t.DropOffLng, level)
		byCell[id] = append(byCell[id], t)
	}

	top := TopN(CountBy(trips, func(t models.Trip) s2.CellID {
		return spatial.CellID(t.DropOffLat, t.DropOffLng, level)
	}), n)

	out := make([]models.CellHotzone, len(top))
	for i, c := range top {
		lat, lng := spatial.CellCenter(c.Key)
		names := TopLocations(byCell[c.Key], func(t models.Trip) string { return t.DropOffNormalized }, 1)
		var name string
		if len(names) > 0 {
			name = names[0].Name
		}
		out[i] = models.CellHotzone{
			CellID: c.Key.ToToken(),
			Level:  level,
			Lat:    lat,
			Lng:    lng,
			Count:  c.Count,
			Name:   name,
		}
	}
	return out
}
