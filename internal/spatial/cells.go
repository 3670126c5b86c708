package spatial

import (
	"github.com/golang/geo/s2"
)

// DefaultCellLevel is roughly a city block (~300m edge)
const DefaultCellLevel = 15

// ClampLevel keeps a cell level within s2's valid range
func ClampLevel(level int) int {
	if level < 1 {
		return DefaultCellLevel
	}
	if level > s2.MaxLevel {
		return s2.MaxLevel
	}
	return level
}

// CellID returns the s2 cell containing a point at the given level
func CellID(lat, lng float64, level int) s2.CellID {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(ClampLevel(level))
}

// CellCenter returns the center of a cell in degrees
func CellCenter(id s2.CellID) (lat, lng float64) {
	ll := id.LatLng()
	return ll.Lat.Degrees(), ll.Lng.Degrees()
}
