package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

const (
	defaultHotzoneCacheTTL = 10 * time.Minute
	hotzoneCacheCapacity   = 512
)

// HotzoneService ranks drop-off hot zones. Results are cached per filter
// since the dataset never changes after startup.
type HotzoneService struct {
	ds    *dataset.Dataset
	cache *ttlcache.Cache[string, any]
	ttl   time.Duration
}

// NewHotzoneService creates a hotzone service
func NewHotzoneService(ds *dataset.Dataset, ttl time.Duration) *HotzoneService {
	if ttl <= 0 {
		ttl = defaultHotzoneCacheTTL
	}
	return &HotzoneService{
		ds:    ds,
		cache: ttlcache.New(
			ttlcache.WithTTL[string, any](ttl),
			ttlcache.WithCapacity[string, any](hotzoneCacheCapacity),
		),
		ttl:   ttl,
	}
}

// Hotzones returns the top drop-off points for the filter
func (s *HotzoneService) Hotzones(filter models.HotzoneFilter) []models.Hotzone {
	key := hotzoneKey(filter)
	if item := s.cache.Get(key); item != nil {
		if zones, ok := item.Value().([]models.Hotzone); ok {
			return zones
		}
	}
	zones := stats.Hotzones(s.ds.Trips(), filter, models.DefaultHotzoneLimit)
	s.cache.Set(key, zones, s.ttl)
	return zones
}

// Cells returns the top drop-off s2 cells
func (s *HotzoneService) Cells(filter models.CellHotzoneFilter) []models.CellHotzone {
	key := fmt.Sprintf("cells:%d:%d", filter.Level, filter.N)
	if item := s.cache.Get(key); item != nil {
		if cells, ok := item.Value().([]models.CellHotzone); ok {
			return cells
		}
	}
	cells := stats.CellHotzones(s.ds.Trips(), filter.Level, filter.N)
	s.cache.Set(key, cells, s.ttl)
	return cells
}

// hotzoneKey identifies a filter by the values stats.Hotzones applies, so
// spellings of the same filter share one entry.
func hotzoneKey(filter models.HotzoneFilter) string {
	hour := ""
	if h, ok := stats.ParseHour(filter.Hour); ok {
		hour = strconv.Itoa(h)
	}
	return fmt.Sprintf("points:%s:%s", strings.ToLower(strings.TrimSpace(filter.Day)), hour)
}
