package service

import (
	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
)

// TripService exposes the enriched trip table
type TripService struct {
	ds *dataset.Dataset
}

// NewTripService creates a new trip service
func NewTripService(ds *dataset.Dataset) *TripService {
	return &TripService{ds: ds}
}

// List returns every enriched trip
func (s *TripService) List() []models.Trip {
	trips := s.ds.Trips()
	if trips == nil {
		return []models.Trip{}
	}
	return trips
}

// Count returns the number of trips
func (s *TripService) Count() int {
	return s.ds.Len()
}
