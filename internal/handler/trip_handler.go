package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rideshareai/rideshare-backend-go/internal/service"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// GetTrips handles GET /trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List())
}
