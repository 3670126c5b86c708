package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/pkg/response"
)

// RootMessage is the body of GET /
const RootMessage = "Rideshare AI backend is running"

// HealthHandler reports liveness and dataset status
type HealthHandler struct {
	ds *dataset.Dataset
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ds *dataset.Dataset) *HealthHandler {
	return &HealthHandler{ds: ds}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": RootMessage})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "ok",
		"rows":      h.ds.Len(),
		"source":    h.ds.Source(),
		"loaded_at": h.ds.LoadedAt().Format(time.RFC3339),
	})
}
