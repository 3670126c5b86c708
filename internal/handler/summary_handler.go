package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/service"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
	"github.com/rideshareai/rideshare-backend-go/pkg/response"
)

// SummaryHandler handles summary, demand and ranking requests
type SummaryHandler struct {
	service *service.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// GetWeekdaySummaries handles GET /summaries/weekday
func (h *SummaryHandler) GetWeekdaySummaries(c *gin.Context) {
	response.Success(c, h.service.WeekdaySummaries())
}

// GetWeekdaySummary handles GET /summaries/weekday/:day
func (h *SummaryHandler) GetWeekdaySummary(c *gin.Context) {
	summary, err := h.service.WeekdaySummary(c.Param("day"))
	if err != nil {
		response.NotFound(c, "No trips for weekday "+c.Param("day"))
		return
	}
	response.Success(c, summary)
}

// GetDailySummaries handles GET /summaries/daily
func (h *SummaryHandler) GetDailySummaries(c *gin.Context) {
	response.Success(c, h.service.DailySummaries())
}

// GetDailySummary handles GET /summaries/daily/:date
func (h *SummaryHandler) GetDailySummary(c *gin.Context) {
	summary, err := h.service.DailySummary(c.Param("date"))
	if err != nil {
		response.NotFound(c, "No trips on "+c.Param("date"))
		return
	}
	response.Success(c, summary)
}

// GetDemand handles GET /demand?day=&hour=. Without a day the whole
// demand table is returned.
func (h *SummaryHandler) GetDemand(c *gin.Context) {
	if c.Query("day") == "" {
		response.Success(c, h.service.DemandTable())
		return
	}
	var filter models.DemandFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	if filter.Hour < 0 || filter.Hour > 23 {
		response.BadRequest(c, "Hour must be between 0 and 23", nil)
		return
	}
	if c.Query("hour") == "" {
		filter.Hour = predictor.DefaultHour
	}
	p := h.service.Demand(filter)
	response.Success(c, gin.H{
		"day":        p.Day,
		"hour":       p.Hour,
		"trip_count": p.Count,
		"status":     p.Status,
		"message":    p.Message(),
	})
}

// GetTop handles GET /top/:column?n=&day=&hour=&date=
func (h *SummaryHandler) GetTop(c *gin.Context) {
	var filter models.TopFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	groups, err := h.service.Top(c.Param("column"), filter)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownColumn) {
			response.BadRequest(c, "Unknown column", err)
			return
		}
		response.InternalError(c, "Failed to rank trips", err)
		return
	}
	response.Success(c, groups)
}
