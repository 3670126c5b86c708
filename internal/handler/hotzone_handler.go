package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/service"
	"github.com/rideshareai/rideshare-backend-go/pkg/response"
)

// HotzoneHandler handles hot zone requests
type HotzoneHandler struct {
	service *service.HotzoneService
}

// NewHotzoneHandler creates a new hotzone handler
func NewHotzoneHandler(service *service.HotzoneService) *HotzoneHandler {
	return &HotzoneHandler{service: service}
}

// GetHotzones handles GET /hotzones?day=&hour=
func (h *HotzoneHandler) GetHotzones(c *gin.Context) {
	var filter models.HotzoneFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	c.JSON(http.StatusOK, h.service.Hotzones(filter))
}

// GetCellHotzones handles GET /hotzones/cells?level=&n=
func (h *HotzoneHandler) GetCellHotzones(c *gin.Context) {
	var filter models.CellHotzoneFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}
	response.Success(c, h.service.Cells(filter))
}
