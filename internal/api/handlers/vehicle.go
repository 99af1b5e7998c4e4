package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/service"
)

type createVehicleRequest struct {
	UserID          string  `json:"user_id" binding:"required"`
	Make            string  `json:"make" binding:"required,max=50"`
	Model           string  `json:"model" binding:"required,max=50"`
	Year            int     `json:"year" binding:"required,gte=2010,lte=2030"`
	VIN             string  `json:"vin" binding:"required,len=17"`
	BatteryCapacity float64 `json:"battery_capacity" binding:"required,gt=0,lte=200"`
}

// CreateVehicle 注册车辆
// POST /api/vehicles
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.vehicles.Register(c.Request.Context(), service.RegisterVehicleInput{
		UserID:          req.UserID,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		VIN:             req.VIN,
		BatteryCapacity: req.BatteryCapacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVINTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "VIN already registered"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("Failed to create vehicle", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// GetVehicle 获取车辆详情
// GET /api/vehicles/:id
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.Error("Failed to get vehicle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}
