package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/service"
)

type scheduleChargingRequest struct {
	VehicleID      string     `json:"vehicle_id" binding:"required"`
	StartTime      time.Time  `json:"start_time" binding:"required"`
	EndTime        *time.Time `json:"end_time"`
	EnergyConsumed *float64   `json:"energy_consumed" binding:"omitempty,gte=0"`
	Cost           *float64   `json:"cost" binding:"omitempty,gte=0"`
}

// ScheduleCharging 创建充电会话/计划
// POST /api/charging/schedule
func (h *Handler) ScheduleCharging(c *gin.Context) {
	var req scheduleChargingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.charging.Schedule(c.Request.Context(), service.ScheduleInput{
		VehicleID:      req.VehicleID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		EnergyConsumed: req.EnergyConsumed,
		Cost:           req.Cost,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.Error("Failed to schedule charging", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule charging"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": session})
}

// ListChargingSessions 获取车辆充电会话列表
// GET /api/vehicles/:id/charging-sessions?skip=0&limit=100
func (h *Handler) ListChargingSessions(c *gin.Context) {
	skip, limit := pageParams(c)

	sessions, err := h.charging.List(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.Error("Failed to list charging sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list charging sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sessions})
}
