package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/service"
)

type createBatteryLogRequest struct {
	SoC         *float64 `json:"soc" binding:"required,gte=0,lte=100"`
	SoH         *float64 `json:"soh" binding:"required,gte=0,lte=100"`
	Voltage     *float64 `json:"voltage" binding:"omitempty,gt=0"`
	Temperature *float64 `json:"temperature" binding:"omitempty,gte=-40,lte=80"`
	Cycles      int      `json:"cycles" binding:"gte=0"`
}

// CreateBatteryLog 上报一次电池遥测采样
// POST /api/vehicles/:id/battery-log
// 健康评分由服务端计算，请求中的评分字段不被接受
func (h *Handler) CreateBatteryLog(c *gin.Context) {
	var req createBatteryLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.battery.Record(c.Request.Context(), c.Param("id"), service.RecordLogInput{
		SoC:         *req.SoC,
		SoH:         *req.SoH,
		Voltage:     req.Voltage,
		Temperature: req.Temperature,
		Cycles:      req.Cycles,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.Error("Failed to create battery log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create battery log"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": log})
}

// GetBatteryStatus 获取车辆最新电池状态
// GET /api/vehicles/:id/battery
func (h *Handler) GetBatteryStatus(c *gin.Context) {
	log, err := h.battery.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoBatteryData):
			c.JSON(http.StatusNotFound, gin.H{"error": "No battery data found for this vehicle"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		default:
			h.logger.Error("Failed to get battery status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get battery status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": log})
}

// ListBatteryLogs 获取车辆电池历史记录
// GET /api/vehicles/:id/battery-logs?skip=0&limit=100
func (h *Handler) ListBatteryLogs(c *gin.Context) {
	skip, limit := pageParams(c)

	logs, err := h.battery.History(c.Request.Context(), c.Param("id"), skip, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.Error("Failed to list battery logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list battery logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
