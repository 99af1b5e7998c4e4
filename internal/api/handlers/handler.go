package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/service"
	"github.com/langchou/evlife/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger   *zap.Logger
	users    *service.UserService
	vehicles *service.VehicleService
	battery  *service.BatteryService
	charging *service.ChargingService
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	users *service.UserService,
	vehicles *service.VehicleService,
	battery *service.BatteryService,
	charging *service.ChargingService,
	wsHub *ws.Hub,
) *Handler {
	return &Handler{
		logger:   logger,
		users:    users,
		vehicles: vehicles,
		battery:  battery,
		charging: charging,
		wsHub:    wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 用户
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.GET("/users/:id/vehicles", h.ListUserVehicles)

		// 车辆
		api.POST("/vehicles", h.CreateVehicle)
		api.GET("/vehicles/:id", h.GetVehicle)

		// 电池
		api.GET("/vehicles/:id/battery", h.GetBatteryStatus)      // 最新记录
		api.GET("/vehicles/:id/battery-logs", h.ListBatteryLogs)  // 历史记录
		api.POST("/vehicles/:id/battery-log", h.CreateBatteryLog) // 上报采样

		// 充电
		api.GET("/vehicles/:id/charging-sessions", h.ListChargingSessions)
		api.POST("/charging/schedule", h.ScheduleCharging)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 服务信息与健康检查
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
}

// pageParams 解析 skip/limit 分页参数，limit 钳制到 [1,100]
func pageParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// Root 服务信息
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "EV Life Manager API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}
