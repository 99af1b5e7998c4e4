package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/langchou/evlife/internal/api/handlers"
	"github.com/langchou/evlife/internal/config"
	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/repository/memory"
	"github.com/langchou/evlife/internal/repository/postgres"
	"github.com/langchou/evlife/internal/service"
	"github.com/langchou/evlife/internal/state"
	"github.com/langchou/evlife/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	logger.Info("Starting EV Life Manager",
		zap.String("port", cfg.ServerPort),
		zap.String("storage", cfg.StorageBackend))

	// 创建 context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 创建存储后端
	var (
		userRepo    repository.UserRepository
		vehicleRepo repository.VehicleRepository
		logRepo     repository.BatteryLogRepository
		sessionRepo repository.ChargingSessionRepository
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect database", zap.Error(err))
		}
		defer db.Close()

		// 执行数据库迁移
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database migrated successfully")

		userRepo = postgres.NewUserRepository(db)
		vehicleRepo = postgres.NewVehicleRepository(db)
		logRepo = postgres.NewBatteryLogRepository(db)
		sessionRepo = postgres.NewChargingSessionRepository(db)

	default:
		userRepo = memory.NewUserRepository()
		vehicleRepo = memory.NewVehicleRepository()
		logRepo = memory.NewBatteryLogRepository()
		sessionRepo = memory.NewChargingSessionRepository()
	}

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run()

	// 创建健康状态管理器，等级变化时记录日志并广播
	monitor := state.NewManager(func(vehicleID, from, to string) {
		logger.Info("Battery health level changed",
			zap.String("vehicle_id", vehicleID),
			zap.String("from", from),
			zap.String("to", to))
		wsHub.BroadcastHealthTransition(vehicleID, from, to)
	})

	// 新连接的客户端收到当前健康状态快照
	wsHub.SetInitDataProvider(func() *ws.InitData {
		return &ws.InitData{States: monitor.GetAllStates()}
	})

	// 创建服务
	userService := service.NewUserService(logger, userRepo)
	vehicleService := service.NewVehicleService(logger, userRepo, vehicleRepo)
	batteryService := service.NewBatteryService(logger, vehicleRepo, logRepo, monitor, wsHub)
	chargingService := service.NewChargingService(logger, vehicleRepo, sessionRepo)

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(
		logger,
		userService,
		vehicleService,
		batteryService,
		chargingService,
		wsHub,
	)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSOrigins))

	// 注册路由
	handler.RegisterRoutes(router)

	// 启动 HTTP 服务器
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", server.Addr))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}

// corsMiddleware CORS 中间件
func corsMiddleware(origins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origins)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
