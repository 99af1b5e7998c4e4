package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/battery"
	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
	"github.com/langchou/evlife/internal/state"
	"github.com/langchou/evlife/pkg/ws"
)

// BatteryService 电池遥测服务
type BatteryService struct {
	logger   *zap.Logger
	vehicles repository.VehicleRepository
	logs     repository.BatteryLogRepository
	monitor  *state.Manager // 可选
	hub      *ws.Hub        // 可选
}

// NewBatteryService 创建电池遥测服务。monitor 和 hub 可以为 nil。
func NewBatteryService(
	logger *zap.Logger,
	vehicles repository.VehicleRepository,
	logs repository.BatteryLogRepository,
	monitor *state.Manager,
	hub *ws.Hub,
) *BatteryService {
	return &BatteryService{
		logger:   logger,
		vehicles: vehicles,
		logs:     logs,
		monitor:  monitor,
		hub:      hub,
	}
}

// RecordLogInput 电池遥测采样输入
type RecordLogInput struct {
	SoC         float64
	SoH         float64
	Voltage     *float64
	Temperature *float64
	Cycles      int
}

// Record 记录一次电池遥测采样。健康评分和等级由服务端根据
// SoH、温度、循环次数计算，不接受调用方提供的评分。
func (s *BatteryService) Record(ctx context.Context, vehicleID string, in RecordLogInput) (*models.BatteryLog, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, err)
	}

	// 未上报温度按标称温度处理（不触发温度惩罚）
	temperature := battery.NominalTemperature
	if in.Temperature != nil {
		temperature = *in.Temperature
	}
	assessment := battery.Evaluate(in.SoH, temperature, in.Cycles)

	log := &models.BatteryLog{
		VehicleID:   vehicleID,
		SoC:         in.SoC,
		SoH:         in.SoH,
		Voltage:     in.Voltage,
		Temperature: in.Temperature,
		Cycles:      in.Cycles,
		HealthScore: assessment.Score,
		HealthLevel: string(assessment.Level),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("Battery log recorded",
		zap.String("vehicle_id", vehicleID),
		zap.Float64("health_score", assessment.Score),
		zap.String("health_level", string(assessment.Level)))

	if s.monitor != nil {
		machine := s.monitor.GetOrCreate(vehicleID)
		if err := machine.Observe(assessment); err != nil {
			s.logger.Warn("Failed to update health state", zap.Error(err), zap.String("vehicle_id", vehicleID))
		}
	}
	if s.hub != nil {
		s.hub.BroadcastBatteryUpdate(log)
	}

	return log, nil
}

// Latest 获取车辆最新的电池记录。区分两种未找到：
// 车辆不存在，以及车辆存在但没有记录（ErrNoBatteryData）。
func (s *BatteryService) Latest(ctx context.Context, vehicleID string) (*models.BatteryLog, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, err)
	}
	return s.logs.Latest(ctx, vehicleID)
}

// History 分页获取车辆的电池记录，按 recorded_at 降序
func (s *BatteryService) History(ctx context.Context, vehicleID string, skip, limit int) ([]*models.BatteryLog, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, err)
	}
	return s.logs.ListByVehicleID(ctx, vehicleID, skip, limit)
}
