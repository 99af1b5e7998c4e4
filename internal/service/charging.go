package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// ChargingService 充电会话服务
type ChargingService struct {
	logger   *zap.Logger
	vehicles repository.VehicleRepository
	sessions repository.ChargingSessionRepository
}

// NewChargingService 创建充电会话服务
func NewChargingService(logger *zap.Logger, vehicles repository.VehicleRepository, sessions repository.ChargingSessionRepository) *ChargingService {
	return &ChargingService{logger: logger, vehicles: vehicles, sessions: sessions}
}

// ScheduleInput 充电计划输入
type ScheduleInput struct {
	VehicleID      string
	StartTime      time.Time
	EndTime        *time.Time
	EnergyConsumed *float64
	Cost           *float64
}

// Schedule 创建充电会话/计划。车辆必须已存在。
func (s *ChargingService) Schedule(ctx context.Context, in ScheduleInput) (*models.ChargingSession, error) {
	if _, err := s.vehicles.GetByID(ctx, in.VehicleID); err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", in.VehicleID, err)
	}

	session := &models.ChargingSession{
		VehicleID:      in.VehicleID,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		EnergyConsumed: in.EnergyConsumed,
		Cost:           in.Cost,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Charging session scheduled",
		zap.String("session_id", session.ID),
		zap.String("vehicle_id", session.VehicleID))
	return session, nil
}

// List 分页获取车辆的充电会话，按 start_time 降序
func (s *ChargingService) List(ctx context.Context, vehicleID string, skip, limit int) ([]*models.ChargingSession, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleID, err)
	}
	return s.sessions.ListByVehicleID(ctx, vehicleID, skip, limit)
}
