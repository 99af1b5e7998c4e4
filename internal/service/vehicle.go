package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// VehicleService 车辆服务
type VehicleService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	vehicles repository.VehicleRepository
}

// NewVehicleService 创建车辆服务
func NewVehicleService(logger *zap.Logger, users repository.UserRepository, vehicles repository.VehicleRepository) *VehicleService {
	return &VehicleService{logger: logger, users: users, vehicles: vehicles}
}

// RegisterVehicleInput 注册车辆输入
type RegisterVehicleInput struct {
	UserID          string
	Make            string
	Model           string
	Year            int
	VIN             string
	BatteryCapacity float64
}

// Register 注册车辆。车主必须已存在；VIN 重复时返回 ErrVINTaken，
// 两种失败都不产生写入。
func (s *VehicleService) Register(ctx context.Context, in RegisterVehicleInput) (*models.Vehicle, error) {
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("owner %s: %w", in.UserID, err)
	}

	vehicle := &models.Vehicle{
		UserID:          in.UserID,
		Make:            in.Make,
		Model:           in.Model,
		Year:            in.Year,
		VIN:             in.VIN,
		BatteryCapacity: in.BatteryCapacity,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle registered",
		zap.String("vehicle_id", vehicle.ID),
		zap.String("vin", vehicle.VIN))
	return vehicle, nil
}

// Get 通过 ID 获取车辆
func (s *VehicleService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, err)
	}
	return vehicle, nil
}

// ListByUser 获取某用户的车辆，用户不存在时返回 ErrNotFound
func (s *VehicleService) ListByUser(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return s.vehicles.ListByUserID(ctx, userID)
}
