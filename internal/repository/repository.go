package repository

import (
	"context"

	"github.com/langchou/evlife/internal/models"
)

// 存储抽象。内存实现是默认后端，Postgres 实现提供持久化，
// 两者遵循同一套语义：
//   - Create 负责分配标识符（UUID，永不复用）并原子插入；
//     唯一性检查与插入在同一临界区内完成，失败时不产生部分写入。
//   - 分页参数 skip/limit 越界时返回空序列而不是错误。

// UserRepository 用户仓库
type UserRepository interface {
	// Create 插入用户；邮箱重复时返回 ErrEmailTaken
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// List 按注册先后顺序返回用户
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
}

// VehicleRepository 车辆仓库
type VehicleRepository interface {
	// Create 插入车辆；VIN 重复时返回 ErrVINTaken
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Vehicle, error)
}

// BatteryLogRepository 电池记录仓库（只追加）
type BatteryLogRepository interface {
	Create(ctx context.Context, log *models.BatteryLog) error
	// Latest 返回 recorded_at 最大的记录；时间相同时取最后插入的一条。
	// 车辆没有任何记录时返回 ErrNoBatteryData。
	Latest(ctx context.Context, vehicleID string) (*models.BatteryLog, error)
	// ListByVehicleID 按 recorded_at 降序返回记录
	ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.BatteryLog, error)
}

// ChargingSessionRepository 充电会话仓库（只追加）
type ChargingSessionRepository interface {
	Create(ctx context.Context, session *models.ChargingSession) error
	// ListByVehicleID 按 start_time 降序返回会话，排序后再应用分页
	ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.ChargingSession, error)
}
