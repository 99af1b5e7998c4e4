package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// VehicleRepository 内存车辆仓库。
// VIN 唯一性通过索引表在持锁状态下检查并插入。
type VehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*models.Vehicle
	byVIN    map[string]string   // vin -> id（区分大小写）
	byUser   map[string][]string // user_id -> vehicle ids（插入顺序）
}

// NewVehicleRepository 创建内存车辆仓库
func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{
		vehicles: make(map[string]*models.Vehicle),
		byVIN:    make(map[string]string),
		byUser:   make(map[string][]string),
	}
}

// Create 插入车辆，VIN 重复返回 ErrVINTaken
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byVIN[vehicle.VIN]; ok {
		return repository.ErrVINTaken
	}

	vehicle.ID = uuid.NewString()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now()
	}

	stored := *vehicle
	r.vehicles[stored.ID] = &stored
	r.byVIN[stored.VIN] = stored.ID
	r.byUser[stored.UserID] = append(r.byUser[stored.UserID], stored.ID)
	return nil
}

// GetByID 通过 ID 获取车辆
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := *vehicle
	return &v, nil
}

// ListByUserID 按注册先后顺序返回某用户的车辆
func (r *VehicleRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	out := make([]*models.Vehicle, 0, len(ids))
	for _, id := range ids {
		v := *r.vehicles[id]
		out = append(out, &v)
	}
	return out, nil
}
