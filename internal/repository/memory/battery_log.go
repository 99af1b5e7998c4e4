package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// BatteryLogRepository 内存电池记录仓库（只追加）
type BatteryLogRepository struct {
	mu        sync.RWMutex
	logs      map[string]*models.BatteryLog
	byVehicle map[string][]string // vehicle_id -> log ids（插入顺序）
}

// NewBatteryLogRepository 创建内存电池记录仓库
func NewBatteryLogRepository() *BatteryLogRepository {
	return &BatteryLogRepository{
		logs:      make(map[string]*models.BatteryLog),
		byVehicle: make(map[string][]string),
	}
}

// Create 追加电池记录
func (r *BatteryLogRepository) Create(ctx context.Context, log *models.BatteryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = uuid.NewString()
	now := time.Now()
	if log.RecordedAt.IsZero() {
		log.RecordedAt = now
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}

	stored := *log
	r.logs[stored.ID] = &stored
	r.byVehicle[stored.VehicleID] = append(r.byVehicle[stored.VehicleID], stored.ID)
	return nil
}

// Latest 返回 recorded_at 最大的记录，时间相同取最后插入的一条
func (r *BatteryLogRepository) Latest(ctx context.Context, vehicleID string) (*models.BatteryLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byVehicle[vehicleID]
	if len(ids) == 0 {
		return nil, repository.ErrNoBatteryData
	}

	var best *models.BatteryLog
	for _, id := range ids {
		log := r.logs[id]
		if best == nil || !log.RecordedAt.Before(best.RecordedAt) {
			best = log
		}
	}

	l := *best
	return &l, nil
}

// ListByVehicleID 按 recorded_at 降序返回记录
func (r *BatteryLogRepository) ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.BatteryLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byVehicle[vehicleID]
	logs := make([]*models.BatteryLog, 0, len(ids))
	for _, id := range ids {
		l := *r.logs[id]
		logs = append(logs, &l)
	}

	// 稳定排序：recorded_at 相同时保持插入顺序
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].RecordedAt.After(logs[j].RecordedAt)
	})

	return pageLogs(logs, skip, limit), nil
}

func pageLogs(logs []*models.BatteryLog, skip, limit int) []*models.BatteryLog {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(logs) {
		return []*models.BatteryLog{}
	}
	end := skip + limit
	if end > len(logs) {
		end = len(logs)
	}
	return logs[skip:end]
}
