package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/evlife/internal/models"
)

// ChargingSessionRepository 内存充电会话仓库（只追加）
type ChargingSessionRepository struct {
	mu        sync.RWMutex
	sessions  map[string]*models.ChargingSession
	byVehicle map[string][]string // vehicle_id -> session ids（插入顺序）
}

// NewChargingSessionRepository 创建内存充电会话仓库
func NewChargingSessionRepository() *ChargingSessionRepository {
	return &ChargingSessionRepository{
		sessions:  make(map[string]*models.ChargingSession),
		byVehicle: make(map[string][]string),
	}
}

// Create 追加充电会话
func (r *ChargingSessionRepository) Create(ctx context.Context, session *models.ChargingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	stored := *session
	r.sessions[stored.ID] = &stored
	r.byVehicle[stored.VehicleID] = append(r.byVehicle[stored.VehicleID], stored.ID)
	return nil
}

// ListByVehicleID 按 start_time 降序返回会话，排序后再分页
func (r *ChargingSessionRepository) ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.ChargingSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byVehicle[vehicleID]
	sessions := make([]*models.ChargingSession, 0, len(ids))
	for _, id := range ids {
		s := *r.sessions[id]
		sessions = append(sessions, &s)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(sessions) {
		return []*models.ChargingSession{}, nil
	}
	end := skip + limit
	if end > len(sessions) {
		end = len(sessions)
	}
	return sessions[skip:end], nil
}
