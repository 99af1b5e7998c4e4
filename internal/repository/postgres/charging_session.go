package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/evlife/internal/models"
)

// ChargingSessionRepository 充电会话数据仓库
type ChargingSessionRepository struct {
	db *DB
}

// NewChargingSessionRepository 创建充电会话仓库
func NewChargingSessionRepository(db *DB) *ChargingSessionRepository {
	return &ChargingSessionRepository{db: db}
}

// Create 追加充电会话
func (r *ChargingSessionRepository) Create(ctx context.Context, session *models.ChargingSession) error {
	query := `
		INSERT INTO charging_sessions (id, vehicle_id, start_time, end_time, energy_consumed, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := r.db.Pool.Exec(ctx, query,
		session.ID,
		session.VehicleID,
		session.StartTime,
		session.EndTime,
		session.EnergyConsumed,
		session.Cost,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert charging session: %w", err)
	}
	return nil
}

// ListByVehicleID 按 start_time 降序返回会话
func (r *ChargingSessionRepository) ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.ChargingSession, error) {
	query := `
		SELECT id, vehicle_id, start_time, end_time, energy_consumed, cost, created_at
		FROM charging_sessions WHERE vehicle_id = $1
		ORDER BY start_time DESC, seq DESC OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Pool.Query(ctx, query, vehicleID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list charging sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*models.ChargingSession, 0)
	for rows.Next() {
		session := &models.ChargingSession{}
		err := rows.Scan(
			&session.ID,
			&session.VehicleID,
			&session.StartTime,
			&session.EndTime,
			&session.EnergyConsumed,
			&session.Cost,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan charging session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
