package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// BatteryLogRepository 电池记录数据仓库
type BatteryLogRepository struct {
	db *DB
}

// NewBatteryLogRepository 创建电池记录仓库
func NewBatteryLogRepository(db *DB) *BatteryLogRepository {
	return &BatteryLogRepository{db: db}
}

// Create 追加电池记录
func (r *BatteryLogRepository) Create(ctx context.Context, log *models.BatteryLog) error {
	query := `
		INSERT INTO battery_logs (id, vehicle_id, soc, soh, voltage, temperature, cycles, health_score, health_level, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	log.ID = uuid.NewString()
	now := time.Now()
	if log.RecordedAt.IsZero() {
		log.RecordedAt = now
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}

	_, err := r.db.Pool.Exec(ctx, query,
		log.ID,
		log.VehicleID,
		log.SoC,
		log.SoH,
		log.Voltage,
		log.Temperature,
		log.Cycles,
		log.HealthScore,
		log.HealthLevel,
		log.RecordedAt,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert battery log: %w", err)
	}
	return nil
}

// Latest 返回 recorded_at 最大的记录，时间相同取 seq 最大的一条
func (r *BatteryLogRepository) Latest(ctx context.Context, vehicleID string) (*models.BatteryLog, error) {
	query := `
		SELECT id, vehicle_id, soc, soh, voltage, temperature, cycles, health_score, health_level, recorded_at, created_at
		FROM battery_logs WHERE vehicle_id = $1
		ORDER BY recorded_at DESC, seq DESC LIMIT 1
	`
	log := &models.BatteryLog{}
	err := r.db.Pool.QueryRow(ctx, query, vehicleID).Scan(
		&log.ID,
		&log.VehicleID,
		&log.SoC,
		&log.SoH,
		&log.Voltage,
		&log.Temperature,
		&log.Cycles,
		&log.HealthScore,
		&log.HealthLevel,
		&log.RecordedAt,
		&log.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoBatteryData
		}
		return nil, fmt.Errorf("get latest battery log: %w", err)
	}
	return log, nil
}

// ListByVehicleID 按 recorded_at 降序返回记录
func (r *BatteryLogRepository) ListByVehicleID(ctx context.Context, vehicleID string, skip, limit int) ([]*models.BatteryLog, error) {
	query := `
		SELECT id, vehicle_id, soc, soh, voltage, temperature, cycles, health_score, health_level, recorded_at, created_at
		FROM battery_logs WHERE vehicle_id = $1
		ORDER BY recorded_at DESC, seq DESC OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Pool.Query(ctx, query, vehicleID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list battery logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.BatteryLog, 0)
	for rows.Next() {
		log := &models.BatteryLog{}
		err := rows.Scan(
			&log.ID,
			&log.VehicleID,
			&log.SoC,
			&log.SoH,
			&log.Voltage,
			&log.Temperature,
			&log.Cycles,
			&log.HealthScore,
			&log.HealthLevel,
			&log.RecordedAt,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan battery log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}
