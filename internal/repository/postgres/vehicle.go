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

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository 创建车辆仓库
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create 插入车辆，唯一约束冲突映射为 ErrVINTaken
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, user_id, make, model, year, vin, battery_capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	vehicle.ID = uuid.NewString()
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now()
	}

	_, err := r.db.Pool.Exec(ctx, query,
		vehicle.ID,
		vehicle.UserID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.VIN,
		vehicle.BatteryCapacity,
		vehicle.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrVINTaken
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID 通过 ID 获取车辆
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, year, vin, battery_capacity, created_at
		FROM vehicles WHERE id = $1
	`
	vehicle := &models.Vehicle{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.UserID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.VIN,
		&vehicle.BatteryCapacity,
		&vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}
	return vehicle, nil
}

// ListByUserID 按注册先后顺序返回某用户的车辆
func (r *VehicleRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Vehicle, error) {
	query := `
		SELECT id, user_id, make, model, year, vin, battery_capacity, created_at
		FROM vehicles WHERE user_id = $1 ORDER BY seq
	`
	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*models.Vehicle, 0)
	for rows.Next() {
		vehicle := &models.Vehicle{}
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.UserID,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.VIN,
			&vehicle.BatteryCapacity,
			&vehicle.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}
