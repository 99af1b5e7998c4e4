package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateUsers,
		migrationCreateVehicles,
		migrationCreateBatteryLogs,
		migrationCreateChargingSessions,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// isUniqueViolation 判断是否唯一约束冲突
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// 数据库迁移 SQL
// seq 列用于确定性的插入顺序排序（时间戳并列时的决胜依据）
const migrationCreateUsers = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    seq BIGSERIAL,
    email VARCHAR(255) NOT NULL UNIQUE,
    name VARCHAR(100) NOT NULL,
    phone VARCHAR(32),
    password_hash VARCHAR(100) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_seq ON users(seq);
`

const migrationCreateVehicles = `
CREATE TABLE IF NOT EXISTS vehicles (
    id UUID PRIMARY KEY,
    seq BIGSERIAL,
    user_id UUID NOT NULL REFERENCES users(id),
    make VARCHAR(50) NOT NULL,
    model VARCHAR(50) NOT NULL,
    year INT NOT NULL,
    vin VARCHAR(17) NOT NULL UNIQUE,
    battery_capacity DOUBLE PRECISION NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_vehicles_user_id ON vehicles(user_id);
`

const migrationCreateBatteryLogs = `
CREATE TABLE IF NOT EXISTS battery_logs (
    id UUID PRIMARY KEY,
    seq BIGSERIAL,
    vehicle_id UUID NOT NULL REFERENCES vehicles(id),
    soc DOUBLE PRECISION NOT NULL,
    soh DOUBLE PRECISION NOT NULL,
    voltage DOUBLE PRECISION,
    temperature DOUBLE PRECISION,
    cycles INT NOT NULL DEFAULT 0,
    health_score DOUBLE PRECISION NOT NULL,
    health_level VARCHAR(20) NOT NULL,
    recorded_at TIMESTAMP WITH TIME ZONE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_battery_logs_vehicle_id ON battery_logs(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_battery_logs_recorded_at ON battery_logs(recorded_at);
`

const migrationCreateChargingSessions = `
CREATE TABLE IF NOT EXISTS charging_sessions (
    id UUID PRIMARY KEY,
    seq BIGSERIAL,
    vehicle_id UUID NOT NULL REFERENCES vehicles(id),
    start_time TIMESTAMP WITH TIME ZONE NOT NULL,
    end_time TIMESTAMP WITH TIME ZONE,
    energy_consumed DOUBLE PRECISION,
    cost DOUBLE PRECISION,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_charging_sessions_vehicle_id ON charging_sessions(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_charging_sessions_start_time ON charging_sessions(start_time);
`
