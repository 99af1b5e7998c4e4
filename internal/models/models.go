package models

import "time"

// User 用户信息
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Vehicle 车辆信息
type Vehicle struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Make            string    `json:"make" db:"make"`
	Model           string    `json:"model" db:"model"`
	Year            int       `json:"year" db:"year"`
	VIN             string    `json:"vin" db:"vin"`
	BatteryCapacity float64   `json:"battery_capacity" db:"battery_capacity"` // kWh
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// BatteryLog 电池遥测记录（只追加，单条记录对应一次采样）
type BatteryLog struct {
	ID          string    `json:"id" db:"id"`
	VehicleID   string    `json:"vehicle_id" db:"vehicle_id"`
	SoC         float64   `json:"soc" db:"soc"` // 荷电状态 0-100
	SoH         float64   `json:"soh" db:"soh"` // 健康状态 0-100
	Voltage     *float64  `json:"voltage,omitempty" db:"voltage"`
	Temperature *float64  `json:"temperature,omitempty" db:"temperature"` // 摄氏度
	Cycles      int       `json:"cycles" db:"cycles"`                     // 累计充电循环次数
	HealthScore float64   `json:"health_score" db:"health_score"`         // 服务端计算，0-100
	HealthLevel string    `json:"health_level" db:"health_level"`         // excellent/good/fair/poor
	RecordedAt  time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ChargingSession 充电会话/计划
type ChargingSession struct {
	ID             string     `json:"id" db:"id"`
	VehicleID      string     `json:"vehicle_id" db:"vehicle_id"`
	StartTime      time.Time  `json:"start_time" db:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty" db:"end_time"` // 为空表示进行中/待执行
	EnergyConsumed *float64   `json:"energy_consumed,omitempty" db:"energy_consumed"` // kWh
	Cost           *float64   `json:"cost,omitempty" db:"cost"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
