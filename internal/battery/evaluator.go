package battery

import "math"

// Level 电池健康等级
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

// Levels 所有健康等级（按由好到差排列）
var Levels = []Level{LevelExcellent, LevelGood, LevelFair, LevelPoor}

// Assessment 健康评估结果
type Assessment struct {
	Score float64 `json:"score"` // 0-100
	Level Level   `json:"level"`
}

// NominalTemperature 未上报温度时采用的标称温度（摄氏度）
const NominalTemperature = 25.0

// 评分参数
const (
	tempComfortMin = -10.0 // 舒适温度区间下限（含）
	tempComfortMax = 35.0  // 舒适温度区间上限（含）
	tempPenalty    = 0.8   // 区间外的固定惩罚系数

	cycleLifespan   = 2000.0 // 参考循环寿命
	cycleMaxPenalty = 0.3    // 满循环寿命对应的最大衰减
	cycleFloor      = 0.5    // 循环系数下限
)

// Evaluate 根据 SoH、温度和累计循环次数计算健康评分与等级。
// 纯函数：相同输入总是产生相同输出。
func Evaluate(soh, temperature float64, cycles int) Assessment {
	score := soh * temperatureFactor(temperature) * cycleFactor(cycles)

	// 保留两位小数
	score = math.Round(score*100) / 100

	// 系数均 <= 1.0，理论上不会越界，这里仍做一次钳制
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Assessment{Score: score, Level: LevelFor(score)}
}

// temperatureFactor 温度系数：舒适区间内 1.0，区间外固定 0.8（阶跃，不插值）
func temperatureFactor(t float64) float64 {
	if t < tempComfortMin || t > tempComfortMax {
		return tempPenalty
	}
	return 1.0
}

// cycleFactor 循环系数：随累计循环线性衰减，下限 0.5
func cycleFactor(cycles int) float64 {
	f := 1.0 - float64(cycles)/cycleLifespan*cycleMaxPenalty
	if f < cycleFloor {
		f = cycleFloor
	}
	return f
}

// LevelFor 评分到等级的映射，每档包含下界
func LevelFor(score float64) Level {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGood
	case score >= 60:
		return LevelFair
	default:
		return LevelPoor
	}
}
