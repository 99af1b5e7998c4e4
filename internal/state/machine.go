package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/langchou/evlife/internal/battery"
)

// LevelUnknown 尚未收到任何遥测时的初始等级
const LevelUnknown = "unknown"

// HealthState 车辆当前的电池健康状态
type HealthState struct {
	VehicleID string    `json:"vehicle_id"`
	Level     string    `json:"level"`
	Score     float64   `json:"score"`
	Since     time.Time `json:"since"` // 进入当前等级的时间
}

// observeEvent 等级对应的观测事件名
func observeEvent(level string) string {
	return "observe_" + level
}

// healthEvents 构造等级间的转换规则：任意等级（含 unknown）可以
// 转换到任意其他等级，单条遥测就可能让评分跨档
func healthEvents() fsm.Events {
	levels := make([]string, 0, len(battery.Levels))
	for _, l := range battery.Levels {
		levels = append(levels, string(l))
	}

	events := make(fsm.Events, 0, len(levels))
	for _, dst := range levels {
		srcs := []string{LevelUnknown}
		for _, src := range levels {
			if src != dst {
				srcs = append(srcs, src)
			}
		}
		events = append(events, fsm.EventDesc{Name: observeEvent(dst), Src: srcs, Dst: dst})
	}
	return events
}

// Machine 单辆车的健康等级状态机
type Machine struct {
	mu           sync.RWMutex
	vehicleID    string
	fsm          *fsm.FSM
	state        *HealthState
	onTransition func(vehicleID, from, to string)
}

// NewMachine 创建状态机
func NewMachine(vehicleID string, onTransition func(vehicleID, from, to string)) *Machine {
	m := &Machine{
		vehicleID:    vehicleID,
		onTransition: onTransition,
		state: &HealthState{
			VehicleID: vehicleID,
			Level:     LevelUnknown,
			Since:     time.Now(),
		},
	}

	m.fsm = fsm.NewFSM(
		LevelUnknown,
		healthEvents(),
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if m.onTransition != nil && e.Src != e.Dst {
					m.onTransition(m.vehicleID, e.Src, e.Dst)
				}
			},
		},
	)

	return m
}

// CurrentLevel 获取当前等级
func (m *Machine) CurrentLevel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Current()
}

// GetState 获取完整状态
func (m *Machine) GetState() *HealthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// 返回副本
	stateCopy := *m.state
	stateCopy.Level = m.fsm.Current()
	return &stateCopy
}

// Observe 喂入一次健康评估。等级变化时触发转换回调；
// 等级不变时只刷新评分。
func (m *Machine) Observe(a battery.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Score = a.Score

	level := string(a.Level)
	if m.fsm.Current() == level {
		return nil
	}

	if err := m.fsm.Event(context.Background(), observeEvent(level)); err != nil {
		return fmt.Errorf("observe level %s: %w", level, err)
	}

	m.state.Level = m.fsm.Current()
	m.state.Since = time.Now()
	return nil
}

// Manager 状态机管理器
type Manager struct {
	mu       sync.RWMutex
	machines map[string]*Machine
	onChange func(vehicleID, from, to string)
}

// NewManager 创建管理器
func NewManager(onChange func(vehicleID, from, to string)) *Manager {
	return &Manager{
		machines: make(map[string]*Machine),
		onChange: onChange,
	}
}

// GetOrCreate 获取或创建状态机
func (m *Manager) GetOrCreate(vehicleID string) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if machine, ok := m.machines[vehicleID]; ok {
		return machine
	}

	machine := NewMachine(vehicleID, m.onChange)
	m.machines[vehicleID] = machine
	return machine
}

// Get 获取状态机
func (m *Manager) Get(vehicleID string) (*Machine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machine, ok := m.machines[vehicleID]
	return machine, ok
}

// GetAllStates 获取所有车辆的健康状态
func (m *Manager) GetAllStates() map[string]*HealthState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make(map[string]*HealthState)
	for vehicleID, machine := range m.machines {
		states[vehicleID] = machine.GetState()
	}
	return states
}
