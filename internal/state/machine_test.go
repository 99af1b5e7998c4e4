package state

import (
	"testing"

	"github.com/langchou/evlife/internal/battery"
)

func TestMachineTransitions(t *testing.T) {
	var transitions [][2]string
	m := NewMachine("v1", func(vehicleID, from, to string) {
		transitions = append(transitions, [2]string{from, to})
	})

	if m.CurrentLevel() != LevelUnknown {
		t.Fatalf("initial level = %s", m.CurrentLevel())
	}

	if err := m.Observe(battery.Assessment{Score: 95, Level: battery.LevelExcellent}); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if m.CurrentLevel() != "excellent" {
		t.Fatalf("level = %s, want excellent", m.CurrentLevel())
	}

	// 等级不变不触发转换
	if err := m.Observe(battery.Assessment{Score: 93, Level: battery.LevelExcellent}); err != nil {
		t.Fatalf("Observe same level: %v", err)
	}
	if len(transitions) != 1 {
		t.Fatalf("transitions = %v, want 1", transitions)
	}
	if got := m.GetState(); got.Score != 93 {
		t.Fatalf("score not refreshed: %v", got.Score)
	}

	// 允许跨档跳变
	if err := m.Observe(battery.Assessment{Score: 47.6, Level: battery.LevelPoor}); err != nil {
		t.Fatalf("Observe poor: %v", err)
	}
	if len(transitions) != 2 || transitions[1] != [2]string{"excellent", "poor"} {
		t.Fatalf("transitions = %v", transitions)
	}

	// 等级可以恢复
	if err := m.Observe(battery.Assessment{Score: 80, Level: battery.LevelGood}); err != nil {
		t.Fatalf("Observe good: %v", err)
	}
	if m.CurrentLevel() != "good" {
		t.Fatalf("level = %s, want good", m.CurrentLevel())
	}
}

func TestManagerGetOrCreate(t *testing.T) {
	mgr := NewManager(nil)

	a := mgr.GetOrCreate("v1")
	b := mgr.GetOrCreate("v1")
	if a != b {
		t.Fatal("GetOrCreate should return the same machine")
	}

	if _, ok := mgr.Get("v2"); ok {
		t.Fatal("v2 should not exist yet")
	}

	_ = a.Observe(battery.Assessment{Score: 62, Level: battery.LevelFair})
	mgr.GetOrCreate("v2")

	states := mgr.GetAllStates()
	if len(states) != 2 {
		t.Fatalf("len(states) = %d, want 2", len(states))
	}
	if states["v1"].Level != "fair" {
		t.Fatalf("v1 level = %s", states["v1"].Level)
	}
	if states["v2"].Level != LevelUnknown {
		t.Fatalf("v2 level = %s", states["v2"].Level)
	}
}
