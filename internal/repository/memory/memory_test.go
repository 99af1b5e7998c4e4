package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

func TestUserEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	first := &models.User{Email: "kim@example.com", Name: "Kim"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}

	dup := &models.User{Email: "kim@example.com", Name: "Other Kim"}
	err := repo.Create(ctx, dup)
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("ErrEmailTaken should wrap ErrConflict")
	}

	// 冲突不产生部分写入
	users, err := repo.List(ctx, 0, 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}

	// 邮箱区分大小写，不做归一化
	upper := &models.User{Email: "KIM@example.com", Name: "Kim"}
	if err := repo.Create(ctx, upper); err != nil {
		t.Fatalf("case-sensitive create: %v", err)
	}
}

func TestUserGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &models.User{Email: "lee@example.com", Name: "Lee"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "lee@example.com" {
		t.Fatalf("email = %q", got.Email)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for _, e := range emails {
		if err := repo.Create(ctx, &models.User{Email: e, Name: e}); err != nil {
			t.Fatalf("Create %s: %v", e, err)
		}
	}

	users, _ := repo.List(ctx, 1, 1)
	if len(users) != 1 || users[0].Email != "b@x.com" {
		t.Fatalf("skip=1 limit=1: %+v", users)
	}

	// 越界返回空序列而不是错误
	users, err := repo.List(ctx, 10, 5)
	if err != nil {
		t.Fatalf("List out of range: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("len = %d, want 0", len(users))
	}
}

func TestVehicleVINUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository()

	vin := "5YJ3E1EA7KF000001"
	if err := repo.Create(ctx, &models.Vehicle{UserID: "u1", VIN: vin, Make: "Tesla", Model: "Model 3"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, &models.Vehicle{UserID: "u2", VIN: vin, Make: "Tesla", Model: "Model Y"})
	if !errors.Is(err, repository.ErrVINTaken) {
		t.Fatalf("err = %v, want ErrVINTaken", err)
	}

	vehicles, _ := repo.ListByUserID(ctx, "u2")
	if len(vehicles) != 0 {
		t.Fatalf("conflict must not insert, got %d vehicles", len(vehicles))
	}
}

func TestBatteryLogLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewBatteryLogRepository()

	if _, err := repo.Latest(ctx, "v1"); !errors.Is(err, repository.ErrNoBatteryData) {
		t.Fatalf("err = %v, want ErrNoBatteryData", err)
	}

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		log := &models.BatteryLog{VehicleID: "v1", SoC: float64(50 + i), SoH: 95, RecordedAt: base.Add(offset)}
		if err := repo.Create(ctx, log); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	latest, err := repo.Latest(ctx, "v1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !latest.RecordedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("latest.RecordedAt = %v", latest.RecordedAt)
	}
	if latest.SoC != 51 {
		t.Fatalf("latest.SoC = %v, want 51", latest.SoC)
	}
}

func TestBatteryLogLatestTieBreak(t *testing.T) {
	ctx := context.Background()
	repo := NewBatteryLogRepository()

	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	first := &models.BatteryLog{VehicleID: "v1", SoC: 10, SoH: 90, RecordedAt: at}
	second := &models.BatteryLog{VehicleID: "v1", SoC: 20, SoH: 90, RecordedAt: at}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	// 时间戳相同时取最后插入的记录
	latest, err := repo.Latest(ctx, "v1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("latest.ID = %s, want the most recently inserted", latest.ID)
	}
}

func TestChargingSessionListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewChargingSessionRepository()

	base := time.Date(2026, 2, 1, 22, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{time.Hour, 0, 2 * time.Hour} {
		s := &models.ChargingSession{VehicleID: "v1", StartTime: base.Add(offset)}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sessions, err := repo.ListByVehicleID(ctx, "v1", 0, 10)
	if err != nil {
		t.Fatalf("ListByVehicleID: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("len = %d, want 3", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartTime.After(sessions[i-1].StartTime) {
			t.Fatalf("sessions not in descending order by start_time")
		}
	}

	// 排序后再分页
	pageTwo, _ := repo.ListByVehicleID(ctx, "v1", 2, 10)
	if len(pageTwo) != 1 || !pageTwo[0].StartTime.Equal(base) {
		t.Fatalf("skip=2: %+v", pageTwo)
	}

	empty, err := repo.ListByVehicleID(ctx, "v1", 10, 10)
	if err != nil || len(empty) != 0 {
		t.Fatalf("out of range: sessions=%v err=%v", empty, err)
	}
}

func TestUserCreateConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	// 并发写入同一邮箱，检查与插入必须原子
	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &models.User{Email: "race@example.com", Name: "Racer"})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrEmailTaken):
			taken++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || taken != n-1 {
		t.Fatalf("ok = %d, taken = %d, want 1 and %d", ok, taken, n-1)
	}

	users, err := repo.List(ctx, 0, 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
}

func TestVehicleCreateConcurrentSameVIN(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &models.Vehicle{
				UserID:          "owner-1",
				Make:            "Tesla",
				Model:           "Model 3",
				Year:            2023,
				VIN:             "5YJ3E1EA7KF000001",
				BatteryCapacity: 60,
			})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrVINTaken):
			taken++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || taken != n-1 {
		t.Fatalf("ok = %d, taken = %d, want 1 and %d", ok, taken, n-1)
	}

	vehicles, err := repo.ListByUserID(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("len(vehicles) = %d, want 1", len(vehicles))
	}
}
