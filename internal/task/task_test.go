package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/pkg/database"
)

func setupTestUoW(t *testing.T) *repository.UnitOfWork {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      "file::memory:",
		LogLevel: logger.Silent,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := database.Migrate(db, model.RegisterJoinTables, model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repository.NewUnitOfWork(db)
}

// ==================== 分组归属修复 ====================

func TestMembershipRepairTask_RunOnce(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	var orphanTotal int
	for _, orphans := range []int{2, 0, 1} {
		lawFirm := model.NewLawFirm("firm", "", "")
		if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
			t.Fatalf("创建律所失败: %v", err)
		}
		if err := uow.Groups.Create(ctx, model.NewDefaultGroup(lawFirm.ID)); err != nil {
			t.Fatalf("创建默认分组失败: %v", err)
		}
		for j := 0; j < orphans; j++ {
			user := &model.User{Type: model.UserTypeEmployee, Name: "u"}
			if err := uow.Users.Create(ctx, user); err != nil {
				t.Fatalf("创建用户失败: %v", err)
			}
			// 直接写入律所，绕过服务层，模拟无分组的成员
			if err := uow.Users.SetLawFirm(ctx, user.ID, lawFirm.ID); err != nil {
				t.Fatalf("SetLawFirm() error = %v", err)
			}
		}
		orphanTotal += orphans
	}

	task := NewMembershipRepairTask(uow, zap.NewNop(), "0 0 * * * *")
	task.concurrencyLimit = 1

	repaired, err := task.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if repaired != orphanTotal {
		t.Errorf("repaired = %d, want %d", repaired, orphanTotal)
	}

	repaired, err = task.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if repaired != 0 {
		t.Errorf("第二次执行 repaired = %d, want 0", repaired)
	}
}

func TestMembershipRepairTask_CanceledContext(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	lawFirm := model.NewLawFirm("firm", "", "")
	if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
		t.Fatalf("创建律所失败: %v", err)
	}

	task := NewMembershipRepairTask(uow, zap.NewNop(), "0 0 * * * *")
	task.concurrencyLimit = 1

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := task.RunOnce(canceled); err == nil {
		t.Errorf("context 已取消时应返回错误")
	}
}

// ==================== 通知清理 ====================

type fakeNotificationRepo struct {
	repository.NotificationRepository
	before  time.Time
	calls   int
	deleted int64
	err     error
}

func (f *fakeNotificationRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	f.calls++
	f.before = before
	return f.deleted, f.err
}

func TestNotificationCleanupTask_RunOnce(t *testing.T) {
	now := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		retention time.Duration
		repo      *fakeNotificationRepo
		want      int64
		wantCalls int
		wantErr   bool
	}{
		{"正常清理", 90 * 24 * time.Hour, &fakeNotificationRepo{deleted: 3}, 3, 1, false},
		{"保留期为 0 时不清理", 0, &fakeNotificationRepo{deleted: 3}, 0, 0, false},
		{"仓库出错", time.Hour, &fakeNotificationRepo{err: errors.New("db down")}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewNotificationCleanupTask(tt.repo, zap.NewNop(), "0 30 3 * * *", tt.retention)
			task.now = func() time.Time { return now }

			got, err := task.RunOnce(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunOnce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RunOnce() = %d, want %d", got, tt.want)
			}
			if tt.repo.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", tt.repo.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 {
				if want := now.Add(-tt.retention); !tt.repo.before.Equal(want) {
					t.Errorf("before = %v, want %v", tt.repo.before, want)
				}
			}
		})
	}
}

// ==================== TaskManager ====================

func TestTaskManager_Disabled(t *testing.T) {
	uow := setupTestUoW(t)
	tm := NewTaskManager(uow, zap.NewNop(), &TaskManagerConfig{})

	status := tm.Status()
	if status["membership"] || status["notification"] {
		t.Errorf("Status() = %v, 全部任务应处于关闭状态", status)
	}
	if _, err := tm.TriggerMembershipRepair(context.Background()); !errors.Is(err, ErrTaskDisabled) {
		t.Errorf("TriggerMembershipRepair() error = %v, want %v", err, ErrTaskDisabled)
	}
	if _, err := tm.TriggerNotificationCleanup(context.Background()); !errors.Is(err, ErrTaskDisabled) {
		t.Errorf("TriggerNotificationCleanup() error = %v, want %v", err, ErrTaskDisabled)
	}
}

func TestTaskManager_StartStop(t *testing.T) {
	uow := setupTestUoW(t)
	tm := NewTaskManager(uow, zap.NewNop(), DefaultConfig())

	if err := tm.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tm.Stop()

	if n, err := tm.TriggerNotificationCleanup(context.Background()); err != nil || n != 0 {
		t.Errorf("TriggerNotificationCleanup() = %d, %v", n, err)
	}
}

func TestTaskManager_InvalidSpec(t *testing.T) {
	uow := setupTestUoW(t)
	tm := NewTaskManager(uow, zap.NewNop(), &TaskManagerConfig{
		MembershipEnabled: true,
		MembershipSpec:    "not a cron spec",
	})
	if err := tm.Start(); err == nil {
		t.Errorf("非法 cron 表达式应启动失败")
	}
}
