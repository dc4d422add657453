package task

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"law_office_v1/internal/repository"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：分组归属修复、通知清理
type TaskManager struct {
	membershipTask   *MembershipRepairTask
	notificationTask *NotificationCleanupTask
	logger           *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 分组归属修复
	MembershipEnabled bool
	MembershipSpec    string

	// 通知清理
	NotificationEnabled   bool
	NotificationSpec      string
	NotificationRetention time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		MembershipEnabled: true,
		MembershipSpec:    "0 0 * * * *",

		NotificationEnabled:   true,
		NotificationSpec:      "0 30 3 * * *",
		NotificationRetention: 90 * 24 * time.Hour,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(uow *repository.UnitOfWork, logger *zap.Logger, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{logger: logger}

	if cfg.MembershipEnabled && cfg.MembershipSpec != "" {
		tm.membershipTask = NewMembershipRepairTask(uow, logger, cfg.MembershipSpec)
	}
	if cfg.NotificationEnabled && cfg.NotificationSpec != "" {
		tm.notificationTask = NewNotificationCleanupTask(uow.Notifications, logger, cfg.NotificationSpec, cfg.NotificationRetention)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	tm.logger.Info("[TaskManager] 正在启动后台任务...")

	if tm.membershipTask != nil {
		if err := tm.membershipTask.Start(); err != nil {
			return fmt.Errorf("启动分组归属修复任务失败: %w", err)
		}
	}
	if tm.notificationTask != nil {
		if err := tm.notificationTask.Start(); err != nil {
			return fmt.Errorf("启动通知清理任务失败: %w", err)
		}
	}

	tm.logger.Info("[TaskManager] 后台任务已全部启动")
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	tm.logger.Info("[TaskManager] 正在停止后台任务...")

	if tm.membershipTask != nil {
		tm.membershipTask.Stop()
	}
	if tm.notificationTask != nil {
		tm.notificationTask.Stop()
	}

	tm.logger.Info("[TaskManager] 后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerMembershipRepair 立即执行一次分组归属修复
func (tm *TaskManager) TriggerMembershipRepair(ctx context.Context) (int, error) {
	if tm.membershipTask == nil {
		return 0, ErrTaskDisabled
	}
	return tm.membershipTask.RunOnce(ctx)
}

// TriggerNotificationCleanup 立即执行一次通知清理
func (tm *TaskManager) TriggerNotificationCleanup(ctx context.Context) (int64, error) {
	if tm.notificationTask == nil {
		return 0, ErrTaskDisabled
	}
	return tm.notificationTask.RunOnce(ctx)
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"membership":   tm.membershipTask != nil,
		"notification": tm.notificationTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
