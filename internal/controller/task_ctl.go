package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/task"
)

// TaskTrigger 后台任务手动触发
type TaskTrigger interface {
	TriggerMembershipRepair(ctx context.Context) (int, error)
	TriggerNotificationCleanup(ctx context.Context) (int64, error)
	Status() map[string]bool
}

// TaskController 运维任务控制器
type TaskController struct {
	tasks  TaskTrigger
	logger *zap.Logger
}

// NewTaskController 创建运维任务控制器
func NewTaskController(tasks TaskTrigger, logger *zap.Logger) *TaskController {
	return &TaskController{tasks: tasks, logger: logger}
}

// ==================== Handler 实现 ====================

// Status 任务状态
// @Summary 查询后台任务启用状态
// @Tags Ops
// @Produce json
// @Param X-Ops-Token header string true "运维令牌"
// @Success 200 {object} map[string]bool
// @Router /ops/tasks [get]
func (ctl *TaskController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.tasks.Status())
}

// RepairMembership 立即修复分组归属
// @Summary 手动执行分组归属修复
// @Tags Ops
// @Produce json
// @Param X-Ops-Token header string true "运维令牌"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} ErrorResponse "任务未启用"
// @Router /ops/tasks/membership [post]
func (ctl *TaskController) RepairMembership(c *gin.Context) {
	repaired, err := ctl.tasks.TriggerMembershipRepair(c.Request.Context())
	if err != nil {
		ctl.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repaired_law_firms": repaired})
}

// CleanupNotifications 立即清理过期通知
// @Summary 手动执行通知清理
// @Tags Ops
// @Produce json
// @Param X-Ops-Token header string true "运维令牌"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} ErrorResponse "任务未启用"
// @Router /ops/tasks/notifications [post]
func (ctl *TaskController) CleanupNotifications(c *gin.Context) {
	purged, err := ctl.tasks.TriggerNotificationCleanup(c.Request.Context())
	if err != nil {
		ctl.respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged_notifications": purged})
}

func (ctl *TaskController) respondTaskError(c *gin.Context, err error) {
	if errors.Is(err, task.ErrTaskDisabled) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "task_disabled"})
		return
	}
	respondError(c, ctl.logger, err)
}
