package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"law_office_v1/internal/repository"
	"law_office_v1/pkg/metrics"
)

const notificationTaskName = "notification_cleanup"

// NotificationCleanupTask 清理过期的委托通知
type NotificationCleanupTask struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
	Cron          *cron.Cron
	spec          string
	retention     time.Duration
	now           func() time.Time
}

func NewNotificationCleanupTask(notifications repository.NotificationRepository, logger *zap.Logger, spec string, retention time.Duration) *NotificationCleanupTask {
	return &NotificationCleanupTask{
		notifications: notifications,
		logger:        logger,
		Cron:          cron.New(cron.WithSeconds()),
		spec:          spec,
		retention:     retention,
		now:           time.Now,
	}
}

// Start 启动定时任务
func (t *NotificationCleanupTask) Start() error {
	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := t.RunOnce(ctx); err != nil {
			t.logger.Error("通知清理失败", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	t.logger.Info("通知清理任务已启动",
		zap.String("spec", t.spec),
		zap.Duration("retention", t.retention),
	)
	return nil
}

// Stop 停止定时任务
func (t *NotificationCleanupTask) Stop() {
	<-t.Cron.Stop().Done()
}

// RunOnce 删除保留期之前的通知，返回删除条数
func (t *NotificationCleanupTask) RunOnce(ctx context.Context) (int64, error) {
	if t.retention <= 0 {
		return 0, nil
	}

	before := t.now().Add(-t.retention)
	n, err := t.notifications.DeleteBefore(ctx, before)
	metrics.RecordTaskRun(notificationTaskName, err == nil)
	if err != nil {
		return 0, err
	}

	metrics.AddNotificationsPurged(n)
	if n > 0 {
		t.logger.Info("已清理过期通知", zap.Int64("count", n), zap.Time("before", before))
	}
	return n, nil
}
