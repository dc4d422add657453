package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"law_office_v1/internal/repository"
	"law_office_v1/pkg/metrics"
)

const membershipTaskName = "membership_repair"

// MembershipRepairTask 定期修复分组归属：律所成员至少属于一个分组
type MembershipRepairTask struct {
	uow    *repository.UnitOfWork
	logger *zap.Logger
	Cron   *cron.Cron
	spec   string

	concurrencyLimit int
	timeout          time.Duration
}

func NewMembershipRepairTask(uow *repository.UnitOfWork, logger *zap.Logger, spec string) *MembershipRepairTask {
	return &MembershipRepairTask{
		uow:              uow,
		logger:           logger,
		Cron:             cron.New(cron.WithSeconds()),
		spec:             spec,
		concurrencyLimit: 4,
		timeout:          5 * time.Minute,
	}
}

// Start 启动定时任务
func (t *MembershipRepairTask) Start() error {
	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		if _, err := t.RunOnce(ctx); err != nil {
			t.logger.Error("分组归属修复失败", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	t.Cron.Start()
	t.logger.Info("分组归属修复任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止定时任务，等待正在执行的任务结束
func (t *MembershipRepairTask) Stop() {
	<-t.Cron.Stop().Done()
}

// RunOnce 对全部律所执行一次修复，返回补入默认分组的人数
func (t *MembershipRepairTask) RunOnce(ctx context.Context) (int, error) {
	lawFirmIDs, err := t.uow.LawFirms.ListIDs(ctx)
	if err != nil {
		metrics.RecordTaskRun(membershipTaskName, false)
		return 0, err
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup
	var repaired, failed atomic.Int64

	for _, lawFirmID := range lawFirmIDs {
		select {
		case <-ctx.Done():
			t.logger.Warn("分组归属修复超时停止")
			wg.Wait()
			metrics.RecordTaskRun(membershipTaskName, false)
			return int(repaired.Load()), ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()

			var n int
			err := t.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
				var err error
				n, err = uow.EnsureDefaultGroupMembership(ctx, id)
				return err
			})
			if err != nil {
				failed.Add(1)
				t.logger.Error("律所分组归属修复失败", zap.Int64("law_firm_id", id), zap.Error(err))
				return
			}
			if n > 0 {
				repaired.Add(int64(n))
				t.logger.Info("补入默认分组", zap.Int64("law_firm_id", id), zap.Int("users", n))
			}
		}(lawFirmID)
	}
	wg.Wait()

	total := int(repaired.Load())
	metrics.AddMembershipRepairs(total)
	metrics.RecordTaskRun(membershipTaskName, failed.Load() == 0)
	return total, nil
}
