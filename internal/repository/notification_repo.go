package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"law_office_v1/internal/model"
)

// NotificationRepository 委托通知仓库接口
type NotificationRepository interface {
	Create(ctx context.Context, notifications ...*model.SubAgentUserNotification) error
	ListByUser(ctx context.Context, userID, offsetIdx int64) ([]model.SubAgentUserNotification, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 批量写入通知
func (r *notificationRepository) Create(ctx context.Context, notifications ...*model.SubAgentUserNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(notifications).Error
}

// ListByUser 用户通知历史，每页 SubAgentPageSize 条，按 id 倒序
func (r *notificationRepository) ListByUser(ctx context.Context, userID, offsetIdx int64) ([]model.SubAgentUserNotification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if offsetIdx > 0 {
		query = query.Where("id < ?", offsetIdx)
	}

	var notifications []model.SubAgentUserNotification
	err := query.Order("id DESC").Limit(SubAgentPageSize).Find(&notifications).Error
	return notifications, err
}

// DeleteBefore 清理指定时间之前的通知，返回删除条数
func (r *notificationRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.SubAgentUserNotification{})
	return result.RowsAffected, result.Error
}
