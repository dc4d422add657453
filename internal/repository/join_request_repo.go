package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== JoinRequestRepository 加入申请仓库 ====================

// JoinRequestRepository 加入申请仓库接口
type JoinRequestRepository interface {
	Create(ctx context.Context, req *model.LawFirmJoinRequest) error
	GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.LawFirmJoinRequest, error)
	GetByUser(ctx context.Context, id, userID int64) (*model.LawFirmJoinRequest, error)
	Exists(ctx context.Context, userID, lawFirmID int64) (bool, error)
	ListByLawFirm(ctx context.Context, lawFirmID int64) ([]model.LawFirmJoinRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.LawFirmJoinRequest, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteByLawFirm(ctx context.Context, lawFirmID int64) error
}

type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository 创建加入申请仓库
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// Create 创建申请
func (r *joinRequestRepository) Create(ctx context.Context, req *model.LawFirmJoinRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

// GetInLawFirm 获取发往指定律所的申请 (含申请人)
func (r *joinRequestRepository) GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.LawFirmJoinRequest, error) {
	var req model.LawFirmJoinRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND law_firm_id = ?", id, lawFirmID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

// GetByUser 获取申请人自己的申请
func (r *joinRequestRepository) GetByUser(ctx context.Context, id, userID int64) (*model.LawFirmJoinRequest, error) {
	var req model.LawFirmJoinRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

// Exists 是否已有待处理申请
func (r *joinRequestRepository) Exists(ctx context.Context, userID, lawFirmID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LawFirmJoinRequest{}).
		Where("user_id = ? AND law_firm_id = ?", userID, lawFirmID).
		Count(&count).Error
	return count > 0, err
}

// ListByLawFirm 律所收到的申请 (含申请人)
func (r *joinRequestRepository) ListByLawFirm(ctx context.Context, lawFirmID int64) ([]model.LawFirmJoinRequest, error) {
	var reqs []model.LawFirmJoinRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("law_firm_id = ?", lawFirmID).
		Order("id ASC").
		Find(&reqs).Error
	return reqs, err
}

// ListByUser 用户发出的申请 (含律所)
func (r *joinRequestRepository) ListByUser(ctx context.Context, userID int64) ([]model.LawFirmJoinRequest, error) {
	var reqs []model.LawFirmJoinRequest
	err := r.db.WithContext(ctx).
		Preload("LawFirm").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&reqs).Error
	return reqs, err
}

// CountByUser 用户的待处理申请数
func (r *joinRequestRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LawFirmJoinRequest{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Delete 删除申请
func (r *joinRequestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.LawFirmJoinRequest{}, id).Error
}

// DeleteByUser 清空用户的全部申请
func (r *joinRequestRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.LawFirmJoinRequest{}).Error
}

// DeleteByLawFirm 清空律所收到的全部申请
func (r *joinRequestRepository) DeleteByLawFirm(ctx context.Context, lawFirmID int64) error {
	return r.db.WithContext(ctx).
		Where("law_firm_id = ?", lawFirmID).
		Delete(&model.LawFirmJoinRequest{}).Error
}
