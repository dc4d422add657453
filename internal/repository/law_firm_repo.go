package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== LawFirmRepository 律所仓库 ====================

// LawFirmRepository 律所仓库接口
type LawFirmRepository interface {
	Create(ctx context.Context, lawFirm *model.LawFirm) error
	GetByID(ctx context.Context, id int64) (*model.LawFirm, error)
	GetWithOwner(ctx context.Context, id int64) (*model.LawFirm, error)
	GetByJoinCode(ctx context.Context, joinCode string) (*model.LawFirm, error)
	Update(ctx context.Context, lawFirm *model.LawFirm) error
	SetOwner(ctx context.Context, id, ownerUserID int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

type lawFirmRepository struct {
	db *gorm.DB
}

// NewLawFirmRepository 创建律所仓库
func NewLawFirmRepository(db *gorm.DB) LawFirmRepository {
	return &lawFirmRepository{db: db}
}

// Create 创建律所，调用方负责先补全加入码
func (r *lawFirmRepository) Create(ctx context.Context, lawFirm *model.LawFirm) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lawFirm).Error
}

// GetByID 根据 ID 获取律所
func (r *lawFirmRepository) GetByID(ctx context.Context, id int64) (*model.LawFirm, error) {
	var lawFirm model.LawFirm
	err := r.db.WithContext(ctx).First(&lawFirm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lawFirm, err
}

// GetWithOwner 获取律所及所有者
func (r *lawFirmRepository) GetWithOwner(ctx context.Context, id int64) (*model.LawFirm, error) {
	var lawFirm model.LawFirm
	err := r.db.WithContext(ctx).Preload("OwnerUser").First(&lawFirm, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lawFirm, err
}

// GetByJoinCode 根据加入码获取律所
func (r *lawFirmRepository) GetByJoinCode(ctx context.Context, joinCode string) (*model.LawFirm, error) {
	var lawFirm model.LawFirm
	err := r.db.WithContext(ctx).Where("join_code = ?", joinCode).First(&lawFirm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lawFirm, err
}

// Update 更新律所基本信息
func (r *lawFirmRepository) Update(ctx context.Context, lawFirm *model.LawFirm) error {
	return r.db.WithContext(ctx).
		Model(lawFirm).
		Select("name", "address", "telephone", "join_code", "status").
		Updates(lawFirm).Error
}

// SetOwner 设置律所所有者
func (r *lawFirmRepository) SetOwner(ctx context.Context, id, ownerUserID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.LawFirm{}).
		Where("id = ?", id).
		Update("owner_user_id", ownerUserID).Error
}

// Delete 删除律所
func (r *lawFirmRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.LawFirm{}, id).Error
}

// Count 律所总数
func (r *lawFirmRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LawFirm{}).Count(&count).Error
	return count, err
}

// ListIDs 全部律所 ID
func (r *lawFirmRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.LawFirm{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
