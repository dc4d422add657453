package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetWithLawFirm(ctx context.Context, id int64) (*model.User, error)
	GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.User, error)
	GetProfile(ctx context.Context, id int64, includePrivate bool) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetLawFirm(ctx context.Context, id, lawFirmID int64) error
	ClearLawFirm(ctx context.Context, id int64) error
	ClearLawFirmForAll(ctx context.Context, lawFirmID int64) error
	ListByLawFirm(ctx context.Context, lawFirmID int64) ([]model.User, error)
	ListOrphanIDs(ctx context.Context, lawFirmID int64) ([]int64, error)
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户 (连同登录凭证、律师信息)
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 根据 ID 获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetWithLawFirm 获取用户及其律所 (含律所所有者)
func (r *userRepository) GetWithLawFirm(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("LawFirm").
		Preload("LawFirm.OwnerUser").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetInLawFirm 获取属于指定律所的用户
func (r *userRepository) GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND law_firm_id = ?", id, lawFirmID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetProfile 获取用户资料
// includePrivate 为 true 时附带收款账户，仅本人可见
func (r *userRepository) GetProfile(ctx context.Context, id int64, includePrivate bool) (*model.User, error) {
	query := r.db.WithContext(ctx).
		Preload("LawyerAffiliation").
		Preload("LawyerInfo")
	if includePrivate {
		query = query.Preload("BankAccount")
	}

	var user model.User
	err := query.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// Update 更新用户本身字段，不级联关联
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// SetLawFirm 设置所属律所
func (r *userRepository) SetLawFirm(ctx context.Context, id, lawFirmID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("law_firm_id", lawFirmID).Error
}

// ClearLawFirm 清除所属律所
func (r *userRepository) ClearLawFirm(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("law_firm_id", gorm.Expr("NULL")).Error
}

// ClearLawFirmForAll 清除律所全部成员的归属 (律所解散)
func (r *userRepository) ClearLawFirmForAll(ctx context.Context, lawFirmID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("law_firm_id = ?", lawFirmID).
		Update("law_firm_id", gorm.Expr("NULL")).Error
}

// ListByLawFirm 律所成员列表
func (r *userRepository) ListByLawFirm(ctx context.Context, lawFirmID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("law_firm_id = ?", lawFirmID).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// ListOrphanIDs 律所内不属于该律所任何分组的成员
func (r *userRepository) ListOrphanIDs(ctx context.Context, lawFirmID int64) ([]int64, error) {
	memberships := r.db.
		Table("group_users").
		Select("group_users.user_id").
		Joins("JOIN law_firm_groups ON law_firm_groups.id = group_users.group_id").
		Where("law_firm_groups.law_firm_id = ?", lawFirmID)

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("law_firm_id = ?", lawFirmID).
		Where("id NOT IN (?)", memberships).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
