package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"law_office_v1/internal/model"
)

// ==================== UserAuthRepository 登录凭证仓库 ====================

// UserAuthRepository 登录凭证仓库接口
type UserAuthRepository interface {
	GetByLogin(ctx context.Context, authType model.AuthType, loginID string) (*model.UserAuth, error)
	ExistsByLogin(ctx context.Context, authType model.AuthType, loginID string) (bool, error)
}

type userAuthRepository struct {
	db *gorm.DB
}

// NewUserAuthRepository 创建登录凭证仓库
func NewUserAuthRepository(db *gorm.DB) UserAuthRepository {
	return &userAuthRepository{db: db}
}

// GetByLogin 根据登录方式和登录 ID 获取凭证
func (r *userAuthRepository) GetByLogin(ctx context.Context, authType model.AuthType, loginID string) (*model.UserAuth, error) {
	var auth model.UserAuth
	err := r.db.WithContext(ctx).
		Where("type = ? AND login_id = ?", authType, loginID).
		First(&auth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &auth, err
}

// ExistsByLogin 检查登录 ID 是否已被占用
func (r *userAuthRepository) ExistsByLogin(ctx context.Context, authType model.AuthType, loginID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserAuth{}).
		Where("type = ? AND login_id = ?", authType, loginID).
		Count(&count).Error
	return count > 0, err
}

// ==================== UserProfileRepository 用户资料仓库 ====================

// UserProfileRepository 律师信息、收款账户、协会信息
type UserProfileRepository interface {
	ExistsVerifiedLawyerNumber(ctx context.Context, serialNumber, issueNumber string) (bool, error)
	UpsertBankAccount(ctx context.Context, id *int64, info string) (int64, error)
	UpsertAffiliation(ctx context.Context, id *int64, office, branch string) (int64, error)
}

type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository 创建用户资料仓库
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

// ExistsVerifiedLawyerNumber 是否已有认证过的同号律师
func (r *userProfileRepository) ExistsVerifiedLawyerNumber(ctx context.Context, serialNumber, issueNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LawyerInfo{}).
		Where("is_verification = ?", true).
		Where("serial_number = ? OR issue_number = ?", serialNumber, issueNumber).
		Count(&count).Error
	return count > 0, err
}

// UpsertBankAccount 更新已有收款账户，不存在时新建，返回账户 ID
func (r *userProfileRepository) UpsertBankAccount(ctx context.Context, id *int64, info string) (int64, error) {
	if id != nil {
		err := r.db.WithContext(ctx).
			Model(&model.BankAccount{}).
			Where("id = ?", *id).
			Update("info", info).Error
		return *id, err
	}

	account := &model.BankAccount{Info: info}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return 0, err
	}
	return account.ID, nil
}

// UpsertAffiliation 更新已有协会信息，不存在时新建，返回记录 ID
func (r *userProfileRepository) UpsertAffiliation(ctx context.Context, id *int64, office, branch string) (int64, error) {
	if id != nil {
		err := r.db.WithContext(ctx).
			Model(&model.LawyerAffiliation{}).
			Where("id = ?", *id).
			Updates(map[string]interface{}{
				"affiliation_office": office,
				"affiliation_branch": branch,
			}).Error
		return *id, err
	}

	affiliation := &model.LawyerAffiliation{AffiliationOffice: office, AffiliationBranch: branch}
	if err := r.db.WithContext(ctx).Create(affiliation).Error; err != nil {
		return 0, err
	}
	return affiliation.ID, nil
}
