package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== LawCaseRepository 案件仓库 ====================

// LawCaseRepository 案件仓库接口
type LawCaseRepository interface {
	Create(ctx context.Context, lawCase *model.LawCase) error
	GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.LawCase, error)
	Update(ctx context.Context, lawCase *model.LawCase) error
	Delete(ctx context.Context, id int64) error
	DeleteByLawFirm(ctx context.Context, lawFirmID int64) error
	ListWithMembers(ctx context.Context, lawFirmID int64, id *int64) ([]model.LawCase, error)

	// 负责人
	AddUser(ctx context.Context, lawCaseID, userID int64) error
	RemoveUser(ctx context.Context, lawCaseID, userID int64) error
	RemoveUserFromLawFirm(ctx context.Context, userID, lawFirmID int64) error

	// 关联客户
	AddCustomer(ctx context.Context, lawCaseID, customerID int64) error
	RemoveCustomer(ctx context.Context, lawCaseID, customerID int64) error
}

type lawCaseRepository struct {
	db *gorm.DB
}

// NewLawCaseRepository 创建案件仓库
func NewLawCaseRepository(db *gorm.DB) LawCaseRepository {
	return &lawCaseRepository{db: db}
}

// Create 创建案件
func (r *lawCaseRepository) Create(ctx context.Context, lawCase *model.LawCase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lawCase).Error
}

// GetInLawFirm 获取律所内的案件
func (r *lawCaseRepository) GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.LawCase, error) {
	var lawCase model.LawCase
	err := r.db.WithContext(ctx).
		Where("id = ? AND law_firm_id = ?", id, lawFirmID).
		First(&lawCase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lawCase, err
}

// Update 更新案件
func (r *lawCaseRepository) Update(ctx context.Context, lawCase *model.LawCase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lawCase).Error
}

// Delete 删除案件及其关联
func (r *lawCaseRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("law_case_id = ?", id).Delete(&model.LawCaseUser{}).Error; err != nil {
		return err
	}
	if err := db.Where("law_case_id = ?", id).Delete(&model.LawCaseCustomer{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.LawCase{}, id).Error
}

// DeleteByLawFirm 删除律所全部案件及其关联
func (r *lawCaseRepository) DeleteByLawFirm(ctx context.Context, lawFirmID int64) error {
	db := r.db.WithContext(ctx)
	lawCaseIDs := r.db.Model(&model.LawCase{}).Select("id").Where("law_firm_id = ?", lawFirmID)

	if err := db.Where("law_case_id IN (?)", lawCaseIDs).Delete(&model.LawCaseUser{}).Error; err != nil {
		return err
	}
	if err := db.Where("law_case_id IN (?)", lawCaseIDs).Delete(&model.LawCaseCustomer{}).Error; err != nil {
		return err
	}
	return db.Where("law_firm_id = ?", lawFirmID).Delete(&model.LawCase{}).Error
}

// ListWithMembers 案件列表 (含负责人、客户)，按更新时间倒序
// id 不为空时只返回该案件
func (r *lawCaseRepository) ListWithMembers(ctx context.Context, lawFirmID int64, id *int64) ([]model.LawCase, error) {
	query := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Customers").
		Where("law_firm_id = ?", lawFirmID)
	if id != nil {
		query = query.Where("id = ?", *id)
	}

	var lawCases []model.LawCase
	err := query.Order("updated_at DESC").Order("id DESC").Find(&lawCases).Error
	return lawCases, err
}

// ==================== 负责人 ====================

// AddUser 指派负责人，重复指派忽略
func (r *lawCaseRepository) AddUser(ctx context.Context, lawCaseID, userID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.LawCaseUser{LawCaseID: lawCaseID, UserID: userID}).Error
}

// RemoveUser 取消负责人
func (r *lawCaseRepository) RemoveUser(ctx context.Context, lawCaseID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("law_case_id = ? AND user_id = ?", lawCaseID, userID).
		Delete(&model.LawCaseUser{}).Error
}

// RemoveUserFromLawFirm 取消用户在律所内全部案件的指派
func (r *lawCaseRepository) RemoveUserFromLawFirm(ctx context.Context, userID, lawFirmID int64) error {
	lawCaseIDs := r.db.Model(&model.LawCase{}).Select("id").Where("law_firm_id = ?", lawFirmID)
	return r.db.WithContext(ctx).
		Where("user_id = ? AND law_case_id IN (?)", userID, lawCaseIDs).
		Delete(&model.LawCaseUser{}).Error
}

// ==================== 关联客户 ====================

// AddCustomer 关联客户，重复关联忽略
func (r *lawCaseRepository) AddCustomer(ctx context.Context, lawCaseID, customerID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.LawCaseCustomer{LawCaseID: lawCaseID, CustomerID: customerID}).Error
}

// RemoveCustomer 取消关联客户
func (r *lawCaseRepository) RemoveCustomer(ctx context.Context, lawCaseID, customerID int64) error {
	return r.db.WithContext(ctx).
		Where("law_case_id = ? AND customer_id = ?", lawCaseID, customerID).
		Delete(&model.LawCaseCustomer{}).Error
}
