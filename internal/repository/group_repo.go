package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== GroupRepository 分组仓库 ====================

// GroupRepository 分组仓库接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.Group, error)
	GetByName(ctx context.Context, lawFirmID int64, name string) (*model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, group *model.Group) error
	DeleteByLawFirm(ctx context.Context, lawFirmID int64) error
	ListWithUsers(ctx context.Context, lawFirmID int64) ([]model.Group, error)
	CountByLawFirm(ctx context.Context, lawFirmID int64) (int64, error)

	// 成员关系
	AddMembers(ctx context.Context, groupID int64, userIDs ...int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	ReplaceMembers(ctx context.Context, groupID int64, userIDs ...int64) error
	RemoveUserFromLawFirm(ctx context.Context, userID, lawFirmID int64) error
	ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error)

	// 权限
	SavePermission(ctx context.Context, permission *model.Permission) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建分组仓库
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create 创建分组 (连同权限)
func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Omit("Users").Create(group).Error
}

// GetInLawFirm 获取律所内的分组
func (r *groupRepository) GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Permission").
		Where("id = ? AND law_firm_id = ?", id, lawFirmID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

// GetByName 按名称获取律所内的分组
func (r *groupRepository) GetByName(ctx context.Context, lawFirmID int64, name string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("law_firm_id = ? AND name = ?", lawFirmID, name).
		Order("id ASC").
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

// Update 更新名称、描述和权限引用
func (r *groupRepository) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).
		Model(group).
		Select("name", "description", "permission_id").
		Updates(group).Error
}

// Delete 删除分组，连同成员关系与权限
func (r *groupRepository) Delete(ctx context.Context, group *model.Group) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("group_id = ?", group.ID).Delete(&model.GroupUser{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&model.Group{}, group.ID).Error; err != nil {
		return err
	}
	if group.PermissionID != nil {
		return db.Delete(&model.Permission{}, *group.PermissionID).Error
	}
	return nil
}

// DeleteByLawFirm 删除律所全部分组
func (r *groupRepository) DeleteByLawFirm(ctx context.Context, lawFirmID int64) error {
	db := r.db.WithContext(ctx)

	var groups []model.Group
	if err := db.Where("law_firm_id = ?", lawFirmID).Find(&groups).Error; err != nil {
		return err
	}
	for i := range groups {
		if err := r.Delete(ctx, &groups[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListWithUsers 律所分组列表 (含成员、权限)
func (r *groupRepository) ListWithUsers(ctx context.Context, lawFirmID int64) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.id ASC")
		}).
		Preload("Permission").
		Where("law_firm_id = ?", lawFirmID).
		Order("id ASC").
		Find(&groups).Error
	return groups, err
}

// CountByLawFirm 律所分组数
func (r *groupRepository) CountByLawFirm(ctx context.Context, lawFirmID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("law_firm_id = ?", lawFirmID).
		Count(&count).Error
	return count, err
}

// ==================== 成员关系 ====================

// AddMembers 批量加入分组，已存在的成员关系忽略
func (r *groupRepository) AddMembers(ctx context.Context, groupID int64, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.GroupUser, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, model.GroupUser{GroupID: groupID, UserID: userID})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// RemoveMember 移出分组
func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.GroupUser{}).Error
}

// ReplaceMembers 以给定成员替换分组全部成员
func (r *groupRepository) ReplaceMembers(ctx context.Context, groupID int64, userIDs ...int64) error {
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&model.GroupUser{}).Error; err != nil {
		return err
	}
	return r.AddMembers(ctx, groupID, userIDs...)
}

// RemoveUserFromLawFirm 将用户移出律所内全部分组
func (r *groupRepository) RemoveUserFromLawFirm(ctx context.Context, userID, lawFirmID int64) error {
	groupIDs := r.db.
		Model(&model.Group{}).
		Select("id").
		Where("law_firm_id = ?", lawFirmID)

	return r.db.WithContext(ctx).
		Where("user_id = ? AND group_id IN (?)", userID, groupIDs).
		Delete(&model.GroupUser{}).Error
}

// ListMemberIDs 分组成员 ID
func (r *groupRepository) ListMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupUser{}).
		Where("group_id = ?", groupID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ==================== 权限 ====================

// SavePermission 新建或更新权限
func (r *groupRepository) SavePermission(ctx context.Context, permission *model.Permission) error {
	return r.db.WithContext(ctx).Save(permission).Error
}
