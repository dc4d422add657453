package service

import (
	"context"

	"gorm.io/datatypes"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// ==================== GroupService 分组服务 ====================

// GroupService 律所分组与权限
// 所有改动成员关系的操作都在同一事务内以分组归属修复收尾
type GroupService struct {
	uow *repository.UnitOfWork
}

// NewGroupService 创建分组服务
func NewGroupService(uow *repository.UnitOfWork) *GroupService {
	return &GroupService{uow: uow}
}

// Create 创建分组
func (s *GroupService) Create(ctx context.Context, user *model.User, lawFirm *model.LawFirm, req *dto.CreateGroupRequest) (*model.Group, error) {
	if model.IsReservedGroupName(req.Name) {
		return nil, ErrCannotUseThisName
	}
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	group := model.NewGroup(lawFirm.ID, req.Name, req.Description,
		model.NewPermission(req.PermissionVersion, req.Permission))

	err := s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.Create(ctx, group); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// Remove 删除分组，受保护分组不可删除
func (s *GroupService) Remove(ctx context.Context, user *model.User, lawFirm *model.LawFirm, groupIdx int64) (*model.Group, error) {
	group, err := s.uow.Groups.GetInLawFirm(ctx, groupIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotExistGroup
	}
	if group.IsProtected() {
		return nil, ErrCannotRemoveProtectedGroup
	}
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.Delete(ctx, group); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// AddUser 将律所成员加入分组
func (s *GroupService) AddUser(ctx context.Context, user *model.User, lawFirm *model.LawFirm, targetUserIdx, groupIdx int64) (*model.User, error) {
	target, group, err := s.resolveMembership(ctx, user, lawFirm, targetUserIdx, groupIdx)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.AddMembers(ctx, group.ID, target.ID); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// RemoveUser 将成员移出分组，移出后无分组的成员回到默认分组
func (s *GroupService) RemoveUser(ctx context.Context, user *model.User, lawFirm *model.LawFirm, targetUserIdx, groupIdx int64) (*model.User, error) {
	target, group, err := s.resolveMembership(ctx, user, lawFirm, targetUserIdx, groupIdx)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.RemoveMember(ctx, group.ID, target.ID); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// resolveMembership 成员操作的公共校验：所有者 -> 成员 -> 分组
func (s *GroupService) resolveMembership(ctx context.Context, user *model.User, lawFirm *model.LawFirm, targetUserIdx, groupIdx int64) (*model.User, *model.Group, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, nil, ErrHasNotPermission
	}

	target, err := s.uow.Users.GetInLawFirm(ctx, targetUserIdx, lawFirm.ID)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, ErrNotExistUser
	}

	group, err := s.uow.Groups.GetInLawFirm(ctx, groupIdx, lawFirm.ID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrNotExistGroup
	}
	return target, group, nil
}

// Update 修改分组名称和描述
// TODO: 改名为保留分组名时尚未拦截，需要确认受保护分组能否被改名
func (s *GroupService) Update(ctx context.Context, user *model.User, lawFirm *model.LawFirm, groupIdx int64, req *dto.UpdateGroupRequest) (*model.Group, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	group, err := s.uow.Groups.GetInLawFirm(ctx, groupIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotExistGroup
	}

	group.Name = req.Name
	group.Description = req.Description
	if err := s.uow.Groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdatePermission 替换分组权限
func (s *GroupService) UpdatePermission(ctx context.Context, user *model.User, lawFirm *model.LawFirm, groupIdx int64, req *dto.UpdatePermissionRequest) (*model.Group, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	group, err := s.uow.Groups.GetInLawFirm(ctx, groupIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotExistGroup
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if group.Permission == nil {
			group.Permission = model.NewPermission(req.PermissionVersion, req.Permission)
		} else {
			payload := req.Permission
			if payload == nil {
				payload = []int{}
			}
			group.Permission.Version = req.PermissionVersion
			group.Permission.Payload = datatypes.NewJSONSlice(payload)
		}
		if err := uow.Groups.SavePermission(ctx, group.Permission); err != nil {
			return err
		}
		group.PermissionID = &group.Permission.ID
		return uow.Groups.Update(ctx, group)
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// List 律所分组 (含成员、权限)
func (s *GroupService) List(ctx context.Context, lawFirm *model.LawFirm) ([]model.Group, error) {
	return s.uow.Groups.ListWithUsers(ctx, lawFirm.ID)
}
