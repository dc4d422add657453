package service

import (
	"context"
	"fmt"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// SeedLawFirmName 默认律所名称
const SeedLawFirmName = "기본 로펌"

// ==================== LawFirmService 律所服务 ====================

// LawFirmService 律所生命周期
type LawFirmService struct {
	uow *repository.UnitOfWork
}

// NewLawFirmService 创建律所服务
func NewLawFirmService(uow *repository.UnitOfWork) *LawFirmService {
	return &LawFirmService{uow: uow}
}

// Create 创建律所，创建者成为所有者并加入管理员分组
func (s *LawFirmService) Create(ctx context.Context, user *model.User, req *dto.CreateLawFirmRequest) (*model.LawFirm, error) {
	if user.LawFirmID != nil {
		return nil, ErrAlreadyJoinLawFirm
	}
	if !user.IsLawyer() {
		return nil, ErrEmployeeCannotCreateLawFirm
	}

	lawFirm := model.NewLawFirm(req.Name, req.Address, req.Telephone)
	lawFirm.OwnerUserID = &user.ID

	err := s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		// 1. 清理创建者的待处理申请
		if err := uow.JoinRequests.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}

		// 2. 律所
		lawFirm.EnsureJoinCode()
		if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
			return fmt.Errorf("创建律所失败: %w", err)
		}

		// 3. 受保护分组
		if err := createProtectedGroups(ctx, uow, lawFirm.ID, user.ID); err != nil {
			return err
		}

		// 4. 创建者归属
		if err := uow.Users.SetLawFirm(ctx, user.ID, lawFirm.ID); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	user.LawFirmID = &lawFirm.ID
	groups, err := s.uow.Groups.ListWithUsers(ctx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	lawFirm.Groups = groups
	return lawFirm, nil
}

// createProtectedGroups 创建管理员、默认分组，ownerUserID > 0 时加入管理员分组
func createProtectedGroups(ctx context.Context, uow *repository.UnitOfWork, lawFirmID, ownerUserID int64) error {
	admin := model.NewAdminGroup(lawFirmID)
	if err := uow.Groups.Create(ctx, admin); err != nil {
		return fmt.Errorf("创建管理员分组失败: %w", err)
	}
	if ownerUserID > 0 {
		if err := uow.Groups.AddMembers(ctx, admin.ID, ownerUserID); err != nil {
			return err
		}
	}

	if err := uow.Groups.Create(ctx, model.NewDefaultGroup(lawFirmID)); err != nil {
		return fmt.Errorf("创建默认分组失败: %w", err)
	}
	return nil
}

// Update 修改律所信息，空字段不修改
func (s *LawFirmService) Update(ctx context.Context, user *model.User, lawFirm *model.LawFirm, req *dto.UpdateLawFirmRequest) (*model.LawFirm, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	if req.Name != "" {
		lawFirm.Name = req.Name
	}
	if req.Address != "" {
		lawFirm.Address = req.Address
	}
	if req.Telephone != "" {
		lawFirm.Telephone = req.Telephone
	}
	if req.JoinCode != "" {
		lawFirm.ResetJoinCode()
	}
	lawFirm.EnsureJoinCode()

	if err := s.uow.LawFirms.Update(ctx, lawFirm); err != nil {
		return nil, err
	}
	return lawFirm, nil
}

// Get 律所详情 (含所有者)
func (s *LawFirmService) Get(ctx context.Context, lawFirm *model.LawFirm) (*model.LawFirm, error) {
	found, err := s.uow.LawFirms.GetWithOwner(ctx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotExistLawFirm
	}
	return found, nil
}

// Withdraw 退出律所，所有者不能退出
func (s *LawFirmService) Withdraw(ctx context.Context, user *model.User, lawFirm *model.LawFirm) (*model.User, error) {
	if lawFirm.IsOwner(user.ID) {
		return nil, ErrCannotWithdraw
	}

	err := s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.RemoveUserFromLawFirm(ctx, user.ID, lawFirm.ID); err != nil {
			return err
		}
		if err := uow.LawCases.RemoveUserFromLawFirm(ctx, user.ID, lawFirm.ID); err != nil {
			return err
		}
		if err := uow.Users.ClearLawFirm(ctx, user.ID); err != nil {
			return err
		}
		_, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	user.LawFirmID = nil
	user.LawFirm = nil
	return user, nil
}

// Disband 解散律所，连同分组、申请、客户、案件一并删除
func (s *LawFirmService) Disband(ctx context.Context, user *model.User, lawFirm *model.LawFirm) (*model.LawFirm, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	err := s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Groups.DeleteByLawFirm(ctx, lawFirm.ID); err != nil {
			return fmt.Errorf("删除分组失败: %w", err)
		}
		if err := uow.JoinRequests.DeleteByLawFirm(ctx, lawFirm.ID); err != nil {
			return fmt.Errorf("删除加入申请失败: %w", err)
		}
		if err := uow.Customers.DeleteByLawFirm(ctx, lawFirm.ID); err != nil {
			return fmt.Errorf("删除客户失败: %w", err)
		}
		if err := uow.LawCases.DeleteByLawFirm(ctx, lawFirm.ID); err != nil {
			return fmt.Errorf("删除案件失败: %w", err)
		}
		if err := uow.Users.ClearLawFirmForAll(ctx, lawFirm.ID); err != nil {
			return err
		}
		return uow.LawFirms.Delete(ctx, lawFirm.ID)
	})
	if err != nil {
		return nil, err
	}

	lawFirm.Status = model.LawFirmStatusDeleted
	return lawFirm, nil
}

// ChangeOwner 转让律所，管理员分组只保留新所有者
func (s *LawFirmService) ChangeOwner(ctx context.Context, user *model.User, lawFirm *model.LawFirm, targetUserIdx int64) (*model.User, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	target, err := s.uow.Users.GetByID(ctx, targetUserIdx)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotExistUser
	}
	if !target.BelongsTo(lawFirm.ID) {
		return nil, ErrTargetUserNotInLawFirm
	}
	if !target.IsLawyer() {
		return nil, ErrEmployeeCannotBeOwner
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.LawFirms.SetOwner(ctx, lawFirm.ID, target.ID); err != nil {
			return err
		}

		admin, err := uow.Groups.GetByName(ctx, lawFirm.ID, model.AdminGroupName)
		if err != nil {
			return err
		}
		if admin == nil {
			return fmt.Errorf("律所 %d 缺少管理员分组", lawFirm.ID)
		}
		if err := uow.Groups.ReplaceMembers(ctx, admin.ID, target.ID); err != nil {
			return err
		}

		defaultGroup, err := uow.Groups.GetByName(ctx, lawFirm.ID, model.DefaultGroupName)
		if err != nil {
			return err
		}
		if defaultGroup == nil {
			return fmt.Errorf("律所 %d 缺少默认分组", lawFirm.ID)
		}
		if err := uow.Groups.AddMembers(ctx, defaultGroup.ID, user.ID); err != nil {
			return err
		}

		_, err = uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	lawFirm.OwnerUserID = &target.ID
	return target, nil
}

// Seed 没有任何律所时创建默认律所
func (s *LawFirmService) Seed(ctx context.Context) (*model.LawFirm, error) {
	count, err := s.uow.LawFirms.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	lawFirm := model.NewLawFirm(SeedLawFirmName, "", "")
	lawFirm.JoinCode = model.SeedJoinCode

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
			return fmt.Errorf("创建默认律所失败: %w", err)
		}
		return createProtectedGroups(ctx, uow, lawFirm.ID, 0)
	})
	if err != nil {
		return nil, err
	}
	return lawFirm, nil
}
