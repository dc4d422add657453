package service

import (
	"context"
	"fmt"

	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// ==================== JoinRequestService 加入申请服务 ====================

// JoinRequestService 加入律所申请流程
type JoinRequestService struct {
	uow *repository.UnitOfWork
}

// NewJoinRequestService 创建加入申请服务
func NewJoinRequestService(uow *repository.UnitOfWork) *JoinRequestService {
	return &JoinRequestService{uow: uow}
}

// RequestByCode 凭加入码申请加入律所
func (s *JoinRequestService) RequestByCode(ctx context.Context, user *model.User, joinCode string) (*model.LawFirmJoinRequest, error) {
	if user.LawFirmID != nil {
		return nil, ErrAlreadyJoinedLawFirm
	}

	lawFirm, err := s.uow.LawFirms.GetByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}
	if lawFirm == nil {
		return nil, ErrNotExistLawFirm
	}

	exists, err := s.uow.JoinRequests.Exists(ctx, user.ID, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyJoinRequest
	}

	req := &model.LawFirmJoinRequest{
		UserID:    user.ID,
		LawFirmID: lawFirm.ID,
	}
	if err := s.uow.JoinRequests.Create(ctx, req); err != nil {
		return nil, err
	}

	lawFirm.JoinCode = ""
	req.LawFirm = lawFirm
	return req, nil
}

// Cancel 申请人撤回申请
func (s *JoinRequestService) Cancel(ctx context.Context, user *model.User, requestIdx int64) (*model.LawFirmJoinRequest, error) {
	req, err := s.uow.JoinRequests.GetByUser(ctx, requestIdx, user.ID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotExistLawFirmJoinRequest
	}

	if err := s.uow.JoinRequests.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept 所有者同意申请，申请人加入默认分组
func (s *JoinRequestService) Accept(ctx context.Context, user *model.User, lawFirm *model.LawFirm, requestIdx int64) (*model.User, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	req, err := s.uow.JoinRequests.GetInLawFirm(ctx, requestIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if req == nil || req.User == nil {
		return nil, ErrNotExistJoinRequest
	}
	if req.User.LawFirmID != nil {
		return nil, ErrAlreadyJoinedLawFirm
	}

	requester := req.User
	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		// 申请人在其它律所的申请一并清理
		if err := uow.JoinRequests.DeleteByUser(ctx, requester.ID); err != nil {
			return err
		}
		if err := uow.Users.SetLawFirm(ctx, requester.ID, lawFirm.ID); err != nil {
			return err
		}

		defaultGroup, err := uow.Groups.GetByName(ctx, lawFirm.ID, model.DefaultGroupName)
		if err != nil {
			return err
		}
		if defaultGroup == nil {
			return fmt.Errorf("律所 %d 缺少默认分组", lawFirm.ID)
		}
		if err := uow.Groups.AddMembers(ctx, defaultGroup.ID, requester.ID); err != nil {
			return err
		}

		_, err = uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	requester.LawFirmID = &lawFirm.ID
	return requester, nil
}

// Reject 所有者拒绝申请
func (s *JoinRequestService) Reject(ctx context.Context, user *model.User, lawFirm *model.LawFirm, requestIdx int64) (*model.User, error) {
	if !lawFirm.IsOwner(user.ID) {
		return nil, ErrHasNotPermission
	}

	req, err := s.uow.JoinRequests.GetInLawFirm(ctx, requestIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotExistJoinRequest
	}

	if err := s.uow.JoinRequests.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return req.User, nil
}

// ListForLawFirm 律所收到的申请
func (s *JoinRequestService) ListForLawFirm(ctx context.Context, lawFirm *model.LawFirm) ([]model.LawFirmJoinRequest, error) {
	return s.uow.JoinRequests.ListByLawFirm(ctx, lawFirm.ID)
}

// ListForUser 用户发出的申请，不暴露律所加入码
func (s *JoinRequestService) ListForUser(ctx context.Context, user *model.User) ([]model.LawFirmJoinRequest, error) {
	reqs, err := s.uow.JoinRequests.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].LawFirm != nil {
			reqs[i].LawFirm.JoinCode = ""
		}
	}
	return reqs, nil
}
