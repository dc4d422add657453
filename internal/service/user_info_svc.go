package service

import (
	"context"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// ==================== UserInfoService 用户资料服务 ====================

// UserInfoService 用户资料查询与修改
type UserInfoService struct {
	uow *repository.UnitOfWork
}

// NewUserInfoService 创建用户资料服务
func NewUserInfoService(uow *repository.UnitOfWork) *UserInfoService {
	return &UserInfoService{uow: uow}
}

// Get 用户资料，userIdx 为空时查询本人
// 收款账户仅本人可见
func (s *UserInfoService) Get(ctx context.Context, user *model.User, userIdx *int64) (*model.User, error) {
	targetID := user.ID
	if userIdx != nil {
		targetID = *userIdx
	}

	found, err := s.uow.Users.GetProfile(ctx, targetID, targetID == user.ID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotExistUser
	}
	return found, nil
}

// Update 修改本人资料，协会信息与收款账户同一事务写入
func (s *UserInfoService) Update(ctx context.Context, user *model.User, req *dto.UpdateUserInfoRequest) (*model.User, error) {
	current, err := s.uow.Users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotExistUser
	}

	setIfNotEmpty(&current.Name, req.Name)
	setIfNotEmpty(&current.PhoneNumber, req.PhoneNumber)

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		affiliationID, err := uow.Profiles.UpsertAffiliation(ctx, current.LawyerAffiliationID,
			req.LawyerAffiliationOffice, req.LawyerAffiliationBranch)
		if err != nil {
			return err
		}
		bankAccountID, err := uow.Profiles.UpsertBankAccount(ctx, current.BankAccountID, req.BankAccountInfo)
		if err != nil {
			return err
		}

		current.LawyerAffiliationID = &affiliationID
		current.BankAccountID = &bankAccountID
		return uow.Users.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}

	return s.uow.Users.GetProfile(ctx, current.ID, true)
}
