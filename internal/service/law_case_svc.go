package service

import (
	"context"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// ==================== LawCaseService 案件服务 ====================

// LawCaseService 案件与负责人、客户的关联
// 所有操作限定在当前律所内
type LawCaseService struct {
	uow *repository.UnitOfWork
}

// NewLawCaseService 创建案件服务
func NewLawCaseService(uow *repository.UnitOfWork) *LawCaseService {
	return &LawCaseService{uow: uow}
}

// Create 创建案件，初始状态 WAITING
func (s *LawCaseService) Create(ctx context.Context, lawFirm *model.LawFirm, req *dto.CreateLawCaseRequest) (*model.LawCase, error) {
	lawCase := model.NewLawCase(lawFirm.ID, req.Title, req.Description)
	if err := s.uow.LawCases.Create(ctx, lawCase); err != nil {
		return nil, err
	}
	return lawCase, nil
}

// Update 修改案件，空字段不修改
func (s *LawCaseService) Update(ctx context.Context, lawFirm *model.LawFirm, idx int64, req *dto.UpdateLawCaseRequest) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		status := model.LawCaseStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidLawStatus
		}
		lawCase.LawStatus = status
	}
	if req.Title != "" {
		lawCase.Title = req.Title
	}
	if req.Description != "" {
		lawCase.Description = req.Description
	}

	if err := s.uow.LawCases.Update(ctx, lawCase); err != nil {
		return nil, err
	}
	return lawCase, nil
}

// AddUser 指派负责人，只能指派律师
func (s *LawCaseService) AddUser(ctx context.Context, lawFirm *model.LawFirm, idx, targetUserIdx int64) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	target, err := s.uow.Users.GetInLawFirm(ctx, targetUserIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotExistUser
	}
	if !target.IsLawyer() {
		return nil, ErrUserCanBeLawyer
	}

	if err := s.uow.LawCases.AddUser(ctx, lawCase.ID, target.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, lawFirm, lawCase.ID)
}

// RemoveUser 取消负责人
func (s *LawCaseService) RemoveUser(ctx context.Context, lawFirm *model.LawFirm, idx, targetUserIdx int64) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	target, err := s.uow.Users.GetInLawFirm(ctx, targetUserIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotExistUser
	}

	if err := s.uow.LawCases.RemoveUser(ctx, lawCase.ID, target.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, lawFirm, lawCase.ID)
}

// AddCustomer 关联同一律所的客户
func (s *LawCaseService) AddCustomer(ctx context.Context, lawFirm *model.LawFirm, idx, customerIdx int64) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	customer, err := s.uow.Customers.GetInLawFirm(ctx, customerIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotExistCustomer
	}

	if err := s.uow.LawCases.AddCustomer(ctx, lawCase.ID, customer.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, lawFirm, lawCase.ID)
}

// RemoveCustomer 取消关联客户
func (s *LawCaseService) RemoveCustomer(ctx context.Context, lawFirm *model.LawFirm, idx, customerIdx int64) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	customer, err := s.uow.Customers.GetInLawFirm(ctx, customerIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotExistCustomer
	}

	if err := s.uow.LawCases.RemoveCustomer(ctx, lawCase.ID, customer.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, lawFirm, lawCase.ID)
}

// Remove 删除案件
func (s *LawCaseService) Remove(ctx context.Context, lawFirm *model.LawFirm, idx int64) (*model.LawCase, error) {
	lawCase, err := s.getLawCase(ctx, lawFirm, idx)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		return uow.LawCases.Delete(ctx, lawCase.ID)
	})
	if err != nil {
		return nil, err
	}
	return lawCase, nil
}

// List 案件列表，idx 不为空时只返回该案件
func (s *LawCaseService) List(ctx context.Context, lawFirm *model.LawFirm, idx *int64) ([]model.LawCase, error) {
	return s.uow.LawCases.ListWithMembers(ctx, lawFirm.ID, idx)
}

// getLawCase 获取本律所案件
func (s *LawCaseService) getLawCase(ctx context.Context, lawFirm *model.LawFirm, idx int64) (*model.LawCase, error) {
	lawCase, err := s.uow.LawCases.GetInLawFirm(ctx, idx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if lawCase == nil {
		return nil, ErrNotExistLawCase
	}
	return lawCase, nil
}

// reload 重新加载案件 (含负责人、客户)
func (s *LawCaseService) reload(ctx context.Context, lawFirm *model.LawFirm, id int64) (*model.LawCase, error) {
	lawCases, err := s.uow.LawCases.ListWithMembers(ctx, lawFirm.ID, &id)
	if err != nil {
		return nil, err
	}
	if len(lawCases) == 0 {
		return nil, ErrNotExistLawCase
	}
	return &lawCases[0], nil
}
