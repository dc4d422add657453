package service

import (
	"context"
	"time"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// ==================== CustomerService 客户服务 ====================

// CustomerService 客户与咨询记录
type CustomerService struct {
	uow *repository.UnitOfWork
	now func() time.Time
}

// NewCustomerService 创建客户服务
func NewCustomerService(uow *repository.UnitOfWork) *CustomerService {
	return &CustomerService{
		uow: uow,
		now: time.Now,
	}
}

// Create 新建客户
func (s *CustomerService) Create(ctx context.Context, lawFirm *model.LawFirm, req *dto.CustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
		Country:     req.Country,
		Email:       req.Email,
		Birthday:    req.Birthday,
		Description: req.Description,
		LawFirmID:   lawFirm.ID,
	}
	if err := s.uow.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update 修改客户，空字段不修改
func (s *CustomerService) Update(ctx context.Context, lawFirm *model.LawFirm, customerIdx int64, req *dto.CustomerRequest) (*model.Customer, error) {
	customer, err := s.getCustomer(ctx, lawFirm, customerIdx)
	if err != nil {
		return nil, err
	}

	setIfNotEmpty(&customer.Name, req.Name)
	setIfNotEmpty(&customer.PhoneNumber, req.PhoneNumber)
	setIfNotEmpty(&customer.Sex, req.Sex)
	setIfNotEmpty(&customer.Country, req.Country)
	setIfNotEmpty(&customer.Email, req.Email)
	setIfNotEmpty(&customer.Birthday, req.Birthday)
	setIfNotEmpty(&customer.Description, req.Description)

	if err := s.uow.Customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// List 客户列表
func (s *CustomerService) List(ctx context.Context, lawFirm *model.LawFirm, query *dto.CustomerListQuery) ([]model.Customer, error) {
	order := query.Order
	if order == "" {
		order = "idx"
	}
	if !repository.IsCustomerOrderKey(order) {
		return nil, ErrInvalidOrderKey
	}

	return s.uow.Customers.List(ctx, repository.CustomerFilter{
		LawFirmID:  lawFirm.ID,
		Page:       query.Page,
		Limit:      query.Limit,
		Order:      order,
		Reverse:    query.Reverse,
		FilterType: query.Type,
		Target:     query.Target,
	})
}

// CreateConsulting 新建咨询记录，同时刷新客户最近咨询时间
func (s *CustomerService) CreateConsulting(ctx context.Context, lawFirm *model.LawFirm, customerIdx int64, req *dto.ConsultingRequest) (*model.Consulting, error) {
	customer, err := s.uow.Customers.GetInLawFirm(ctx, customerIdx, lawFirm.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotExistCustomer
	}

	consulting := &model.Consulting{
		Title:         req.Title,
		ContentFormat: req.ContentFormat,
		Content:       req.Content,
		Uniqueness:    req.Uniqueness,
		CustomerID:    customer.ID,
	}
	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Consultings.Create(ctx, consulting); err != nil {
			return err
		}
		return uow.Customers.UpdateLastConsultingDate(ctx, customer.ID, s.now())
	})
	if err != nil {
		return nil, err
	}
	return consulting, nil
}

// UpdateConsulting 修改咨询记录
func (s *CustomerService) UpdateConsulting(ctx context.Context, lawFirm *model.LawFirm, customerIdx, consultingIdx int64, req *dto.ConsultingRequest) (*model.Consulting, error) {
	customer, err := s.getCustomer(ctx, lawFirm, customerIdx)
	if err != nil {
		return nil, err
	}

	consulting, err := s.uow.Consultings.GetByCustomer(ctx, consultingIdx, customer.ID)
	if err != nil {
		return nil, err
	}
	if consulting == nil {
		return nil, ErrNotExistConsulting
	}

	setIfNotEmpty(&consulting.Title, req.Title)
	setIfNotEmpty(&consulting.ContentFormat, req.ContentFormat)
	setIfNotEmpty(&consulting.Content, req.Content)
	setIfNotEmpty(&consulting.Uniqueness, req.Uniqueness)

	if err := s.uow.Consultings.Update(ctx, consulting); err != nil {
		return nil, err
	}
	return consulting, nil
}

// UpdateLastConsultingDate 刷新客户最近咨询时间
func (s *CustomerService) UpdateLastConsultingDate(ctx context.Context, lawFirm *model.LawFirm, customerIdx int64) (*model.Customer, error) {
	customer, err := s.getCustomer(ctx, lawFirm, customerIdx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.uow.Customers.UpdateLastConsultingDate(ctx, customer.ID, now); err != nil {
		return nil, err
	}
	customer.LastConsultingDate = &now
	return customer, nil
}

// getCustomer 获取客户，不存在与跨律所区分返回
func (s *CustomerService) getCustomer(ctx context.Context, lawFirm *model.LawFirm, customerIdx int64) (*model.Customer, error) {
	customer, err := s.uow.Customers.GetByID(ctx, customerIdx)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotExistCustomer
	}
	if customer.LawFirmID != lawFirm.ID {
		return nil, ErrHasNotAuth
	}
	return customer, nil
}

// setIfNotEmpty 非空时覆盖
func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
