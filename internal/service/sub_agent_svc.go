package service

import (
	"context"
	"strings"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/pkg/sanitize"
)

// ==================== SubAgentService 出庭代理服务 ====================

// SubAgentService 委托发布与代理申请
type SubAgentService struct {
	uow *repository.UnitOfWork
}

// NewSubAgentService 创建出庭代理服务
func NewSubAgentService(uow *repository.UnitOfWork) *SubAgentService {
	return &SubAgentService{uow: uow}
}

// ParseCourts 解析逗号分隔的法院过滤条件
func ParseCourts(raw string) []string {
	if raw == "" {
		return nil
	}
	var courts []string
	for _, court := range strings.Split(raw, ",") {
		if court = strings.TrimSpace(court); court != "" {
			courts = append(courts, court)
		}
	}
	return courts
}

// Create 发布委托
func (s *SubAgentService) Create(ctx context.Context, user *model.User, req *dto.SubAgentRequest) (*model.SubAgent, error) {
	subAgent := &model.SubAgent{
		RequestingUserID: user.ID,
	}
	applySubAgentRequest(subAgent, req)

	if err := s.uow.SubAgents.Create(ctx, subAgent); err != nil {
		return nil, err
	}
	subAgent.RequestingUser = user
	return subAgent, nil
}

// applySubAgentRequest 写入委托字段
func applySubAgentRequest(subAgent *model.SubAgent, req *dto.SubAgentRequest) {
	subAgent.Title = sanitize.Text(req.Title)
	subAgent.Content = sanitize.HTML(req.Content)
	subAgent.Court = req.Court
	subAgent.Pay = req.Pay
	subAgent.TrialStartTime = req.TrialStartTime
	subAgent.PhoneNumber = req.PhoneNumber
}

// Update 修改本人发布的委托
func (s *SubAgentService) Update(ctx context.Context, user *model.User, idx int64, req *dto.SubAgentRequest) (*model.SubAgent, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	if subAgent.RequestingUserID != user.ID {
		return nil, ErrHasNotPermission
	}

	applySubAgentRequest(subAgent, req)
	if err := s.uow.SubAgents.Update(ctx, subAgent); err != nil {
		return nil, err
	}
	return subAgent, nil
}

// Remove 删除本人发布的委托，申请一并删除
func (s *SubAgentService) Remove(ctx context.Context, user *model.User, idx int64) (*model.SubAgent, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	if subAgent.RequestingUserID != user.ID {
		return nil, ErrHasNotPermission
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		return uow.SubAgents.Delete(ctx, subAgent.ID)
	})
	if err != nil {
		return nil, err
	}
	return subAgent, nil
}

// Get 委托详情，发布者与代理人可见全部申请，其他人只见自己的申请
func (s *SubAgentService) Get(ctx context.Context, user *model.User, idx int64) (*model.SubAgent, error) {
	subAgent, err := s.uow.SubAgents.GetForViewer(ctx, idx, user.ID)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	return subAgent, nil
}

// List 委托列表
func (s *SubAgentService) List(ctx context.Context, user *model.User, query *dto.SubAgentListQuery) ([]model.SubAgent, error) {
	showType := repository.ShowType(query.Type)
	if showType == "" {
		showType = repository.ShowTypeDefault
	}
	if !showType.IsValid() {
		return nil, ErrInvalidShowType
	}

	courts := ParseCourts(query.Courts)
	if showType == repository.ShowTypeRequesting {
		return s.uow.SubAgents.ListRequesting(ctx, user.ID, query.Offset, courts)
	}
	return s.uow.SubAgents.List(ctx, repository.SubAgentFilter{
		ViewerID:  user.ID,
		ShowType:  showType,
		OffsetIdx: query.Offset,
		Courts:    courts,
	})
}

// ListHistories 委托通知历史
func (s *SubAgentService) ListHistories(ctx context.Context, user *model.User, offsetIdx int64) ([]model.SubAgentUserNotification, error) {
	return s.uow.Notifications.ListByUser(ctx, user.ID, offsetIdx)
}

// ==================== 代理申请 ====================

// Request 申请代理
func (s *SubAgentService) Request(ctx context.Context, user *model.User, idx int64) (*model.SubAgentRequestUser, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	if subAgent.IsAccepted() {
		return nil, ErrAlreadyAcceptSubAgent
	}
	if subAgent.RequestingUserID == user.ID {
		return nil, ErrCannotRequestMySubAgent
	}

	existing, err := s.uow.Requests.GetByUser(ctx, subAgent.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRequestSubAgent
	}

	req := model.NewSubAgentRequest(subAgent.ID, user.ID)
	if err := s.uow.Requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel 撤回本人的待处理申请
func (s *SubAgentService) Cancel(ctx context.Context, user *model.User, idx int64) (*model.SubAgentRequestUser, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}

	req, err := s.uow.Requests.GetWaiting(ctx, subAgent.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotRequestSubAgent
	}

	if err := s.uow.Requests.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept 发布者选定代理人，其余待处理申请全部拒绝并通知
func (s *SubAgentService) Accept(ctx context.Context, user *model.User, idx, targetUserIdx int64) (*model.SubAgent, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	if subAgent.RequestingUserID != user.ID {
		return nil, ErrHasNotPermission
	}
	if subAgent.IsAccepted() {
		return nil, ErrAlreadyAcceptSubAgent
	}

	target, err := s.uow.Users.GetByID(ctx, targetUserIdx)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotExistTargetUser
	}

	req, err := s.uow.Requests.GetWaiting(ctx, subAgent.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotExistRequest
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		accepted, err := uow.SubAgents.SetAccepted(ctx, subAgent.ID, target.ID)
		if err != nil {
			return err
		}
		if !accepted {
			return ErrAlreadyAcceptSubAgent
		}
		if err := uow.Requests.UpdateStatus(ctx, req.ID, model.RequestStatusAccept); err != nil {
			return err
		}
		deniedUserIDs, err := uow.Requests.DenyWaitingExcept(ctx, subAgent.ID, target.ID)
		if err != nil {
			return err
		}

		notifications := make([]*model.SubAgentUserNotification, 0, len(deniedUserIDs)+1)
		notifications = append(notifications, model.NewSubAgentNotification(target.ID, model.NotificationLogAccept, subAgent))
		for _, userID := range deniedUserIDs {
			notifications = append(notifications, model.NewSubAgentNotification(userID, model.NotificationLogDeny, subAgent))
		}
		return uow.Notifications.Create(ctx, notifications...)
	})
	if err != nil {
		return nil, err
	}

	subAgent.AcceptUserID = &target.ID
	subAgent.AcceptUser = target
	subAgent.IsAccept = true
	return subAgent, nil
}

// Deny 发布者拒绝申请
func (s *SubAgentService) Deny(ctx context.Context, user *model.User, idx, targetUserIdx int64) (*model.SubAgentRequestUser, error) {
	subAgent, err := s.uow.SubAgents.GetByID(ctx, idx)
	if err != nil {
		return nil, err
	}
	if subAgent == nil {
		return nil, ErrNotExistSubAgent
	}
	if subAgent.RequestingUserID != user.ID {
		return nil, ErrHasNotPermission
	}

	req, err := s.uow.Requests.GetWaiting(ctx, subAgent.ID, targetUserIdx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotExistRequest
	}

	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		if err := uow.Requests.UpdateStatus(ctx, req.ID, model.RequestStatusDeny); err != nil {
			return err
		}
		return uow.Notifications.Create(ctx,
			model.NewSubAgentNotification(req.UserID, model.NotificationLogDeny, subAgent))
	})
	if err != nil {
		return nil, err
	}

	req.Status = model.RequestStatusDeny
	return req, nil
}
