package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== SubAgentFilter 委托查询条件 ====================

// ShowType 委托列表视角
type ShowType string

const (
	ShowTypeDefault    ShowType = "DEFAULT"    // 全部委托
	ShowTypeRequesting ShowType = "REQUESTING" // 我发布的
	ShowTypeRequest    ShowType = "REQUEST"    // 我申请过或已接受的
	ShowTypeAccept     ShowType = "ACCEPT"     // 我已接受的
)

// IsValid 校验视角
func (t ShowType) IsValid() bool {
	switch t {
	case ShowTypeDefault, ShowTypeRequesting, ShowTypeRequest, ShowTypeAccept:
		return true
	}
	return false
}

// SubAgentPageSize 委托 / 历史 / 帖子每页条数
const SubAgentPageSize = 30

// SubAgentFilter 委托列表查询条件
type SubAgentFilter struct {
	ViewerID  int64
	ShowType  ShowType
	OffsetIdx int64 // >0 时只取 id < OffsetIdx
	Courts    []string
}

// ==================== SubAgentRepository 委托仓库 ====================

// SubAgentRepository 委托仓库接口
type SubAgentRepository interface {
	Create(ctx context.Context, subAgent *model.SubAgent) error
	GetByID(ctx context.Context, id int64) (*model.SubAgent, error)
	GetForViewer(ctx context.Context, id, viewerID int64) (*model.SubAgent, error)
	Update(ctx context.Context, subAgent *model.SubAgent) error
	SetAccepted(ctx context.Context, id, acceptUserID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter SubAgentFilter) ([]model.SubAgent, error)
	ListRequesting(ctx context.Context, requestingUserID, offsetIdx int64, courts []string) ([]model.SubAgent, error)
}

type subAgentRepository struct {
	db *gorm.DB
}

// NewSubAgentRepository 创建委托仓库
func NewSubAgentRepository(db *gorm.DB) SubAgentRepository {
	return &subAgentRepository{db: db}
}

// Create 创建委托
func (r *subAgentRepository) Create(ctx context.Context, subAgent *model.SubAgent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(subAgent).Error
}

// GetByID 根据 ID 获取委托
func (r *subAgentRepository) GetByID(ctx context.Context, id int64) (*model.SubAgent, error) {
	var subAgent model.SubAgent
	err := r.db.WithContext(ctx).First(&subAgent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &subAgent, err
}

// GetForViewer 获取委托详情
// 发布者与接受者可见全部申请，其他人只能看到自己的申请
func (r *subAgentRepository) GetForViewer(ctx context.Context, id, viewerID int64) (*model.SubAgent, error) {
	subAgent, err := r.GetByID(ctx, id)
	if err != nil || subAgent == nil {
		return subAgent, err
	}

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("sub_agent_id = ?", id)
	isParty := subAgent.RequestingUserID == viewerID ||
		(subAgent.AcceptUserID != nil && *subAgent.AcceptUserID == viewerID)
	if !isParty {
		query = query.Where("user_id = ?", viewerID)
	}

	var requests []model.SubAgentRequestUser
	if err := query.Order("id ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	subAgent.Requests = requests

	if err := r.loadUsers(ctx, subAgent); err != nil {
		return nil, err
	}
	return subAgent, nil
}

// loadUsers 加载发布者与接受者
func (r *subAgentRepository) loadUsers(ctx context.Context, subAgent *model.SubAgent) error {
	var requesting model.User
	if err := r.db.WithContext(ctx).First(&requesting, subAgent.RequestingUserID).Error; err == nil {
		subAgent.RequestingUser = &requesting
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if subAgent.AcceptUserID != nil {
		var accept model.User
		if err := r.db.WithContext(ctx).First(&accept, *subAgent.AcceptUserID).Error; err == nil {
			subAgent.AcceptUser = &accept
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

// Update 更新委托内容
func (r *subAgentRepository) Update(ctx context.Context, subAgent *model.SubAgent) error {
	return r.db.WithContext(ctx).
		Model(subAgent).
		Select("title", "content", "court", "pay", "trial_start_time", "phone_number").
		Updates(subAgent).Error
}

// SetAccepted 确定代理人，已有代理人时不更新并返回 false
func (r *subAgentRepository) SetAccepted(ctx context.Context, id, acceptUserID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SubAgent{}).
		Where("id = ? AND is_accept = ?", id, false).
		Updates(map[string]interface{}{
			"accept_user_id": acceptUserID,
			"is_accept":      true,
		})
	return result.RowsAffected == 1, result.Error
}

// Delete 删除委托及其全部申请
func (r *subAgentRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("sub_agent_id = ?", id).Delete(&model.SubAgentRequestUser{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.SubAgent{}, id).Error
}

// List 委托列表
// 每页 SubAgentPageSize 条，按 id 倒序，附带查看者自己的申请
func (r *subAgentRepository) List(ctx context.Context, filter SubAgentFilter) ([]model.SubAgent, error) {
	query := r.db.WithContext(ctx).
		Preload("RequestingUser").
		Preload("AcceptUser").
		Preload("Requests", "user_id = ?", filter.ViewerID)

	switch filter.ShowType {
	case ShowTypeRequesting:
		query = query.Where("requesting_user_id = ?", filter.ViewerID)
	case ShowTypeRequest:
		requested := r.db.
			Model(&model.SubAgentRequestUser{}).
			Select("sub_agent_id").
			Where("user_id = ?", filter.ViewerID)
		query = query.Where("(accept_user_id = ? OR id IN (?))", filter.ViewerID, requested)
	case ShowTypeAccept:
		query = query.Where("accept_user_id = ?", filter.ViewerID)
	}

	if filter.OffsetIdx > 0 {
		query = query.Where("id < ?", filter.OffsetIdx)
	}
	if len(filter.Courts) > 0 {
		query = query.Where("court IN ?", filter.Courts)
	}

	var subAgents []model.SubAgent
	err := query.Order("id DESC").Limit(SubAgentPageSize).Find(&subAgents).Error
	return subAgents, err
}

// ListRequesting 发布者自己的委托 (含全部申请及申请人)
func (r *subAgentRepository) ListRequesting(ctx context.Context, requestingUserID, offsetIdx int64, courts []string) ([]model.SubAgent, error) {
	query := r.db.WithContext(ctx).
		Preload("AcceptUser").
		Preload("Requests", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_agent_request_users.id ASC")
		}).
		Preload("Requests.User").
		Where("requesting_user_id = ?", requestingUserID)
	if offsetIdx > 0 {
		query = query.Where("id < ?", offsetIdx)
	}
	if len(courts) > 0 {
		query = query.Where("court IN ?", courts)
	}

	var subAgents []model.SubAgent
	err := query.Order("id DESC").Limit(SubAgentPageSize).Find(&subAgents).Error
	return subAgents, err
}

// ==================== SubAgentRequestRepository 代理申请仓库 ====================

// SubAgentRequestRepository 代理申请仓库接口
type SubAgentRequestRepository interface {
	Create(ctx context.Context, req *model.SubAgentRequestUser) error
	GetByUser(ctx context.Context, subAgentID, userID int64) (*model.SubAgentRequestUser, error)
	GetWaiting(ctx context.Context, subAgentID, userID int64) (*model.SubAgentRequestUser, error)
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error
	DenyWaitingExcept(ctx context.Context, subAgentID, exceptUserID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type subAgentRequestRepository struct {
	db *gorm.DB
}

// NewSubAgentRequestRepository 创建代理申请仓库
func NewSubAgentRequestRepository(db *gorm.DB) SubAgentRequestRepository {
	return &subAgentRequestRepository{db: db}
}

// Create 创建申请
func (r *subAgentRequestRepository) Create(ctx context.Context, req *model.SubAgentRequestUser) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

// GetByUser 获取用户对委托的申请 (任意状态)
func (r *subAgentRequestRepository) GetByUser(ctx context.Context, subAgentID, userID int64) (*model.SubAgentRequestUser, error) {
	var req model.SubAgentRequestUser
	err := r.db.WithContext(ctx).
		Where("sub_agent_id = ? AND user_id = ?", subAgentID, userID).
		Order("id DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

// GetWaiting 获取用户对委托的待处理申请
func (r *subAgentRequestRepository) GetWaiting(ctx context.Context, subAgentID, userID int64) (*model.SubAgentRequestUser, error) {
	var req model.SubAgentRequestUser
	err := r.db.WithContext(ctx).
		Where("sub_agent_id = ? AND user_id = ? AND status = ?", subAgentID, userID, model.RequestStatusWaiting).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

// UpdateStatus 更新申请状态
func (r *subAgentRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.SubAgentRequestUser{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DenyWaitingExcept 拒绝委托下除指定用户外的全部待处理申请，返回被拒绝的用户
func (r *subAgentRequestRepository) DenyWaitingExcept(ctx context.Context, subAgentID, exceptUserID int64) ([]int64, error) {
	db := r.db.WithContext(ctx)

	var userIDs []int64
	if err := db.Model(&model.SubAgentRequestUser{}).
		Where("sub_agent_id = ? AND user_id <> ? AND status = ?", subAgentID, exceptUserID, model.RequestStatusWaiting).
		Order("id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	err := db.Model(&model.SubAgentRequestUser{}).
		Where("sub_agent_id = ? AND user_id IN ? AND status = ?", subAgentID, userIDs, model.RequestStatusWaiting).
		Update("status", model.RequestStatusDeny).Error
	return userIDs, err
}

// Delete 删除申请
func (r *subAgentRequestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SubAgentRequestUser{}, id).Error
}
