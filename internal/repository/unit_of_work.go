package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"law_office_v1/internal/model"
)

// ==================== 事务支持 ====================

// UnitOfWork 工作单元
// 持有全部仓库，Transaction 内的仓库全部绑定到同一事务
type UnitOfWork struct {
	db *gorm.DB

	Users         UserRepository
	UserAuths     UserAuthRepository
	Profiles      UserProfileRepository
	LawFirms      LawFirmRepository
	JoinRequests  JoinRequestRepository
	Groups        GroupRepository
	LawCases      LawCaseRepository
	Customers     CustomerRepository
	Consultings   ConsultingRepository
	SubAgents     SubAgentRepository
	Requests      SubAgentRequestRepository
	Notifications NotificationRepository
	Boards        BoardRepository
	Replies       ReplyRepository
}

// NewUnitOfWork 创建工作单元
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:            db,
		Users:         NewUserRepository(db),
		UserAuths:     NewUserAuthRepository(db),
		Profiles:      NewUserProfileRepository(db),
		LawFirms:      NewLawFirmRepository(db),
		JoinRequests:  NewJoinRequestRepository(db),
		Groups:        NewGroupRepository(db),
		LawCases:      NewLawCaseRepository(db),
		Customers:     NewCustomerRepository(db),
		Consultings:   NewConsultingRepository(db),
		SubAgents:     NewSubAgentRepository(db),
		Requests:      NewSubAgentRequestRepository(db),
		Notifications: NewNotificationRepository(db),
		Boards:        NewBoardRepository(db),
		Replies:       NewReplyRepository(db),
	}
}

// Transaction 执行事务，fn 返回错误时整体回滚
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}

// ==================== 分组归属修复 ====================

// EnsureDefaultGroupMembership 把律所内没有任何分组的成员批量加入默认分组
// 返回修复的人数。所有改动成员关系的事务在提交前都要调用一次
func (u *UnitOfWork) EnsureDefaultGroupMembership(ctx context.Context, lawFirmID int64) (int, error) {
	orphanIDs, err := u.Users.ListOrphanIDs(ctx, lawFirmID)
	if err != nil {
		return 0, fmt.Errorf("查询无分组成员失败: %w", err)
	}
	if len(orphanIDs) == 0 {
		return 0, nil
	}

	group, err := u.Groups.GetByName(ctx, lawFirmID, model.DefaultGroupName)
	if err != nil {
		return 0, fmt.Errorf("查询默认分组失败: %w", err)
	}
	if group == nil {
		return 0, fmt.Errorf("律所 %d 缺少默认分组", lawFirmID)
	}

	if err := u.Groups.AddMembers(ctx, group.ID, orphanIDs...); err != nil {
		return 0, fmt.Errorf("加入默认分组失败: %w", err)
	}
	return len(orphanIDs), nil
}
