package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/gorm/logger"

	"law_office_v1/internal/model"
	"law_office_v1/pkg/database"
)

// setupTestUoW 内存 sqlite
func setupTestUoW(t *testing.T) *UnitOfWork {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      "file::memory:",
		LogLevel: logger.Silent,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := database.Migrate(db, model.RegisterJoinTables, model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewUnitOfWork(db)
}

func createUser(t *testing.T, uow *UnitOfWork, name string, lawFirmID *int64) *model.User {
	t.Helper()
	user := &model.User{Type: model.UserTypeLawyer, Name: name, LawFirmID: lawFirmID}
	if err := uow.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func createGroup(t *testing.T, uow *UnitOfWork, group *model.Group) *model.Group {
	t.Helper()
	if err := uow.Groups.Create(context.Background(), group); err != nil {
		t.Fatalf("创建分组失败: %v", err)
	}
	return group
}

func TestUnitOfWork_EnsureDefaultGroupMembership(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	lawFirm := model.NewLawFirm("테스트", "", "")
	if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
		t.Fatalf("创建律所失败: %v", err)
	}
	admin := createGroup(t, uow, model.NewAdminGroup(lawFirm.ID))
	defaultGroup := createGroup(t, uow, model.NewDefaultGroup(lawFirm.ID))

	member := createUser(t, uow, "member", &lawFirm.ID)
	orphan := createUser(t, uow, "orphan", &lawFirm.ID)
	createUser(t, uow, "outsider", nil)

	if err := uow.Groups.AddMembers(ctx, admin.ID, member.ID); err != nil {
		t.Fatalf("AddMembers() error = %v", err)
	}

	repaired, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
	if err != nil {
		t.Fatalf("EnsureDefaultGroupMembership() error = %v", err)
	}
	if repaired != 1 {
		t.Errorf("repaired = %d, want 1", repaired)
	}

	ids, err := uow.Groups.ListMemberIDs(ctx, defaultGroup.ID)
	if err != nil {
		t.Fatalf("ListMemberIDs() error = %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{orphan.ID}) {
		t.Errorf("默认分组成员 = %v, want [%d]", ids, orphan.ID)
	}

	// 再次执行无需修复
	repaired, err = uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID)
	if err != nil {
		t.Fatalf("EnsureDefaultGroupMembership() error = %v", err)
	}
	if repaired != 0 {
		t.Errorf("repaired = %d, want 0", repaired)
	}
}

func TestUnitOfWork_EnsureDefaultGroupMembership_MissingDefault(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	lawFirm := model.NewLawFirm("테스트", "", "")
	if err := uow.LawFirms.Create(ctx, lawFirm); err != nil {
		t.Fatalf("创建律所失败: %v", err)
	}

	// 没有成员时不需要默认分组
	if _, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID); err != nil {
		t.Fatalf("EnsureDefaultGroupMembership() error = %v", err)
	}

	createUser(t, uow, "orphan", &lawFirm.ID)
	if _, err := uow.EnsureDefaultGroupMembership(ctx, lawFirm.ID); err == nil {
		t.Errorf("缺少默认分组时应返回错误")
	}
}

func TestUnitOfWork_TransactionRollback(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	boom := errors.New("boom")
	var createdID int64
	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		user := &model.User{Type: model.UserTypeEmployee, Name: "rollback"}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		createdID = user.ID
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want %v", err, boom)
	}

	user, err := uow.Users.GetByID(ctx, createdID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if user != nil {
		t.Errorf("事务回滚后用户仍然存在: %+v", user)
	}
}
