package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm/logger"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/pkg/database"
)

// ==================== 测试辅助 ====================

// setupTestUoW 内存 sqlite，每个测试独立一个库
func setupTestUoW(t *testing.T) *repository.UnitOfWork {
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
	return repository.NewUnitOfWork(db)
}

var lawyerSeq int

// signUpLawyer 注册律师，执业编号自动递增
func signUpLawyer(t *testing.T, uow *repository.UnitOfWork, loginID string) *model.User {
	t.Helper()
	lawyerSeq++
	user, err := NewAuthService(uow, nil).SignUp(context.Background(), &dto.SignUpRequest{
		ID:           loginID,
		Password:     "password",
		UserType:     string(model.UserTypeLawyer),
		SerialNumber: fmt.Sprintf("S-%d", lawyerSeq),
		IssueNumber:  fmt.Sprintf("I-%d", lawyerSeq),
		Name:         loginID,
	})
	if err != nil {
		t.Fatalf("注册律师 %s 失败: %v", loginID, err)
	}
	return user
}

// signUpEmployee 注册职员
func signUpEmployee(t *testing.T, uow *repository.UnitOfWork, loginID string) *model.User {
	t.Helper()
	user, err := NewAuthService(uow, nil).SignUp(context.Background(), &dto.SignUpRequest{
		ID:       loginID,
		Password: "password",
		UserType: string(model.UserTypeEmployee),
		Name:     loginID,
	})
	if err != nil {
		t.Fatalf("注册职员 %s 失败: %v", loginID, err)
	}
	return user
}

// createLawFirm 律师创建律所
func createLawFirm(t *testing.T, uow *repository.UnitOfWork, owner *model.User, name string) *model.LawFirm {
	t.Helper()
	lawFirm, err := NewLawFirmService(uow).Create(context.Background(), owner, &dto.CreateLawFirmRequest{Name: name})
	if err != nil {
		t.Fatalf("创建律所 %s 失败: %v", name, err)
	}
	return lawFirm
}

// joinLawFirm 申请并由所有者同意
func joinLawFirm(t *testing.T, uow *repository.UnitOfWork, owner *model.User, lawFirm *model.LawFirm, user *model.User) {
	t.Helper()
	ctx := context.Background()
	svc := NewJoinRequestService(uow)

	req, err := svc.RequestByCode(ctx, user, lawFirm.JoinCode)
	if err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if _, err := svc.Accept(ctx, owner, lawFirm, req.ID); err != nil {
		t.Fatalf("同意申请失败: %v", err)
	}
	user.LawFirmID = &lawFirm.ID
}

// groupNamesOf 用户在律所内所属分组名
func groupNamesOf(t *testing.T, uow *repository.UnitOfWork, lawFirmID, userID int64) []string {
	t.Helper()
	groups, err := uow.Groups.ListWithUsers(context.Background(), lawFirmID)
	if err != nil {
		t.Fatalf("查询分组失败: %v", err)
	}
	var names []string
	for _, g := range groups {
		for _, u := range g.Users {
			if u.ID == userID {
				names = append(names, g.Name)
			}
		}
	}
	return names
}

// assertEveryMemberGrouped 律所每个成员至少属于一个分组
func assertEveryMemberGrouped(t *testing.T, uow *repository.UnitOfWork, lawFirmID int64) {
	t.Helper()
	orphans, err := uow.Users.ListOrphanIDs(context.Background(), lawFirmID)
	if err != nil {
		t.Fatalf("查询无分组成员失败: %v", err)
	}
	if len(orphans) != 0 {
		t.Errorf("律所 %d 存在无分组成员: %v", lawFirmID, orphans)
	}
}

// assertErr 断言业务错误码
func assertErr(t *testing.T, err error, want *Error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %s", err, want.Code)
	}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
