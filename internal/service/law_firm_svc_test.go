package service

import (
	"context"
	"testing"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
)

// ==================== 创建 ====================

func TestLawFirmService_Create(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()

	other := signUpLawyer(t, uow, "other")
	otherFirm := createLawFirm(t, uow, other, "other firm")

	owner := signUpLawyer(t, uow, "owner")
	if _, err := NewJoinRequestService(uow).RequestByCode(ctx, owner, otherFirm.JoinCode); err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}

	lawFirm := createLawFirm(t, uow, owner, "my firm")

	if lawFirm.JoinCode == "" || len(lawFirm.JoinCode) != model.JoinCodeLength {
		t.Errorf("JoinCode = %q", lawFirm.JoinCode)
	}
	if !lawFirm.IsOwner(owner.ID) {
		t.Errorf("创建者不是所有者")
	}
	if len(lawFirm.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(lawFirm.Groups))
	}

	names := groupNamesOf(t, uow, lawFirm.ID, owner.ID)
	if !contains(names, model.AdminGroupName) {
		t.Errorf("所有者分组 = %v, 应包含管理员分组", names)
	}

	// 创建律所后待处理申请清空
	count, err := uow.JoinRequests.CountByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if count != 0 {
		t.Errorf("待处理申请数 = %d, want 0", count)
	}
	assertEveryMemberGrouped(t, uow, lawFirm.ID)
}

func TestLawFirmService_Create_Rejected(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	employee := signUpEmployee(t, uow, "employee")
	_, err := svc.Create(ctx, employee, &dto.CreateLawFirmRequest{Name: "x"})
	assertErr(t, err, ErrEmployeeCannotCreateLawFirm)

	owner := signUpLawyer(t, uow, "owner")
	createLawFirm(t, uow, owner, "first")
	_, err = svc.Create(ctx, owner, &dto.CreateLawFirmRequest{Name: "second"})
	assertErr(t, err, ErrAlreadyJoinLawFirm)
}

// ==================== 修改 ====================

func TestLawFirmService_Update(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpLawyer(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	_, err := svc.Update(ctx, member, lawFirm, &dto.UpdateLawFirmRequest{Name: "hacked"})
	assertErr(t, err, ErrHasNotPermission)

	oldCode := lawFirm.JoinCode
	updated, err := svc.Update(ctx, owner, lawFirm, &dto.UpdateLawFirmRequest{Address: "Seoul", JoinCode: "randomStr"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "firm" {
		t.Errorf("空字段不应修改, Name = %q", updated.Name)
	}
	if updated.Address != "Seoul" {
		t.Errorf("Address = %q, want Seoul", updated.Address)
	}
	if updated.JoinCode == "" || updated.JoinCode == oldCode || updated.JoinCode == "randomStr" {
		t.Errorf("JoinCode 未重新生成: %q", updated.JoinCode)
	}
}

// ==================== 转让 ====================

func TestLawFirmService_ChangeOwner(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")

	outsider := signUpLawyer(t, uow, "outsider")
	_, err := svc.ChangeOwner(ctx, owner, lawFirm, outsider.ID)
	assertErr(t, err, ErrTargetUserNotInLawFirm)

	employee := signUpEmployee(t, uow, "employee")
	joinLawFirm(t, uow, owner, lawFirm, employee)
	_, err = svc.ChangeOwner(ctx, owner, lawFirm, employee.ID)
	assertErr(t, err, ErrEmployeeCannotBeOwner)

	_, err = svc.ChangeOwner(ctx, owner, lawFirm, 9999)
	assertErr(t, err, ErrNotExistUser)

	lawyer := signUpLawyer(t, uow, "lawyer")
	joinLawFirm(t, uow, owner, lawFirm, lawyer)

	_, err = svc.ChangeOwner(ctx, lawyer, lawFirm, lawyer.ID)
	assertErr(t, err, ErrHasNotPermission)

	if _, err := svc.ChangeOwner(ctx, owner, lawFirm, lawyer.ID); err != nil {
		t.Fatalf("ChangeOwner() error = %v", err)
	}

	found, err := uow.LawFirms.GetByID(ctx, lawFirm.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !found.IsOwner(lawyer.ID) {
		t.Errorf("所有者未变更")
	}

	admin, err := uow.Groups.GetByName(ctx, lawFirm.ID, model.AdminGroupName)
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	members, err := uow.Groups.ListMemberIDs(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListMemberIDs() error = %v", err)
	}
	if len(members) != 1 || members[0] != lawyer.ID {
		t.Errorf("管理员分组成员 = %v, want [%d]", members, lawyer.ID)
	}

	if names := groupNamesOf(t, uow, lawFirm.ID, owner.ID); !contains(names, model.DefaultGroupName) {
		t.Errorf("原所有者分组 = %v, 应在默认分组", names)
	}
	assertEveryMemberGrouped(t, uow, lawFirm.ID)
}

// ==================== 退出 & 解散 ====================

func TestLawFirmService_Withdraw(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpEmployee(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	_, err := svc.Withdraw(ctx, owner, lawFirm)
	assertErr(t, err, ErrCannotWithdraw)

	if _, err := svc.Withdraw(ctx, member, lawFirm); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	found, err := uow.Users.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.LawFirmID != nil {
		t.Errorf("退出后 LawFirmID = %v, want nil", *found.LawFirmID)
	}
	if names := groupNamesOf(t, uow, lawFirm.ID, member.ID); len(names) != 0 {
		t.Errorf("退出后仍在分组 %v", names)
	}
}

func TestLawFirmService_Disband(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpLawyer(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	if _, err := NewCustomerService(uow).Create(ctx, lawFirm, &dto.CustomerRequest{Name: "customer"}); err != nil {
		t.Fatalf("创建客户失败: %v", err)
	}

	_, err := svc.Disband(ctx, member, lawFirm)
	assertErr(t, err, ErrHasNotPermission)

	disbanded, err := svc.Disband(ctx, owner, lawFirm)
	if err != nil {
		t.Fatalf("Disband() error = %v", err)
	}
	if disbanded.Status != model.LawFirmStatusDeleted {
		t.Errorf("Status = %s, want DELETED", disbanded.Status)
	}

	if found, _ := uow.LawFirms.GetByID(ctx, lawFirm.ID); found != nil {
		t.Errorf("律所未删除")
	}
	if count, _ := uow.Groups.CountByLawFirm(ctx, lawFirm.ID); count != 0 {
		t.Errorf("分组数 = %d, want 0", count)
	}
	for _, id := range []int64{owner.ID, member.ID} {
		user, _ := uow.Users.GetByID(ctx, id)
		if user.LawFirmID != nil {
			t.Errorf("用户 %d 仍属于律所", id)
		}
	}
}

// ==================== 默认律所 ====================

func TestLawFirmService_Seed(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewLawFirmService(uow)

	seeded, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if seeded == nil || seeded.JoinCode != model.SeedJoinCode {
		t.Fatalf("seeded = %+v", seeded)
	}
	if count, _ := uow.Groups.CountByLawFirm(ctx, seeded.ID); count != 2 {
		t.Errorf("默认律所分组数 = %d, want 2", count)
	}

	again, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if again != nil {
		t.Errorf("重复 Seed 不应创建律所")
	}
}
