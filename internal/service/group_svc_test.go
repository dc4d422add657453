package service

import (
	"context"
	"testing"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
)

func TestGroupService_Create(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewGroupService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpLawyer(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	for _, name := range []string{model.AdminGroupName, model.DefaultGroupName} {
		_, err := svc.Create(ctx, owner, lawFirm, &dto.CreateGroupRequest{Name: name})
		assertErr(t, err, ErrCannotUseThisName)
	}

	_, err := svc.Create(ctx, member, lawFirm, &dto.CreateGroupRequest{Name: "litigation"})
	assertErr(t, err, ErrHasNotPermission)

	group, err := svc.Create(ctx, owner, lawFirm, &dto.CreateGroupRequest{
		Name:              "litigation",
		PermissionVersion: 1,
		Permission:        []int{1, 2},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if group.Permission == nil || len(group.Permission.Payload) != 2 {
		t.Errorf("Permission = %+v", group.Permission)
	}

	groups, err := svc.List(ctx, lawFirm)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(groups) != 3 {
		t.Errorf("len(groups) = %d, want 3", len(groups))
	}
}

func TestGroupService_Membership(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewGroupService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpEmployee(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	group, err := svc.Create(ctx, owner, lawFirm, &dto.CreateGroupRequest{Name: "team"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defaultGroup, _ := uow.Groups.GetByName(ctx, lawFirm.ID, model.DefaultGroupName)

	// 非所有者不能调整成员
	_, err = svc.AddUser(ctx, member, lawFirm, member.ID, group.ID)
	assertErr(t, err, ErrHasNotPermission)

	outsider := signUpEmployee(t, uow, "outsider")
	_, err = svc.AddUser(ctx, owner, lawFirm, outsider.ID, group.ID)
	assertErr(t, err, ErrNotExistUser)

	_, err = svc.AddUser(ctx, owner, lawFirm, member.ID, 9999)
	assertErr(t, err, ErrNotExistGroup)

	if _, err := svc.AddUser(ctx, owner, lawFirm, member.ID, group.ID); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if _, err := svc.RemoveUser(ctx, owner, lawFirm, member.ID, defaultGroup.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}
	if names := groupNamesOf(t, uow, lawFirm.ID, member.ID); len(names) != 1 || names[0] != "team" {
		t.Errorf("分组 = %v, want [team]", names)
	}

	// 移出最后一个分组后回到默认分组
	if _, err := svc.RemoveUser(ctx, owner, lawFirm, member.ID, group.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}
	if names := groupNamesOf(t, uow, lawFirm.ID, member.ID); len(names) != 1 || names[0] != model.DefaultGroupName {
		t.Errorf("分组 = %v, want [%s]", names, model.DefaultGroupName)
	}
	assertEveryMemberGrouped(t, uow, lawFirm.ID)
}

func TestGroupService_Remove(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewGroupService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	member := signUpEmployee(t, uow, "member")
	joinLawFirm(t, uow, owner, lawFirm, member)

	admin, _ := uow.Groups.GetByName(ctx, lawFirm.ID, model.AdminGroupName)
	defaultGroup, _ := uow.Groups.GetByName(ctx, lawFirm.ID, model.DefaultGroupName)
	for _, g := range []*model.Group{admin, defaultGroup} {
		_, err := svc.Remove(ctx, owner, lawFirm, g.ID)
		assertErr(t, err, ErrCannotRemoveProtectedGroup)
	}

	_, err := svc.Remove(ctx, owner, lawFirm, 9999)
	assertErr(t, err, ErrNotExistGroup)

	group, err := svc.Create(ctx, owner, lawFirm, &dto.CreateGroupRequest{Name: "team"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.AddUser(ctx, owner, lawFirm, member.ID, group.ID); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if _, err := svc.RemoveUser(ctx, owner, lawFirm, member.ID, defaultGroup.ID); err != nil {
		t.Fatalf("RemoveUser() error = %v", err)
	}

	_, err = svc.Remove(ctx, member, lawFirm, group.ID)
	assertErr(t, err, ErrHasNotPermission)

	// 删除唯一所属分组后成员回到默认分组
	if _, err := svc.Remove(ctx, owner, lawFirm, group.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if names := groupNamesOf(t, uow, lawFirm.ID, member.ID); !contains(names, model.DefaultGroupName) {
		t.Errorf("分组 = %v, 应在默认分组", names)
	}
	assertEveryMemberGrouped(t, uow, lawFirm.ID)
}

func TestGroupService_UpdatePermission(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewGroupService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	group, err := svc.Create(ctx, owner, lawFirm, &dto.CreateGroupRequest{Name: "team"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	renamed, err := svc.Update(ctx, owner, lawFirm, group.ID, &dto.UpdateGroupRequest{Name: "renamed", Description: "d"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if renamed.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", renamed.Name)
	}

	updated, err := svc.UpdatePermission(ctx, owner, lawFirm, group.ID, &dto.UpdatePermissionRequest{
		PermissionVersion: 2,
		Permission:        []int{3, 4, 5},
	})
	if err != nil {
		t.Fatalf("UpdatePermission() error = %v", err)
	}

	found, err := uow.Groups.GetInLawFirm(ctx, updated.ID, lawFirm.ID)
	if err != nil {
		t.Fatalf("GetInLawFirm() error = %v", err)
	}
	if found.Permission == nil || found.Permission.Version != 2 || len(found.Permission.Payload) != 3 {
		t.Errorf("Permission = %+v", found.Permission)
	}
}
