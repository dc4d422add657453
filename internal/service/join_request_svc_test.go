package service

import (
	"context"
	"testing"

	"law_office_v1/internal/model"
)

func TestJoinRequestService_RequestByCode(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewJoinRequestService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	applicant := signUpEmployee(t, uow, "applicant")

	_, err := svc.RequestByCode(ctx, applicant, "no-such-code")
	assertErr(t, err, ErrNotExistLawFirm)

	req, err := svc.RequestByCode(ctx, applicant, lawFirm.JoinCode)
	if err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}
	if req.LawFirm == nil || req.LawFirm.JoinCode != "" {
		t.Errorf("申请响应不应暴露加入码")
	}

	_, err = svc.RequestByCode(ctx, applicant, lawFirm.JoinCode)
	assertErr(t, err, ErrAlreadyJoinRequest)

	_, err = svc.RequestByCode(ctx, owner, lawFirm.JoinCode)
	assertErr(t, err, ErrAlreadyJoinedLawFirm)

	mine, err := svc.ListForUser(ctx, applicant)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(mine) != 1 || mine[0].LawFirm == nil || mine[0].LawFirm.JoinCode != "" {
		t.Errorf("ListForUser() = %+v", mine)
	}
}

func TestJoinRequestService_Accept(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewJoinRequestService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	otherOwner := signUpLawyer(t, uow, "other")
	otherFirm := createLawFirm(t, uow, otherOwner, "other firm")

	applicant := signUpEmployee(t, uow, "applicant")
	req, err := svc.RequestByCode(ctx, applicant, lawFirm.JoinCode)
	if err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}
	if _, err := svc.RequestByCode(ctx, applicant, otherFirm.JoinCode); err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}

	pending, err := svc.ListForLawFirm(ctx, lawFirm)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListForLawFirm() = %v, %v", pending, err)
	}

	// 非所有者不能处理申请
	_, err = svc.Accept(ctx, applicant, lawFirm, req.ID)
	assertErr(t, err, ErrHasNotPermission)

	// 其它律所看不到这条申请
	_, err = svc.Accept(ctx, otherOwner, otherFirm, req.ID)
	assertErr(t, err, ErrNotExistJoinRequest)

	joined, err := svc.Accept(ctx, owner, lawFirm, req.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !joined.BelongsTo(lawFirm.ID) {
		t.Errorf("申请人未加入律所")
	}

	if names := groupNamesOf(t, uow, lawFirm.ID, applicant.ID); !contains(names, model.DefaultGroupName) {
		t.Errorf("申请人分组 = %v, 应在默认分组", names)
	}

	// 申请人的全部申请清空
	count, err := uow.JoinRequests.CountByUser(ctx, applicant.ID)
	if err != nil {
		t.Fatalf("CountByUser() error = %v", err)
	}
	if count != 0 {
		t.Errorf("剩余申请数 = %d, want 0", count)
	}

	// 同一申请不能再次同意
	_, err = svc.Accept(ctx, owner, lawFirm, req.ID)
	assertErr(t, err, ErrNotExistJoinRequest)

	assertEveryMemberGrouped(t, uow, lawFirm.ID)
}

func TestJoinRequestService_RejectAndCancel(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewJoinRequestService(uow)

	owner := signUpLawyer(t, uow, "owner")
	lawFirm := createLawFirm(t, uow, owner, "firm")
	first := signUpEmployee(t, uow, "first")
	second := signUpEmployee(t, uow, "second")

	firstReq, err := svc.RequestByCode(ctx, first, lawFirm.JoinCode)
	if err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}
	secondReq, err := svc.RequestByCode(ctx, second, lawFirm.JoinCode)
	if err != nil {
		t.Fatalf("RequestByCode() error = %v", err)
	}

	rejected, err := svc.Reject(ctx, owner, lawFirm, firstReq.ID)
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if rejected == nil || rejected.ID != first.ID {
		t.Errorf("Reject() 返回用户 = %+v", rejected)
	}
	_, err = svc.Reject(ctx, owner, lawFirm, firstReq.ID)
	assertErr(t, err, ErrNotExistJoinRequest)

	// 只能撤回自己的申请
	_, err = svc.Cancel(ctx, first, secondReq.ID)
	assertErr(t, err, ErrNotExistLawFirmJoinRequest)

	if _, err := svc.Cancel(ctx, second, secondReq.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if pending, _ := svc.ListForLawFirm(ctx, lawFirm); len(pending) != 0 {
		t.Errorf("剩余申请 = %d, want 0", len(pending))
	}
}
