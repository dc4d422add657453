package service

import (
	"context"
	"testing"

	"law_office_v1/internal/api/dto"
)

func TestUserInfoService(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewUserInfoService(uow)

	lawyer := signUpLawyer(t, uow, "lawyer")
	other := signUpEmployee(t, uow, "other")

	updated, err := svc.Update(ctx, lawyer, &dto.UpdateUserInfoRequest{
		PhoneNumber:             "010-0000-0000",
		LawyerAffiliationOffice: "서울",
		LawyerAffiliationBranch: "중앙",
		BankAccountInfo:         "국민 123",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "lawyer" || updated.PhoneNumber != "010-0000-0000" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.LawyerAffiliation == nil || updated.LawyerAffiliation.AffiliationOffice != "서울" {
		t.Errorf("LawyerAffiliation = %+v", updated.LawyerAffiliation)
	}
	if updated.BankAccount == nil || updated.BankAccount.Info != "국민 123" {
		t.Errorf("BankAccount = %+v", updated.BankAccount)
	}

	// 再次修改沿用已有记录
	again, err := svc.Update(ctx, lawyer, &dto.UpdateUserInfoRequest{BankAccountInfo: "신한 456"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if again.BankAccount == nil || again.BankAccount.ID != updated.BankAccount.ID || again.BankAccount.Info != "신한 456" {
		t.Errorf("BankAccount = %+v", again.BankAccount)
	}

	// 他人查看时不返回收款账户
	viewed, err := svc.Get(ctx, other, &lawyer.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if viewed.BankAccount != nil {
		t.Errorf("他人不应看到收款账户")
	}
	if viewed.LawyerInfo == nil {
		t.Errorf("应带出律师执业信息")
	}

	me, err := svc.Get(ctx, lawyer, nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if me.BankAccount == nil {
		t.Errorf("本人应看到收款账户")
	}

	missing := int64(9999)
	_, err = svc.Get(ctx, lawyer, &missing)
	assertErr(t, err, ErrNotExistUser)
}
