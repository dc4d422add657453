package middleware

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"law_office_v1/internal/model"
	"law_office_v1/pkg/database"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: "file::memory:", LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := RegisterAuditCallbacks(db); err != nil {
		t.Fatalf("RegisterAuditCallbacks() error = %v", err)
	}
	if err := db.AutoMigrate(&model.Customer{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestAuditCallbacks(t *testing.T) {
	db := setupAuditDB(t)
	creator := WithActor(context.Background(), Actor{UserID: 7, LawFirmID: 1})
	editor := WithActor(context.Background(), Actor{UserID: 9, LawFirmID: 1})

	customer := &model.Customer{Name: "a", LawFirmID: 1}
	if err := db.WithContext(creator).Create(customer).Error; err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if customer.CreatedBy != 7 || customer.UpdatedBy != 7 {
		t.Errorf("创建后 CreatedBy/UpdatedBy = %d/%d, want 7/7", customer.CreatedBy, customer.UpdatedBy)
	}

	// map 形式的更新同样记录操作人
	err := db.WithContext(editor).
		Model(&model.Customer{}).
		Where("id = ?", customer.ID).
		Update("last_consulting_date", time.Now()).Error
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	var got model.Customer
	if err := db.First(&got, customer.ID).Error; err != nil {
		t.Fatalf("First() error = %v", err)
	}
	if got.CreatedBy != 7 || got.UpdatedBy != 9 {
		t.Errorf("更新后 CreatedBy/UpdatedBy = %d/%d, want 7/9", got.CreatedBy, got.UpdatedBy)
	}

	// 无操作人时不改动
	got.Name = "b"
	if err := db.WithContext(context.Background()).Save(&got).Error; err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got.UpdatedBy != 9 {
		t.Errorf("无操作人 UpdatedBy = %d, want 9", got.UpdatedBy)
	}
}

func TestActorFrom(t *testing.T) {
	if _, ok := ActorFrom(context.Background()); ok {
		t.Error("空 context 不应有操作人")
	}
	if _, ok := ActorFrom(WithActor(context.Background(), Actor{})); ok {
		t.Error("UserID 为 0 视为无操作人")
	}
	actor, ok := ActorFrom(WithActor(context.Background(), Actor{UserID: 3, LawFirmID: 4}))
	if !ok || actor.LawFirmID != 4 {
		t.Errorf("ActorFrom() = %+v, %v", actor, ok)
	}
}
