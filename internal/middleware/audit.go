package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 操作人 ====================

type actorKey struct{}

// Actor 当前请求的操作人及其所属律所 (未加入律所时为 0)
type Actor struct {
	UserID    int64
	LawFirmID int64
}

// WithActor 把操作人写入 context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom 读取操作人，后台任务等无会话场景 ok 为 false
func ActorFrom(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok && actor.UserID > 0
}

// AuditContext 把会话用户放进 request context，须挂在 Session 之后
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			actor := Actor{UserID: user.ID}
			if user.LawFirmID != nil {
				actor.LawFirmID = *user.LawFirmID
			}
			c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

const (
	auditCreatedBy = "CreatedBy"
	auditUpdatedBy = "UpdatedBy"
)

// RegisterAuditCallbacks 写库时按操作人填充 CreatedBy / UpdatedBy
// 没有操作人时 (种子数据、定时任务) 保持原值
func RegisterAuditCallbacks(db *gorm.DB) error {
	err := db.Callback().Create().Before("gorm:create").
		Register("audit:create", stampActor(auditCreatedBy, auditUpdatedBy))
	if err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").
		Register("audit:update", stampActor(auditUpdatedBy))
}

// stampActor 支持结构体、切片与 map 形式的写入
func stampActor(fieldNames ...string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		stmt := tx.Statement
		if stmt.Schema == nil {
			return
		}
		actor, ok := ActorFrom(stmt.Context)
		if !ok {
			return
		}

		for _, name := range fieldNames {
			field := stmt.Schema.LookUpField(name)
			if field == nil {
				continue
			}
			stmt.SetColumn(field.DBName, actor.UserID, true)
		}
	}
}
