package model

import (
	"time"
)

// BaseModel 公共字段
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"idx"`
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`

	// --- 审计字段 ---
	CreatedBy int64 `gorm:"comment:创建人ID" json:"-"`
	UpdatedBy int64 `gorm:"comment:更新人ID" json:"-"`
}
