package model

import (
	"strings"

	"github.com/google/uuid"
)

// LawFirmStatus 律所状态
type LawFirmStatus string

const (
	LawFirmStatusDefault LawFirmStatus = "DEFAULT"
	LawFirmStatusDeleted LawFirmStatus = "DELETED"
)

// JoinCodeLength 自动生成的加入码长度
const JoinCodeLength = 10

// SeedJoinCode 默认律所的固定加入码
const SeedJoinCode = "testJoinCode"

// LawFirm 律所 (租户边界)
type LawFirm struct {
	BaseModel
	Status    LawFirmStatus `gorm:"size:16;not null" json:"status"`
	Name      string        `gorm:"size:128;not null" json:"name"`
	JoinCode  string        `gorm:"size:20;uniqueIndex" json:"joinCode,omitempty"`
	Telephone string        `gorm:"size:32" json:"telephone"`
	Address   string        `gorm:"size:255" json:"address"`

	OwnerUserID *int64  `gorm:"index" json:"-"`
	OwnerUser   *User   `gorm:"foreignKey:OwnerUserID" json:"ownerUser,omitempty"`
	Groups      []Group `gorm:"foreignKey:LawFirmID" json:"groups,omitempty"`
}

func (LawFirm) TableName() string {
	return "law_firms"
}

// NewLawFirm 构造律所，写库前已带好加入码
func NewLawFirm(name, address, telephone string) *LawFirm {
	lawFirm := &LawFirm{
		Status:    LawFirmStatusDefault,
		Name:      name,
		Address:   address,
		Telephone: telephone,
	}
	lawFirm.EnsureJoinCode()
	return lawFirm
}

// IsOwner 是否为律所所有者
func (f *LawFirm) IsOwner(userID int64) bool {
	return f.OwnerUserID != nil && *f.OwnerUserID == userID
}

// ResetJoinCode 清空加入码，下一次 EnsureJoinCode 重新生成
func (f *LawFirm) ResetJoinCode() {
	f.JoinCode = ""
}

// EnsureJoinCode 写库前的加入码补全步骤
func (f *LawFirm) EnsureJoinCode() {
	if f.JoinCode != "" {
		return
	}
	f.JoinCode = GenerateJoinCode()
}

// GenerateJoinCode 生成随机加入码
func GenerateJoinCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:JoinCodeLength]
}

// ==================== 加入申请 ====================

// LawFirmJoinRequest 加入律所申请，存在即为待处理
type LawFirmJoinRequest struct {
	BaseModel
	UserID    int64    `gorm:"index;not null" json:"-"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LawFirmID int64    `gorm:"index;not null" json:"-"`
	LawFirm   *LawFirm `gorm:"foreignKey:LawFirmID" json:"lawFirm,omitempty"`
}

func (LawFirmJoinRequest) TableName() string {
	return "law_firm_join_requests"
}
