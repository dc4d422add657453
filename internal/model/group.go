package model

import (
	"gorm.io/datatypes"
)

// 受保护分组，随律所一起创建，不可重名创建，不可删除
const (
	AdminGroupName   = "관리자"
	DefaultGroupName = "기본"

	adminGroupDescription   = "관리자 그룹"
	defaultGroupDescription = "기본 그룹"
)

// IsReservedGroupName 是否为保留分组名
func IsReservedGroupName(name string) bool {
	return name == AdminGroupName || name == DefaultGroupName
}

// Group 律所内的用户分组
type Group struct {
	BaseModel
	Name        string `gorm:"size:64;not null;index" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	LawFirmID   int64  `gorm:"index;not null" json:"-"`

	PermissionID *int64      `json:"-"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
	Users        []User      `gorm:"many2many:group_users;" json:"users,omitempty"`
}

func (Group) TableName() string {
	return "law_firm_groups"
}

// IsProtected 是否为受保护分组
func (g *Group) IsProtected() bool {
	return IsReservedGroupName(g.Name)
}

// Permission 分组权限，Payload 为权限编号列表
type Permission struct {
	BaseModel
	Version int                      `gorm:"not null" json:"version"`
	Payload datatypes.JSONSlice[int] `gorm:"column:permission" json:"permission"`
}

func (Permission) TableName() string {
	return "permissions"
}

// GroupUser 分组成员关系 (group_users 连接表)
type GroupUser struct {
	GroupID int64 `gorm:"primaryKey"`
	UserID  int64 `gorm:"primaryKey;index"`
}

func (GroupUser) TableName() string {
	return "group_users"
}

// NewPermission 构造权限
func NewPermission(version int, payload []int) *Permission {
	if payload == nil {
		payload = []int{}
	}
	return &Permission{
		Version: version,
		Payload: datatypes.NewJSONSlice(payload),
	}
}

// NewGroup 构造普通分组
func NewGroup(lawFirmID int64, name, description string, permission *Permission) *Group {
	return &Group{
		Name:        name,
		Description: description,
		LawFirmID:   lawFirmID,
		Permission:  permission,
	}
}

// NewAdminGroup 构造管理员分组
func NewAdminGroup(lawFirmID int64) *Group {
	return NewGroup(lawFirmID, AdminGroupName, adminGroupDescription, NewPermission(0, nil))
}

// NewDefaultGroup 构造默认分组
func NewDefaultGroup(lawFirmID int64) *Group {
	return NewGroup(lawFirmID, DefaultGroupName, defaultGroupDescription, NewPermission(0, nil))
}
