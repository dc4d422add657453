package model

import (
	"gorm.io/datatypes"
)

// ==================== 复代理 (出庭代理) ====================

// SubAgent 出庭代理委托
type SubAgent struct {
	BaseModel
	Title          string `gorm:"size:255" json:"title"`
	Content        string `gorm:"type:text" json:"content"`
	Court          string `gorm:"size:128;index" json:"court"`
	Pay            int64  `json:"pay"`
	TrialStartTime string `gorm:"size:64" json:"trialStartTime"`
	PhoneNumber    string `gorm:"size:32" json:"phoneNumber"`
	IsAccept       bool   `json:"isAccept"`

	RequestingUserID int64                 `gorm:"index;not null" json:"-"`
	RequestingUser   *User                 `gorm:"foreignKey:RequestingUserID" json:"requestingUser,omitempty"`
	AcceptUserID     *int64                `gorm:"index" json:"-"`
	AcceptUser       *User                 `gorm:"foreignKey:AcceptUserID" json:"acceptUser,omitempty"`
	Requests         []SubAgentRequestUser `gorm:"foreignKey:SubAgentID" json:"requests,omitempty"`
}

func (SubAgent) TableName() string {
	return "sub_agents"
}

// IsAccepted 是否已确定代理人
func (s *SubAgent) IsAccepted() bool {
	return s.AcceptUserID != nil
}

// ==================== 代理申请 ====================

// RequestStatus 申请状态
type RequestStatus string

const (
	RequestStatusWaiting RequestStatus = "WAITING"
	RequestStatusDeny    RequestStatus = "DENY"
	RequestStatusAccept  RequestStatus = "ACCEPT"
)

// RequestType 申请方向
type RequestType string

const (
	RequestTypeToUser     RequestType = "REQUEST_TO_USER"
	RequestTypeToSubAgent RequestType = "REQUEST_TO_SUBAGENT"
)

// SubAgentRequestUser 代理申请
type SubAgentRequestUser struct {
	BaseModel
	Status      RequestStatus `gorm:"size:16;not null" json:"status"`
	RequestType RequestType   `gorm:"size:32;not null" json:"requestType"`
	UserID      int64         `gorm:"index;not null" json:"-"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SubAgentID  int64         `gorm:"index;not null" json:"-"`
}

func (SubAgentRequestUser) TableName() string {
	return "sub_agent_request_users"
}

// NewSubAgentRequest 构造待处理申请
func NewSubAgentRequest(subAgentID, userID int64) *SubAgentRequestUser {
	return &SubAgentRequestUser{
		Status:      RequestStatusWaiting,
		RequestType: RequestTypeToSubAgent,
		UserID:      userID,
		SubAgentID:  subAgentID,
	}
}

// ==================== 通知 ====================

// 通知类型
const (
	NotificationTypeSubAgent = "subagent"
	NotificationLogAccept    = "accept"
	NotificationLogDeny      = "deny"
)

// SubAgentSnapshot 通知中的委托快照
type SubAgentSnapshot struct {
	Idx            int64  `json:"idx"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Court          string `json:"court"`
	Pay            int64  `json:"pay"`
	TrialStartTime string `json:"trialStartTime"`
}

// NotificationPayload 通知内容
type NotificationPayload struct {
	Type     string           `json:"type"`
	LogType  string           `json:"log_type"`
	SubAgent SubAgentSnapshot `json:"subagent"`
}

// SubAgentUserNotification 用户通知 / 历史
type SubAgentUserNotification struct {
	BaseModel
	Notification datatypes.JSONType[NotificationPayload] `json:"notification"`
	UserID       int64                                   `gorm:"index;not null" json:"-"`
}

func (SubAgentUserNotification) TableName() string {
	return "sub_agent_user_notifications"
}

// NewSubAgentNotification 构造委托通知
func NewSubAgentNotification(userID int64, logType string, subAgent *SubAgent) *SubAgentUserNotification {
	return &SubAgentUserNotification{
		UserID: userID,
		Notification: datatypes.NewJSONType(NotificationPayload{
			Type:    NotificationTypeSubAgent,
			LogType: logType,
			SubAgent: SubAgentSnapshot{
				Idx:            subAgent.ID,
				Title:          subAgent.Title,
				Content:        subAgent.Content,
				Court:          subAgent.Court,
				Pay:            subAgent.Pay,
				TrialStartTime: subAgent.TrialStartTime,
			},
		}),
	}
}
