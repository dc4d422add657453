package dto

import (
	"law_office_v1/internal/model"
)

// ==================== 委托 ====================

// SubAgentRequest 发布 / 修改委托
type SubAgentRequest struct {
	Title          string `json:"title" binding:"required"`
	Content        string `json:"content"`
	Court          string `json:"court" binding:"required"`
	Pay            int64  `json:"pay" binding:"gte=0"`
	TrialStartTime string `json:"trialStartTime"`
	PhoneNumber    string `json:"phoneNumber"`
}

// SubAgentListQuery 委托列表查询参数
type SubAgentListQuery struct {
	Type   string `form:"type,default=DEFAULT" binding:"showtype"`
	Offset int64  `form:"offset" binding:"gte=0"`
	Courts string `form:"courts"`
}

// OffsetQuery 按 idx 翻页
type OffsetQuery struct {
	Offset int64 `form:"offset" binding:"gte=0"`
}

// SubAgentResponse 单个委托响应
type SubAgentResponse struct {
	SubAgent *model.SubAgent `json:"subAgent"`
}

// SubAgentListResponse 委托列表响应
type SubAgentListResponse struct {
	SubAgents []model.SubAgent `json:"subAgents"`
}

// SubAgentHistoryResponse 通知历史响应
type SubAgentHistoryResponse struct {
	SubAgentHistories []model.SubAgentUserNotification `json:"subAgentHistories"`
}

// SubAgentRequestResponse 代理申请响应
type SubAgentRequestResponse struct {
	SubAgentRequest *model.SubAgentRequestUser `json:"subAgentRequest"`
}

// CourtListResponse 法院列表
type CourtListResponse struct {
	Courts []string `json:"courts"`
}

// ==================== 社区 ====================

// BoardRequest 发帖 / 修改帖子
type BoardRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content"`
	Images      []string `json:"images"`
	IsAnonymous *bool    `json:"isAnonymous"`
}

// Anonymous 未传 isAnonymous 时默认匿名
func (r *BoardRequest) Anonymous() bool {
	return r.IsAnonymous == nil || *r.IsAnonymous
}

// BoardResponse 单个帖子响应
type BoardResponse struct {
	Board *model.SubAgentBoard `json:"board"`
}

// BoardListResponse 帖子列表响应
type BoardListResponse struct {
	Boards []model.SubAgentBoard `json:"boards"`
}

// ReplyRequest 回复 / 修改回复
type ReplyRequest struct {
	Content     string `json:"content" binding:"required"`
	IsAnonymous *bool  `json:"isAnonymous"`
}

// Anonymous 未传 isAnonymous 时默认匿名
func (r *ReplyRequest) Anonymous() bool {
	return r.IsAnonymous == nil || *r.IsAnonymous
}

// ReplyResponse 单个回复响应
type ReplyResponse struct {
	Reply *model.SubAgentBoardReply `json:"reply"`
}

// ReplyListResponse 回复列表响应
type ReplyListResponse struct {
	Replies []model.SubAgentBoardReply `json:"replies"`
}

// ==================== 用户资料 ====================

// UpdateUserInfoRequest 修改个人资料
type UpdateUserInfoRequest struct {
	Name                    string `json:"name"`
	PhoneNumber             string `json:"phoneNumber"`
	LawyerAffiliationOffice string `json:"lawyerAffiliationOffice"`
	LawyerAffiliationBranch string `json:"lawyerAffiliationBranch"`
	BankAccountInfo         string `json:"bankAccountInfo"`
}

// BoardURI 板块路径参数
type BoardURI struct {
	BoardType string `uri:"boardType" binding:"required,boardtype"`
}
