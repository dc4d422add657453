package dto

import (
	"law_office_v1/internal/model"
)

// ==================== 律所 ====================

// CreateLawFirmRequest 创建律所
type CreateLawFirmRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	Telephone string `json:"telePhone"`
}

// UpdateLawFirmRequest 更新律所，空字段不修改
// joinCode 非空时重新生成加入码，传入的值本身不会被采用
type UpdateLawFirmRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telePhone"`
	JoinCode  string `json:"joinCode"`
}

// ChangeOwnerRequest 转让律所
type ChangeOwnerRequest struct {
	UserIdx int64 `json:"userIdx" binding:"required,gt=0"`
}

// LawFirmResponse 律所响应
type LawFirmResponse struct {
	LawFirm *model.LawFirm `json:"lawFirm"`
}

// UserResponse 单个用户响应
type UserResponse struct {
	User *model.User `json:"user"`
}

// ==================== 加入申请 ====================

// JoinRequestCreateRequest 按加入码申请
type JoinRequestCreateRequest struct {
	JoinCode string `json:"joinCode" binding:"required"`
}

// JoinRequestResponse 单个申请响应
type JoinRequestResponse struct {
	LawFirmJoinRequest *model.LawFirmJoinRequest `json:"lawFirmJoinRequest"`
}

// JoinRequestListResponse 申请列表响应
type JoinRequestListResponse struct {
	LawFirmJoinRequests []model.LawFirmJoinRequest `json:"lawFirmJoinRequests"`
}

// ==================== 分组 ====================

// CreateGroupRequest 创建分组
type CreateGroupRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	PermissionVersion int    `json:"permissionVersion"`
	Permission        []int  `json:"permission"`
}

// UpdateGroupRequest 修改分组
type UpdateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdatePermissionRequest 修改分组权限
type UpdatePermissionRequest struct {
	PermissionVersion int   `json:"permissionVersion"`
	Permission        []int `json:"permission"`
}

// GroupResponse 单个分组响应
type GroupResponse struct {
	Group *model.Group `json:"group"`
}

// GroupListResponse 分组列表响应
type GroupListResponse struct {
	Groups []model.Group `json:"groups"`
}

// ==================== 案件 ====================

// CreateLawCaseRequest 创建案件
type CreateLawCaseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateLawCaseRequest 修改案件
type UpdateLawCaseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,lawstatus"`
}

// LawCaseResponse 单个案件响应
type LawCaseResponse struct {
	LawCase *model.LawCase `json:"lawCase"`
}

// LawCaseListResponse 案件列表响应
type LawCaseListResponse struct {
	LawCases []model.LawCase `json:"lawCases"`
}

// ==================== 客户 & 咨询 ====================

// CustomerRequest 新建 / 修改客户
type CustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Sex         string `json:"sex"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	Birthday    string `json:"birthday"`
	Description string `json:"description"`
}

// CustomerListQuery 客户列表查询参数
type CustomerListQuery struct {
	Page    int    `form:"page,default=0" binding:"gte=0"`
	Order   string `form:"order,default=idx"`
	Reverse bool   `form:"reverse"`
	Limit   int    `form:"limit,default=200" binding:"gte=0"`
	Type    string `form:"type" binding:"omitempty,oneof=idx phoneNumber birthday"`
	Target  string `form:"target"`
}

// CustomerResponse 单个客户响应
type CustomerResponse struct {
	Customer *model.Customer `json:"customer"`
}

// CustomerListResponse 客户列表响应
type CustomerListResponse struct {
	Customers []model.Customer `json:"customers"`
}

// ConsultingRequest 新建 / 修改咨询记录
type ConsultingRequest struct {
	Title         string `json:"title"`
	ContentFormat string `json:"contentFormat"`
	Content       string `json:"content"`
	Uniqueness    string `json:"uniqueness"`
}

// ConsultingResponse 咨询记录响应
type ConsultingResponse struct {
	Consulting *model.Consulting `json:"consulting"`
}
