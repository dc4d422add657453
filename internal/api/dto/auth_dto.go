package dto

import (
	"time"

	"law_office_v1/internal/model"
)

// ==================== 注册 ====================

// SignUpRequest 注册请求
// 登录 ID、密码长度由服务层校验，返回对应错误码
type SignUpRequest struct {
	AuthType     string `json:"authType" binding:"omitempty,authtype"`
	ID           string `json:"id"`
	Password     string `json:"password"`
	UserType     string `json:"userType" binding:"required,usertype"`
	SerialNumber string `json:"serialNumber"`
	IssueNumber  string `json:"issueNumber"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Birthday     string `json:"birthday"`
	PhoneNumber  string `json:"phoneNumber"`
}

// LoginID 未传 id 时以 email 作为登录 ID
func (r *SignUpRequest) LoginID() string {
	if r.ID == "" {
		return r.Email
	}
	return r.ID
}

// ResolvedAuthType 默认 NORMAL
func (r *SignUpRequest) ResolvedAuthType() model.AuthType {
	if r.AuthType == "" {
		return model.AuthTypeNormal
	}
	return model.AuthType(r.AuthType)
}

// SignUpResponse 注册响应
type SignUpResponse struct {
	User *model.User `json:"user"`
}

// ==================== 登录 ====================

// SignInRequest 登录请求
type SignInRequest struct {
	AuthType string `json:"authType" binding:"omitempty,authtype"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginID 未传 id 时以 email 作为登录 ID
func (r *SignInRequest) LoginID() string {
	if r.ID == "" {
		return r.Email
	}
	return r.ID
}

// ResolvedAuthType 默认 NORMAL
func (r *SignInRequest) ResolvedAuthType() model.AuthType {
	if r.AuthType == "" {
		return model.AuthTypeNormal
	}
	return model.AuthType(r.AuthType)
}

// TokenResponse 登录 / 刷新响应
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ==================== Token 刷新 ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
