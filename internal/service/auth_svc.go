package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
)

// 登录 ID、密码长度限制
const (
	loginIDMinLength  = 3
	loginIDMaxLength  = 30
	passwordMinLength = 3
)

// SignInThrottle 登录频率限制
type SignInThrottle interface {
	Allow(loginID string) bool
}

// ==================== AuthService 认证服务 ====================

// AuthService 注册、登录、会话
type AuthService struct {
	uow      *repository.UnitOfWork
	throttle SignInThrottle
}

// NewAuthService 创建认证服务，throttle 可为 nil
func NewAuthService(uow *repository.UnitOfWork, throttle SignInThrottle) *AuthService {
	return &AuthService{
		uow:      uow,
		throttle: throttle,
	}
}

// SignUp 注册
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*model.User, error) {
	loginID := req.LoginID()
	authType := req.ResolvedAuthType()
	userType := model.UserType(req.UserType)

	// 1. 写库前校验
	if err := validateCredentials(loginID, req.Password); err != nil {
		return nil, err
	}
	if !userType.IsValid() || !authType.IsValid() {
		return nil, ErrInvalidParameter
	}

	if userType == model.UserTypeLawyer {
		if req.SerialNumber == "" {
			return nil, ErrRequireSerialNumber
		}
		if req.IssueNumber == "" {
			return nil, ErrRequireIssueNumber
		}
		exists, err := s.uow.Profiles.ExistsVerifiedLawyerNumber(ctx, req.SerialNumber, req.IssueNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyExistLawyerInfo
		}
	}

	// 2. 查重
	exists, err := s.uow.UserAuths.ExistsByLogin(ctx, authType, loginID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatedUser
	}

	// 3. 密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.User{
		Type:        userType,
		Name:        req.Name,
		Email:       req.Email,
		Birthday:    req.Birthday,
		PhoneNumber: req.PhoneNumber,
		Auths:       []model.UserAuth{*model.NewUserAuth(authType, loginID, string(hashedPassword))},
	}
	if userType == model.UserTypeLawyer {
		user.LawyerInfo = &model.LawyerInfo{
			SerialNumber: req.SerialNumber,
			IssueNumber:  req.IssueNumber,
		}
	}

	// 4. 落库 (用户、凭证、律师信息同一事务)
	err = s.uow.Transaction(ctx, func(uow *repository.UnitOfWork) error {
		return uow.Users.Create(ctx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicatedUser
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// validateCredentials 登录 ID、密码长度校验
func validateCredentials(loginID, password string) error {
	switch n := utf8.RuneCountInString(loginID); {
	case n < loginIDMinLength:
		return ErrIDLengthShort
	case n > loginIDMaxLength:
		return ErrIDLengthLong
	}
	if utf8.RuneCountInString(password) < passwordMinLength {
		return ErrPasswordLengthShort
	}
	return nil
}

// SignIn 登录
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error) {
	loginID := req.LoginID()
	authType := req.ResolvedAuthType()

	if s.throttle != nil && !s.throttle.Allow(loginID) {
		return nil, ErrTooManyRequests
	}

	// 查找凭证
	auth, err := s.uow.UserAuths.GetByLogin(ctx, authType, loginID)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return nil, ErrInvalidIDOrPassword
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(auth.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidIDOrPassword
	}

	user, err := s.uow.Users.GetByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidIDOrPassword
	}

	return s.issueTokens(user, loginID)
}

// Refresh 刷新 Token
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidAuth
	}
	if claims.Subject != middleware.TokenSubjectRefresh {
		return nil, ErrInvalidAuth
	}

	user, err := s.uow.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidAuth
	}

	return s.issueTokens(user, claims.LoginID)
}

// ResolveSession 解析 Access Token，返回带律所的当前用户
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := middleware.ParseToken(accessToken)
	if err != nil {
		return nil, ErrInvalidAuth
	}
	if claims.Subject != middleware.TokenSubjectAccess {
		return nil, ErrInvalidAuth
	}

	user, err := s.uow.Users.GetWithLawFirm(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidAuth
	}
	return user, nil
}

// issueTokens 签发 Token 对
func (s *AuthService) issueTokens(user *model.User, loginID string) (*dto.TokenResponse, error) {
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, loginID, string(user.Type))
	if err != nil {
		return nil, fmt.Errorf("签发 Token 失败: %w", err)
	}

	cfg := middleware.GetJWTConfig()
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}
