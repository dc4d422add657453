package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"law_office_v1/internal/model"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:       "law-office-secret-key-change-in-production",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 14 * 24 * time.Hour,
		Issuer:          "law-office",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// Token 类型 (Subject)
const (
	TokenSubjectAccess  = "access"
	TokenSubjectRefresh = "refresh"
)

// ==================== Claims 定义 ====================

// UserClaims 用户声明
type UserClaims struct {
	UserID   int64  `json:"user_id"`
	LoginID  string `json:"login_id"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

func generateToken(subject string, ttl time.Duration, userID int64, loginID, userType string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID:   userID,
		LoginID:  loginID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateAccessToken 生成 Access Token
func GenerateAccessToken(userID int64, loginID, userType string) (string, error) {
	return generateToken(TokenSubjectAccess, jwtConfig.AccessTokenTTL, userID, loginID, userType)
}

// GenerateRefreshToken 生成 Refresh Token
func GenerateRefreshToken(userID int64, loginID, userType string) (string, error) {
	return generateToken(TokenSubjectRefresh, jwtConfig.RefreshTokenTTL, userID, loginID, userType)
}

// GenerateTokenPair 生成 Token 对
func GenerateTokenPair(userID int64, loginID, userType string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, loginID, userType)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(userID, loginID, userType)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// ContextKeyUser 当前用户在 gin.Context 中的键
const ContextKeyUser = "session_user"

// 错误码
const (
	errInvalidAuth     = "invalid_auth"
	errNotExistLawFirm = "not_exist_lawfirm"
	errTooManyRequests = "too_many_requests"
)

// SessionResolver 根据 Access Token 解析当前用户 (含律所)
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) (*model.User, error)
}

// bearerToken 解析 Authorization: Bearer {token}
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Session 会话中间件，校验 Token 并把用户放入 Context
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuth})
			return
		}

		user, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuth})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireLawFirm 要求当前用户已加入律所
func RequireLawFirm() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.LawFirmID == nil || user.LawFirm == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errNotExistLawFirm})
			return
		}
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// CurrentUser 从 Context 获取当前用户
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentLawFirm 从 Context 获取当前用户的律所
func CurrentLawFirm(c *gin.Context) *model.LawFirm {
	if user := CurrentUser(c); user != nil {
		return user.LawFirm
	}
	return nil
}

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
