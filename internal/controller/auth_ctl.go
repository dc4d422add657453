package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthController(s *service.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: s, logger: logger}
}

// SignUp 注册
// @Summary 注册
// @Description 律师注册需要登记证号与发证号；未传 id 时以 email 作为登录 ID
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "注册参数"
// @Success 200 {object} dto.SignUpResponse
// @Failure 400 {object} ErrorResponse "id_length_short / duplicated_user ..."
// @Failure 429 {object} ErrorResponse "too_many_requests"
// @Router /v1/auths [post]
func (ctrl *AuthController) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignUpResponse{User: user})
}

// SignIn 登录
// @Summary 登录
// @Description 校验登录 ID 与密码，签发 Access / Refresh Token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "登录参数"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse "invalid_id_or_password"
// @Failure 429 {object} ErrorResponse "too_many_requests"
// @Router /v1/auths/session [post]
func (ctrl *AuthController) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := ctrl.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh 刷新 Token
// @Summary 刷新 Token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} ErrorResponse "invalid_auth"
// @Router /v1/auths/session/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}
