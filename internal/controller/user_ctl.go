package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/service"
)

type UserController struct {
	userInfoService *service.UserInfoService
	logger          *zap.Logger
}

func NewUserController(userInfoService *service.UserInfoService, logger *zap.Logger) *UserController {
	return &UserController{userInfoService: userInfoService, logger: logger}
}

// GetMe 本人资料
// @Summary 本人资料 (含收款账户)
// @Tags User (用户)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Router /subagent/v1/users [get]
func (ctrl *UserController) GetMe(c *gin.Context) {
	ctrl.respondUser(c, nil)
}

// Get 他人资料
// @Summary 用户资料
// @Description 非本人时不返回收款账户
// @Tags User (用户)
// @Produce json
// @Security BearerAuth
// @Param userIdx path int true "用户 idx"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "not_exist_user"
// @Router /subagent/v1/users/{userIdx} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	userIdx, ok := paramIdx(c, "userIdx")
	if !ok {
		return
	}
	ctrl.respondUser(c, &userIdx)
}

func (ctrl *UserController) respondUser(c *gin.Context, userIdx *int64) {
	user, err := ctrl.userInfoService.Get(c.Request.Context(), middleware.CurrentUser(c), userIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// Update 修改本人资料
// @Summary 修改本人资料
// @Tags User (用户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserInfoRequest true "资料"
// @Success 200 {object} dto.UserResponse
// @Router /subagent/v1/users [put]
func (ctrl *UserController) Update(c *gin.Context) {
	var req dto.UpdateUserInfoRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.userInfoService.Update(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}
