package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/service"
)

type GroupController struct {
	groupService *service.GroupService
	logger       *zap.Logger
}

func NewGroupController(groupService *service.GroupService, logger *zap.Logger) *GroupController {
	return &GroupController{groupService: groupService, logger: logger}
}

// Create 创建分组
// @Summary 创建分组
// @Tags Group (分组)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "分组信息"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse "cannot_use_this_name / has_not_permission"
// @Router /v1/lawfirms/groups [post]
func (ctrl *GroupController) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := ctrl.groupService.Create(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupResponse{Group: group})
}

// List 分组列表
// @Summary 分组列表 (含成员、权限)
// @Tags Group (分组)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.GroupListResponse
// @Router /v1/lawfirms/groups [get]
func (ctrl *GroupController) List(c *gin.Context) {
	groups, err := ctrl.groupService.List(c.Request.Context(), middleware.CurrentLawFirm(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupListResponse{Groups: groups})
}

// Update 修改分组
// @Summary 修改分组名称、描述
// @Tags Group (分组)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupIdx path int true "分组 idx"
// @Param request body dto.UpdateGroupRequest true "修改内容"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse "not_exist_group"
// @Router /v1/lawfirms/groups/{groupIdx} [put]
func (ctrl *GroupController) Update(c *gin.Context) {
	groupIdx, ok := paramIdx(c, "groupIdx")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := ctrl.groupService.Update(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), groupIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupResponse{Group: group})
}

// UpdatePermission 修改分组权限
// @Summary 修改分组权限
// @Tags Group (分组)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupIdx path int true "分组 idx"
// @Param request body dto.UpdatePermissionRequest true "权限"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse "not_exist_group"
// @Router /v1/lawfirms/groups/{groupIdx}/permission [put]
func (ctrl *GroupController) UpdatePermission(c *gin.Context) {
	groupIdx, ok := paramIdx(c, "groupIdx")
	if !ok {
		return
	}
	var req dto.UpdatePermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := ctrl.groupService.UpdatePermission(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), groupIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupResponse{Group: group})
}

// Remove 删除分组
// @Summary 删除分组
// @Tags Group (分组)
// @Produce json
// @Security BearerAuth
// @Param groupIdx path int true "分组 idx"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse "cannot_remove_admin_or_default_group"
// @Router /v1/lawfirms/groups/{groupIdx} [delete]
func (ctrl *GroupController) Remove(c *gin.Context) {
	groupIdx, ok := paramIdx(c, "groupIdx")
	if !ok {
		return
	}

	group, err := ctrl.groupService.Remove(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), groupIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GroupResponse{Group: group})
}

// AddUser 加入分组
// @Summary 成员加入分组
// @Tags Group (分组)
// @Produce json
// @Security BearerAuth
// @Param groupIdx path int true "分组 idx"
// @Param userIdx path int true "用户 idx"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "has_not_permission / not_exist_user / not_exist_group"
// @Router /v1/lawfirms/groups/{groupIdx}/users/{userIdx} [post]
func (ctrl *GroupController) AddUser(c *gin.Context) {
	groupIdx, ok := paramIdx(c, "groupIdx")
	if !ok {
		return
	}
	userIdx, ok := paramIdx(c, "userIdx")
	if !ok {
		return
	}

	user, err := ctrl.groupService.AddUser(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), userIdx, groupIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// RemoveUser 移出分组
// @Summary 成员移出分组
// @Tags Group (分组)
// @Produce json
// @Security BearerAuth
// @Param groupIdx path int true "分组 idx"
// @Param userIdx path int true "用户 idx"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "has_not_permission / not_exist_user / not_exist_group"
// @Router /v1/lawfirms/groups/{groupIdx}/users/{userIdx} [delete]
func (ctrl *GroupController) RemoveUser(c *gin.Context) {
	groupIdx, ok := paramIdx(c, "groupIdx")
	if !ok {
		return
	}
	userIdx, ok := paramIdx(c, "userIdx")
	if !ok {
		return
	}

	user, err := ctrl.groupService.RemoveUser(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), userIdx, groupIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}
