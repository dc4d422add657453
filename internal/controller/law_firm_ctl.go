package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/service"
)

// LawFirmController 律所与加入申请
type LawFirmController struct {
	lawFirmService     *service.LawFirmService
	joinRequestService *service.JoinRequestService
	logger             *zap.Logger
}

func NewLawFirmController(lawFirmService *service.LawFirmService, joinRequestService *service.JoinRequestService, logger *zap.Logger) *LawFirmController {
	return &LawFirmController{
		lawFirmService:     lawFirmService,
		joinRequestService: joinRequestService,
		logger:             logger,
	}
}

// Create 创建律所
// @Summary 创建律所
// @Description 仅未加入律所的律师可创建，创建者成为所有者
// @Tags LawFirm (律所)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLawFirmRequest true "律所信息"
// @Success 200 {object} dto.LawFirmResponse
// @Failure 400 {object} ErrorResponse "already_join_lawFirm / employee_cannot_create_lawfirm"
// @Router /v1/lawfirms [post]
func (ctrl *LawFirmController) Create(c *gin.Context) {
	var req dto.CreateLawFirmRequest
	if !bindJSON(c, &req) {
		return
	}

	lawFirm, err := ctrl.lawFirmService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawFirmResponse{LawFirm: lawFirm})
}

// Update 修改律所
// @Summary 修改律所
// @Tags LawFirm (律所)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateLawFirmRequest true "修改内容"
// @Success 200 {object} dto.LawFirmResponse
// @Failure 400 {object} ErrorResponse "has_not_permission"
// @Router /v1/lawfirms [put]
func (ctrl *LawFirmController) Update(c *gin.Context) {
	var req dto.UpdateLawFirmRequest
	if !bindJSON(c, &req) {
		return
	}

	lawFirm, err := ctrl.lawFirmService.Update(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawFirmResponse{LawFirm: lawFirm})
}

// Get 当前律所
// @Summary 当前律所详情
// @Tags LawFirm (律所)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LawFirmResponse
// @Failure 400 {object} ErrorResponse "not_exist_lawfirm"
// @Router /v1/lawfirms [get]
func (ctrl *LawFirmController) Get(c *gin.Context) {
	lawFirm, err := ctrl.lawFirmService.Get(c.Request.Context(), middleware.CurrentLawFirm(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawFirmResponse{LawFirm: lawFirm})
}

// Disband 解散律所
// @Summary 解散律所
// @Tags LawFirm (律所)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LawFirmResponse
// @Failure 400 {object} ErrorResponse "has_not_permission"
// @Router /v1/lawfirms [delete]
func (ctrl *LawFirmController) Disband(c *gin.Context) {
	lawFirm, err := ctrl.lawFirmService.Disband(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawFirmResponse{LawFirm: lawFirm})
}

// Withdraw 退出律所
// @Summary 退出律所
// @Description 所有者不能退出
// @Tags LawFirm (律所)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "cannot_withdraw"
// @Router /v1/lawfirms/withdraw [post]
func (ctrl *LawFirmController) Withdraw(c *gin.Context) {
	user, err := ctrl.lawFirmService.Withdraw(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// ChangeOwner 转让律所
// @Summary 转让律所
// @Tags LawFirm (律所)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangeOwnerRequest true "新所有者"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "target_user_not_in_lawfirm / employee_cannot_be_owner"
// @Router /v1/lawfirms/owner [put]
func (ctrl *LawFirmController) ChangeOwner(c *gin.Context) {
	var req dto.ChangeOwnerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.lawFirmService.ChangeOwner(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), req.UserIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// ==================== 加入申请 ====================

// ListJoinRequests 律所收到的申请
// @Summary 律所收到的加入申请
// @Tags JoinRequest (加入申请)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.JoinRequestListResponse
// @Router /v1/lawfirms/joins [get]
func (ctrl *LawFirmController) ListJoinRequests(c *gin.Context) {
	reqs, err := ctrl.joinRequestService.ListForLawFirm(c.Request.Context(), middleware.CurrentLawFirm(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinRequestListResponse{LawFirmJoinRequests: reqs})
}

// AcceptJoinRequest 同意申请
// @Summary 同意加入申请
// @Tags JoinRequest (加入申请)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "申请 idx"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "not_exist_join_request"
// @Router /v1/lawfirms/joins/{idx} [post]
func (ctrl *LawFirmController) AcceptJoinRequest(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	user, err := ctrl.joinRequestService.Accept(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// RejectJoinRequest 拒绝申请
// @Summary 拒绝加入申请
// @Tags JoinRequest (加入申请)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "申请 idx"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "not_exist_join_request"
// @Router /v1/lawfirms/joins/{idx} [delete]
func (ctrl *LawFirmController) RejectJoinRequest(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	user, err := ctrl.joinRequestService.Reject(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentLawFirm(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// RequestJoin 凭加入码申请加入
// @Summary 申请加入律所
// @Tags JoinRequest (加入申请)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinRequestCreateRequest true "加入码"
// @Success 200 {object} dto.JoinRequestResponse
// @Failure 400 {object} ErrorResponse "not_exist_lawfirm / already_join_request"
// @Router /v1/users/lawfirms/joins [post]
func (ctrl *LawFirmController) RequestJoin(c *gin.Context) {
	var req dto.JoinRequestCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	joinRequest, err := ctrl.joinRequestService.RequestByCode(c.Request.Context(), middleware.CurrentUser(c), req.JoinCode)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinRequestResponse{LawFirmJoinRequest: joinRequest})
}

// ListMyJoinRequests 本人发出的申请
// @Summary 本人发出的加入申请
// @Tags JoinRequest (加入申请)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.JoinRequestListResponse
// @Router /v1/users/lawfirms/joins [get]
func (ctrl *LawFirmController) ListMyJoinRequests(c *gin.Context) {
	reqs, err := ctrl.joinRequestService.ListForUser(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinRequestListResponse{LawFirmJoinRequests: reqs})
}

// CancelJoinRequest 撤回申请
// @Summary 撤回加入申请
// @Tags JoinRequest (加入申请)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "申请 idx"
// @Success 200 {object} dto.JoinRequestResponse
// @Failure 400 {object} ErrorResponse "not_exist_lawfirm_join_request"
// @Router /v1/users/lawfirms/joins/{idx} [delete]
func (ctrl *LawFirmController) CancelJoinRequest(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	joinRequest, err := ctrl.joinRequestService.Cancel(c.Request.Context(), middleware.CurrentUser(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinRequestResponse{LawFirmJoinRequest: joinRequest})
}
