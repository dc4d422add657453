package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/model"
	"law_office_v1/internal/service"
)

type LawCaseController struct {
	lawCaseService *service.LawCaseService
	logger         *zap.Logger
}

func NewLawCaseController(lawCaseService *service.LawCaseService, logger *zap.Logger) *LawCaseController {
	return &LawCaseController{lawCaseService: lawCaseService, logger: logger}
}

// Create 创建案件
// @Summary 创建案件
// @Tags LawCase (案件)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLawCaseRequest true "案件信息"
// @Success 200 {object} dto.LawCaseResponse
// @Router /v1/lawfirms/lawcases [post]
func (ctrl *LawCaseController) Create(c *gin.Context) {
	var req dto.CreateLawCaseRequest
	if !bindJSON(c, &req) {
		return
	}

	lawCase, err := ctrl.lawCaseService.Create(c.Request.Context(), middleware.CurrentLawFirm(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseResponse{LawCase: lawCase})
}

// List 案件列表
// @Summary 案件列表 (含负责人、客户)
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LawCaseListResponse
// @Router /v1/lawfirms/lawcases [get]
func (ctrl *LawCaseController) List(c *gin.Context) {
	lawCases, err := ctrl.lawCaseService.List(c.Request.Context(), middleware.CurrentLawFirm(c), nil)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseListResponse{LawCases: lawCases})
}

// Get 单个案件
// @Summary 单个案件
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Success 200 {object} dto.LawCaseListResponse
// @Router /v1/lawfirms/lawcases/{idx} [get]
func (ctrl *LawCaseController) Get(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	lawCases, err := ctrl.lawCaseService.List(c.Request.Context(), middleware.CurrentLawFirm(c), &idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseListResponse{LawCases: lawCases})
}

// Update 修改案件
// @Summary 修改案件
// @Tags LawCase (案件)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Param request body dto.UpdateLawCaseRequest true "修改内容"
// @Success 200 {object} dto.LawCaseResponse
// @Failure 400 {object} ErrorResponse "not_exist_lawcase"
// @Router /v1/lawfirms/lawcases/{idx} [put]
func (ctrl *LawCaseController) Update(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}
	var req dto.UpdateLawCaseRequest
	if !bindJSON(c, &req) {
		return
	}

	lawCase, err := ctrl.lawCaseService.Update(c.Request.Context(), middleware.CurrentLawFirm(c), idx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseResponse{LawCase: lawCase})
}

// Remove 删除案件
// @Summary 删除案件
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Success 200 {object} dto.LawCaseResponse
// @Failure 400 {object} ErrorResponse "not_exist_lawcase"
// @Router /v1/lawfirms/lawcases/{idx} [delete]
func (ctrl *LawCaseController) Remove(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	lawCase, err := ctrl.lawCaseService.Remove(c.Request.Context(), middleware.CurrentLawFirm(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseResponse{LawCase: lawCase})
}

// AddUser 指派负责人
// @Summary 指派负责人
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Param userIdx path int true "用户 idx"
// @Success 200 {object} dto.LawCaseResponse
// @Failure 400 {object} ErrorResponse "user_can_be_lawyer"
// @Router /v1/lawfirms/lawcases/{idx}/users/{userIdx} [post]
func (ctrl *LawCaseController) AddUser(c *gin.Context) {
	ctrl.handleMember(c, "userIdx", ctrl.lawCaseService.AddUser)
}

// RemoveUser 取消负责人
// @Summary 取消负责人
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Param userIdx path int true "用户 idx"
// @Success 200 {object} dto.LawCaseResponse
// @Router /v1/lawfirms/lawcases/{idx}/users/{userIdx} [delete]
func (ctrl *LawCaseController) RemoveUser(c *gin.Context) {
	ctrl.handleMember(c, "userIdx", ctrl.lawCaseService.RemoveUser)
}

// AddCustomer 关联客户
// @Summary 关联客户
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Param customerIdx path int true "客户 idx"
// @Success 200 {object} dto.LawCaseResponse
// @Failure 400 {object} ErrorResponse "not_exist_customer"
// @Router /v1/lawfirms/lawcases/{idx}/customers/{customerIdx} [post]
func (ctrl *LawCaseController) AddCustomer(c *gin.Context) {
	ctrl.handleMember(c, "customerIdx", ctrl.lawCaseService.AddCustomer)
}

// RemoveCustomer 取消关联客户
// @Summary 取消关联客户
// @Tags LawCase (案件)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "案件 idx"
// @Param customerIdx path int true "客户 idx"
// @Success 200 {object} dto.LawCaseResponse
// @Router /v1/lawfirms/lawcases/{idx}/customers/{customerIdx} [delete]
func (ctrl *LawCaseController) RemoveCustomer(c *gin.Context) {
	ctrl.handleMember(c, "customerIdx", ctrl.lawCaseService.RemoveCustomer)
}

type lawCaseMemberFunc func(ctx context.Context, lawFirm *model.LawFirm, idx, memberIdx int64) (*model.LawCase, error)

// handleMember 负责人、客户关联的公共处理
func (ctrl *LawCaseController) handleMember(c *gin.Context, memberParam string, fn lawCaseMemberFunc) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}
	memberIdx, ok := paramIdx(c, memberParam)
	if !ok {
		return
	}

	lawCase, err := fn(c.Request.Context(), middleware.CurrentLawFirm(c), idx, memberIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LawCaseResponse{LawCase: lawCase})
}
