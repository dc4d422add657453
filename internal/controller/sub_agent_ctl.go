package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/court"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/service"
)

// SubAgentController 出庭代理委托
type SubAgentController struct {
	subAgentService *service.SubAgentService
	logger          *zap.Logger
}

func NewSubAgentController(subAgentService *service.SubAgentService, logger *zap.Logger) *SubAgentController {
	return &SubAgentController{subAgentService: subAgentService, logger: logger}
}

// Courts 法院列表
// @Summary 法院列表
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CourtListResponse
// @Router /subagent/v1/courts [get]
func (ctrl *SubAgentController) Courts(c *gin.Context) {
	courts, err := court.List()
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CourtListResponse{Courts: courts})
}

// Create 发布委托
// @Summary 发布委托
// @Tags SubAgent (出庭代理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubAgentRequest true "委托内容"
// @Success 200 {object} dto.SubAgentResponse
// @Router /subagent/v1/subagents [post]
func (ctrl *SubAgentController) Create(c *gin.Context) {
	var req dto.SubAgentRequest
	if !bindJSON(c, &req) {
		return
	}

	subAgent, err := ctrl.subAgentService.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentResponse{SubAgent: subAgent})
}

// List 委托列表
// @Summary 委托列表
// @Description type: DEFAULT 全部 / REQUESTING 我发布的 / REQUEST 我申请的 / ACCEPT 我接受的
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param type query string false "视角 (默认 DEFAULT)"
// @Param offset query int false "上一页最后一条 idx"
// @Param courts query string false "法院，逗号分隔"
// @Success 200 {object} dto.SubAgentListResponse
// @Router /subagent/v1/subagents [get]
func (ctrl *SubAgentController) List(c *gin.Context) {
	var query dto.SubAgentListQuery
	if !bindQuery(c, &query) {
		return
	}

	subAgents, err := ctrl.subAgentService.List(c.Request.Context(), middleware.CurrentUser(c), &query)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentListResponse{SubAgents: subAgents})
}

// Histories 通知历史
// @Summary 委托通知历史
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param offset query int false "上一页最后一条 idx"
// @Success 200 {object} dto.SubAgentHistoryResponse
// @Router /subagent/v1/subagents/histories [get]
func (ctrl *SubAgentController) Histories(c *gin.Context) {
	var query dto.OffsetQuery
	if !bindQuery(c, &query) {
		return
	}

	histories, err := ctrl.subAgentService.ListHistories(c.Request.Context(), middleware.CurrentUser(c), query.Offset)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentHistoryResponse{SubAgentHistories: histories})
}

// Get 委托详情
// @Summary 委托详情
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Success 200 {object} dto.SubAgentResponse
// @Failure 400 {object} ErrorResponse "not_exist_subagent"
// @Router /subagent/v1/subagents/{idx} [get]
func (ctrl *SubAgentController) Get(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	subAgent, err := ctrl.subAgentService.Get(c.Request.Context(), middleware.CurrentUser(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentResponse{SubAgent: subAgent})
}

// Update 修改委托
// @Summary 修改委托
// @Tags SubAgent (出庭代理)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Param request body dto.SubAgentRequest true "委托内容"
// @Success 200 {object} dto.SubAgentResponse
// @Failure 400 {object} ErrorResponse "has_not_permission"
// @Router /subagent/v1/subagents/{idx} [put]
func (ctrl *SubAgentController) Update(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}
	var req dto.SubAgentRequest
	if !bindJSON(c, &req) {
		return
	}

	subAgent, err := ctrl.subAgentService.Update(c.Request.Context(), middleware.CurrentUser(c), idx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentResponse{SubAgent: subAgent})
}

// Remove 删除委托
// @Summary 删除委托
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Success 200 {object} dto.SubAgentResponse
// @Failure 400 {object} ErrorResponse "not_exist_subagent / has_not_permission"
// @Router /subagent/v1/subagents/{idx} [delete]
func (ctrl *SubAgentController) Remove(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	subAgent, err := ctrl.subAgentService.Remove(c.Request.Context(), middleware.CurrentUser(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentResponse{SubAgent: subAgent})
}

// Request 申请代理
// @Summary 申请代理
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Success 200 {object} dto.SubAgentRequestResponse
// @Failure 400 {object} ErrorResponse "already_accept_subagent / cannot_request_my_subagent / already_request_subagent"
// @Router /subagent/v1/subagents/{idx}/requests [post]
func (ctrl *SubAgentController) Request(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	req, err := ctrl.subAgentService.Request(c.Request.Context(), middleware.CurrentUser(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentRequestResponse{SubAgentRequest: req})
}

// Cancel 撤回申请
// @Summary 撤回代理申请
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Success 200 {object} dto.SubAgentRequestResponse
// @Failure 400 {object} ErrorResponse "not_requeset_subagent"
// @Router /subagent/v1/subagents/{idx}/requests [delete]
func (ctrl *SubAgentController) Cancel(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}

	req, err := ctrl.subAgentService.Cancel(c.Request.Context(), middleware.CurrentUser(c), idx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentRequestResponse{SubAgentRequest: req})
}

// Accept 选定代理人
// @Summary 选定代理人
// @Description 其余待处理申请全部拒绝并通知
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Param targetUserIdx path int true "申请人 idx"
// @Success 200 {object} dto.SubAgentResponse
// @Failure 400 {object} ErrorResponse "has_not_permission / not_exist_target_user / not_exist_request"
// @Router /subagent/v1/subagents/{idx}/requests/{targetUserIdx} [put]
func (ctrl *SubAgentController) Accept(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}
	targetUserIdx, ok := paramIdx(c, "targetUserIdx")
	if !ok {
		return
	}

	subAgent, err := ctrl.subAgentService.Accept(c.Request.Context(), middleware.CurrentUser(c), idx, targetUserIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentResponse{SubAgent: subAgent})
}

// Deny 拒绝申请
// @Summary 拒绝代理申请
// @Tags SubAgent (出庭代理)
// @Produce json
// @Security BearerAuth
// @Param idx path int true "委托 idx"
// @Param targetUserIdx path int true "申请人 idx"
// @Success 200 {object} dto.SubAgentRequestResponse
// @Failure 400 {object} ErrorResponse "not_exist_request"
// @Router /subagent/v1/subagents/{idx}/requests/{targetUserIdx} [delete]
func (ctrl *SubAgentController) Deny(c *gin.Context) {
	idx, ok := paramIdx(c, "idx")
	if !ok {
		return
	}
	targetUserIdx, ok := paramIdx(c, "targetUserIdx")
	if !ok {
		return
	}

	req, err := ctrl.subAgentService.Deny(c.Request.Context(), middleware.CurrentUser(c), idx, targetUserIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubAgentRequestResponse{SubAgentRequest: req})
}
