package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/service"
)

type CustomerController struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerController(customerService *service.CustomerService, logger *zap.Logger) *CustomerController {
	return &CustomerController{customerService: customerService, logger: logger}
}

// Create 新建客户
// @Summary 新建客户
// @Tags Customer (客户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CustomerRequest true "客户信息"
// @Success 200 {object} dto.CustomerResponse
// @Router /v1/lawfirms/customers [post]
func (ctrl *CustomerController) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := ctrl.customerService.Create(c.Request.Context(), middleware.CurrentLawFirm(c), &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerResponse{Customer: customer})
}

// List 客户列表
// @Summary 客户列表 (含咨询记录)
// @Tags Customer (客户)
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码 (默认0)"
// @Param order query string false "排序键 idx | lastConsultingDate"
// @Param reverse query bool false "倒序"
// @Param limit query int false "每页数量 (默认200)"
// @Param type query string false "过滤键 idx | phoneNumber | birthday"
// @Param target query string false "过滤值"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 400 {object} ErrorResponse "invalid_order_key"
// @Router /v1/lawfirms/customers [get]
func (ctrl *CustomerController) List(c *gin.Context) {
	var query dto.CustomerListQuery
	if !bindQuery(c, &query) {
		return
	}

	customers, err := ctrl.customerService.List(c.Request.Context(), middleware.CurrentLawFirm(c), &query)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerListResponse{Customers: customers})
}

// Update 修改客户
// @Summary 修改客户
// @Tags Customer (客户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerIdx path int true "客户 idx"
// @Param request body dto.CustomerRequest true "修改内容"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse "not_exist_customer / has_not_auth"
// @Router /v1/lawfirms/customers/{customerIdx} [put]
func (ctrl *CustomerController) Update(c *gin.Context) {
	customerIdx, ok := paramIdx(c, "customerIdx")
	if !ok {
		return
	}
	var req dto.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := ctrl.customerService.Update(c.Request.Context(), middleware.CurrentLawFirm(c), customerIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerResponse{Customer: customer})
}

// CreateConsulting 新建咨询记录
// @Summary 新建咨询记录
// @Tags Customer (客户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerIdx path int true "客户 idx"
// @Param request body dto.ConsultingRequest true "咨询内容"
// @Success 200 {object} dto.ConsultingResponse
// @Failure 400 {object} ErrorResponse "not_exist_customer"
// @Router /v1/lawfirms/customers/{customerIdx}/consultings [post]
func (ctrl *CustomerController) CreateConsulting(c *gin.Context) {
	customerIdx, ok := paramIdx(c, "customerIdx")
	if !ok {
		return
	}
	var req dto.ConsultingRequest
	if !bindJSON(c, &req) {
		return
	}

	consulting, err := ctrl.customerService.CreateConsulting(c.Request.Context(), middleware.CurrentLawFirm(c), customerIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConsultingResponse{Consulting: consulting})
}

// UpdateConsulting 修改咨询记录
// @Summary 修改咨询记录
// @Tags Customer (客户)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerIdx path int true "客户 idx"
// @Param consultingIdx path int true "咨询记录 idx"
// @Param request body dto.ConsultingRequest true "修改内容"
// @Success 200 {object} dto.ConsultingResponse
// @Failure 400 {object} ErrorResponse "not_exist_consulting"
// @Router /v1/lawfirms/customers/{customerIdx}/consultings/{consultingIdx} [put]
func (ctrl *CustomerController) UpdateConsulting(c *gin.Context) {
	customerIdx, ok := paramIdx(c, "customerIdx")
	if !ok {
		return
	}
	consultingIdx, ok := paramIdx(c, "consultingIdx")
	if !ok {
		return
	}
	var req dto.ConsultingRequest
	if !bindJSON(c, &req) {
		return
	}

	consulting, err := ctrl.customerService.UpdateConsulting(c.Request.Context(), middleware.CurrentLawFirm(c), customerIdx, consultingIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConsultingResponse{Consulting: consulting})
}
