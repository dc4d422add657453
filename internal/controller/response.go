package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/service"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error" example:"has_not_permission"`
}

const errInternal = "internal_error"

// respondError 业务错误返回错误码，其余错误记录日志后返回 500
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := http.StatusBadRequest
		switch svcErr {
		case service.ErrInvalidAuth:
			status = http.StatusUnauthorized
		case service.ErrTooManyRequests:
			status = http.StatusTooManyRequests
		}
		c.JSON(status, ErrorResponse{Error: svcErr.Code})
		return
	}

	logger.Error("请求处理失败",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errInternal})
}

// invalidParameter 参数绑定失败
func invalidParameter(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: service.ErrInvalidParameter.Code})
}

// bindJSON 绑定请求体，失败时已写入响应
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		invalidParameter(c)
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时已写入响应
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		invalidParameter(c)
		return false
	}
	return true
}

// paramIdx 解析路径中的 idx 参数
func paramIdx(c *gin.Context, name string) (int64, bool) {
	idx, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || idx <= 0 {
		invalidParameter(c)
		return 0, false
	}
	return idx, true
}
