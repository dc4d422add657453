package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/model"
	"law_office_v1/internal/service"
)

// BoardController 社区帖子与回复
// 路径中的 boardType 对修改、删除、回复仅作展示，以帖子自身板块为准
type BoardController struct {
	boardService *service.BoardService
	logger       *zap.Logger
}

func NewBoardController(boardService *service.BoardService, logger *zap.Logger) *BoardController {
	return &BoardController{boardService: boardService, logger: logger}
}

// bindBoardType 解析路径中的板块
func bindBoardType(c *gin.Context) (model.BoardType, bool) {
	var uri dto.BoardURI
	if err := c.ShouldBindUri(&uri); err != nil {
		invalidParameter(c)
		return "", false
	}
	return model.BoardType(uri.BoardType), true
}

// Create 发帖
// @Summary 发帖
// @Description LAWYER / LAWYER_QA 板块仅律师可发帖
// @Tags Board (社区)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块 ALL | ALL_QA | LAWYER | LAWYER_QA"
// @Param request body dto.BoardRequest true "帖子内容"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse "has_not_permission"
// @Router /subagent/v1/boards/{boardType} [post]
func (ctrl *BoardController) Create(c *gin.Context) {
	boardType, ok := bindBoardType(c)
	if !ok {
		return
	}
	var req dto.BoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := ctrl.boardService.Create(c.Request.Context(), middleware.CurrentUser(c), boardType, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Board: board})
}

// List 帖子列表
// @Summary 帖子列表
// @Tags Board (社区)
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param offset query int false "上一页最后一条 idx"
// @Success 200 {object} dto.BoardListResponse
// @Router /subagent/v1/boards/{boardType} [get]
func (ctrl *BoardController) List(c *gin.Context) {
	boardType, ok := bindBoardType(c)
	if !ok {
		return
	}
	var query dto.OffsetQuery
	if !bindQuery(c, &query) {
		return
	}

	boards, err := ctrl.boardService.List(c.Request.Context(), middleware.CurrentUser(c), boardType, query.Offset)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardListResponse{Boards: boards})
}

// Get 帖子详情
// @Summary 帖子详情
// @Tags Board (社区)
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse "not_exist_board"
// @Router /subagent/v1/boards/{boardType}/{boardIdx} [get]
func (ctrl *BoardController) Get(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}

	board, err := ctrl.boardService.Get(c.Request.Context(), middleware.CurrentUser(c), boardIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Board: board})
}

// Update 修改帖子
// @Summary 修改帖子
// @Tags Board (社区)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Param request body dto.BoardRequest true "帖子内容"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse "cannot_remove_board"
// @Router /subagent/v1/boards/{boardType}/{boardIdx} [put]
func (ctrl *BoardController) Update(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}
	var req dto.BoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := ctrl.boardService.Update(c.Request.Context(), middleware.CurrentUser(c), boardIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Board: board})
}

// Remove 删除帖子
// @Summary 删除帖子
// @Tags Board (社区)
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse "cannot_remove_board"
// @Router /subagent/v1/boards/{boardType}/{boardIdx} [delete]
func (ctrl *BoardController) Remove(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}

	board, err := ctrl.boardService.Remove(c.Request.Context(), middleware.CurrentUser(c), boardIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Board: board})
}

// ==================== 回复 ====================

// CreateReply 回复
// @Summary 回复帖子
// @Tags Board (社区)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Param request body dto.ReplyRequest true "回复内容"
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} ErrorResponse "not_exist_board"
// @Router /subagent/v1/boards/{boardType}/{boardIdx}/replies [post]
func (ctrl *BoardController) CreateReply(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := ctrl.boardService.CreateReply(c.Request.Context(), middleware.CurrentUser(c), boardIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReplyResponse{Reply: reply})
}

// ListReplies 回复列表
// @Summary 回复列表
// @Tags Board (社区)
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Param offset query int false "上一页最后一条 idx"
// @Success 200 {object} dto.ReplyListResponse
// @Router /subagent/v1/boards/{boardType}/{boardIdx}/replies [get]
func (ctrl *BoardController) ListReplies(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}
	var query dto.OffsetQuery
	if !bindQuery(c, &query) {
		return
	}

	replies, err := ctrl.boardService.ListReplies(c.Request.Context(), middleware.CurrentUser(c), boardIdx, query.Offset)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReplyListResponse{Replies: replies})
}

// UpdateReply 修改回复
// @Summary 修改回复
// @Tags Board (社区)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Param replyIdx path int true "回复 idx"
// @Param request body dto.ReplyRequest true "回复内容"
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} ErrorResponse "not_exist_reply / cannot_update_reply"
// @Router /subagent/v1/boards/{boardType}/{boardIdx}/replies/{replyIdx} [put]
func (ctrl *BoardController) UpdateReply(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}
	replyIdx, ok := paramIdx(c, "replyIdx")
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := ctrl.boardService.UpdateReply(c.Request.Context(), middleware.CurrentUser(c), boardIdx, replyIdx, &req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReplyResponse{Reply: reply})
}

// RemoveReply 删除回复
// @Summary 删除回复
// @Tags Board (社区)
// @Produce json
// @Security BearerAuth
// @Param boardType path string true "板块"
// @Param boardIdx path int true "帖子 idx"
// @Param replyIdx path int true "回复 idx"
// @Success 200 {object} dto.ReplyResponse
// @Failure 400 {object} ErrorResponse "not_exist_reply / cannot_update_reply"
// @Router /subagent/v1/boards/{boardType}/{boardIdx}/replies/{replyIdx} [delete]
func (ctrl *BoardController) RemoveReply(c *gin.Context) {
	boardIdx, ok := paramIdx(c, "boardIdx")
	if !ok {
		return
	}
	replyIdx, ok := paramIdx(c, "replyIdx")
	if !ok {
		return
	}

	reply, err := ctrl.boardService.RemoveReply(c.Request.Context(), middleware.CurrentUser(c), boardIdx, replyIdx)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReplyResponse{Reply: reply})
}
