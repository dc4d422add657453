package service

import (
	"context"

	"gorm.io/datatypes"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/pkg/sanitize"
)

// ==================== BoardService 社区服务 ====================

// BoardService 帖子与回复
// 律师板块仅律师可发帖、回复、查看
type BoardService struct {
	uow *repository.UnitOfWork
}

// NewBoardService 创建社区服务
func NewBoardService(uow *repository.UnitOfWork) *BoardService {
	return &BoardService{uow: uow}
}

// checkBoardAccess 职员不能访问律师板块
func checkBoardAccess(user *model.User, boardType model.BoardType) error {
	if !boardType.IsValid() {
		return ErrInvalidBoardType
	}
	if boardType.LawyerOnly() && !user.IsLawyer() {
		return ErrHasNotPermission
	}
	return nil
}

// Create 发帖
func (s *BoardService) Create(ctx context.Context, user *model.User, boardType model.BoardType, req *dto.BoardRequest) (*model.SubAgentBoard, error) {
	if err := checkBoardAccess(user, boardType); err != nil {
		return nil, err
	}

	board := &model.SubAgentBoard{
		BoardType:   boardType,
		Title:       sanitize.Text(req.Title),
		Content:     sanitize.HTML(req.Content),
		Images:      datatypes.NewJSONSlice(sanitize.URLs(req.Images)),
		IsAnonymous: req.Anonymous(),
		WriteUserID: user.ID,
	}
	if err := s.uow.Boards.Create(ctx, board); err != nil {
		return nil, err
	}
	board.WriteUser = user
	return board.PresentFor(user.ID), nil
}

// Get 帖子详情
func (s *BoardService) Get(ctx context.Context, user *model.User, boardIdx int64) (*model.SubAgentBoard, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}
	return board.PresentFor(user.ID), nil
}

// Update 修改本人的帖子
func (s *BoardService) Update(ctx context.Context, user *model.User, boardIdx int64, req *dto.BoardRequest) (*model.SubAgentBoard, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}
	if board.WriteUserID != user.ID {
		return nil, ErrCannotRemoveBoard
	}

	board.Title = sanitize.Text(req.Title)
	board.Content = sanitize.HTML(req.Content)
	board.Images = datatypes.NewJSONSlice(sanitize.URLs(req.Images))
	if err := s.uow.Boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board.PresentFor(user.ID), nil
}

// Remove 删除本人的帖子，回复一并删除
func (s *BoardService) Remove(ctx context.Context, user *model.User, boardIdx int64) (*model.SubAgentBoard, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}
	if board.WriteUserID != user.ID {
		return nil, ErrCannotRemoveBoard
	}

	if err := s.uow.Boards.Delete(ctx, board.ID); err != nil {
		return nil, err
	}
	return board.PresentFor(user.ID), nil
}

// List 板块帖子列表
func (s *BoardService) List(ctx context.Context, user *model.User, boardType model.BoardType, offsetIdx int64) ([]model.SubAgentBoard, error) {
	if err := checkBoardAccess(user, boardType); err != nil {
		return nil, err
	}

	boards, err := s.uow.Boards.List(ctx, boardType, offsetIdx)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		boards[i].PresentFor(user.ID)
	}
	return boards, nil
}

// getBoard 获取帖子并校验板块权限
func (s *BoardService) getBoard(ctx context.Context, user *model.User, boardIdx int64) (*model.SubAgentBoard, error) {
	board, err := s.uow.Boards.GetByID(ctx, boardIdx)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotExistBoard
	}
	if err := checkBoardAccess(user, board.BoardType); err != nil {
		return nil, err
	}
	return board, nil
}

// ==================== 回复 ====================

// CreateReply 回复帖子
func (s *BoardService) CreateReply(ctx context.Context, user *model.User, boardIdx int64, req *dto.ReplyRequest) (*model.SubAgentBoardReply, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}

	reply := &model.SubAgentBoardReply{
		Content:     sanitize.HTML(req.Content),
		IsAnonymous: req.Anonymous(),
		BoardID:     board.ID,
		WriteUserID: user.ID,
	}
	if err := s.uow.Replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	reply.WriteUser = user
	return reply.PresentFor(user.ID), nil
}

// UpdateReply 修改本人的回复
func (s *BoardService) UpdateReply(ctx context.Context, user *model.User, boardIdx, replyIdx int64, req *dto.ReplyRequest) (*model.SubAgentBoardReply, error) {
	reply, err := s.getOwnReply(ctx, user, boardIdx, replyIdx)
	if err != nil {
		return nil, err
	}

	reply.Content = sanitize.HTML(req.Content)
	if err := s.uow.Replies.Update(ctx, reply); err != nil {
		return nil, err
	}
	return reply.PresentFor(user.ID), nil
}

// RemoveReply 删除本人的回复
func (s *BoardService) RemoveReply(ctx context.Context, user *model.User, boardIdx, replyIdx int64) (*model.SubAgentBoardReply, error) {
	reply, err := s.getOwnReply(ctx, user, boardIdx, replyIdx)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Replies.Delete(ctx, reply.ID); err != nil {
		return nil, err
	}
	return reply.PresentFor(user.ID), nil
}

// ListReplies 帖子回复列表
func (s *BoardService) ListReplies(ctx context.Context, user *model.User, boardIdx, offsetIdx int64) ([]model.SubAgentBoardReply, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}

	replies, err := s.uow.Replies.List(ctx, board.ID, offsetIdx)
	if err != nil {
		return nil, err
	}
	for i := range replies {
		replies[i].PresentFor(user.ID)
	}
	return replies, nil
}

// getOwnReply 获取本人的回复
func (s *BoardService) getOwnReply(ctx context.Context, user *model.User, boardIdx, replyIdx int64) (*model.SubAgentBoardReply, error) {
	board, err := s.getBoard(ctx, user, boardIdx)
	if err != nil {
		return nil, err
	}

	reply, err := s.uow.Replies.GetInBoard(ctx, replyIdx, board.ID)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, ErrNotExistReply
	}
	if reply.WriteUserID != user.ID {
		return nil, ErrCannotUpdateReply
	}
	return reply, nil
}
