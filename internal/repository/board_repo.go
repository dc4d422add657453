package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ReplyPageSize 回复一次最多返回条数
const ReplyPageSize = 2000

// ==================== BoardRepository 帖子仓库 ====================

// BoardRepository 帖子仓库接口
type BoardRepository interface {
	Create(ctx context.Context, board *model.SubAgentBoard) error
	GetByID(ctx context.Context, id int64) (*model.SubAgentBoard, error)
	Update(ctx context.Context, board *model.SubAgentBoard) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, boardType model.BoardType, offsetIdx int64) ([]model.SubAgentBoard, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository 创建帖子仓库
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

// Create 发帖
func (r *boardRepository) Create(ctx context.Context, board *model.SubAgentBoard) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

// GetByID 获取帖子 (含作者)
func (r *boardRepository) GetByID(ctx context.Context, id int64) (*model.SubAgentBoard, error) {
	var board model.SubAgentBoard
	err := r.db.WithContext(ctx).Preload("WriteUser").First(&board, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &board, err
}

// Update 更新标题、内容、图片
func (r *boardRepository) Update(ctx context.Context, board *model.SubAgentBoard) error {
	return r.db.WithContext(ctx).
		Model(board).
		Select("title", "content", "images").
		Updates(board).Error
}

// Delete 删除帖子及其回复
func (r *boardRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("board_id = ?", id).Delete(&model.SubAgentBoardReply{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.SubAgentBoard{}, id).Error
}

// List 板块帖子列表，每页 SubAgentPageSize 条，按 id 倒序
func (r *boardRepository) List(ctx context.Context, boardType model.BoardType, offsetIdx int64) ([]model.SubAgentBoard, error) {
	query := r.db.WithContext(ctx).
		Preload("WriteUser").
		Where("board_type = ?", boardType)
	if offsetIdx > 0 {
		query = query.Where("id < ?", offsetIdx)
	}

	var boards []model.SubAgentBoard
	err := query.Order("id DESC").Limit(SubAgentPageSize).Find(&boards).Error
	return boards, err
}

// ==================== ReplyRepository 回复仓库 ====================

// ReplyRepository 回复仓库接口
type ReplyRepository interface {
	Create(ctx context.Context, reply *model.SubAgentBoardReply) error
	GetInBoard(ctx context.Context, id, boardID int64) (*model.SubAgentBoardReply, error)
	Update(ctx context.Context, reply *model.SubAgentBoardReply) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, boardID, offsetIdx int64) ([]model.SubAgentBoardReply, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository 创建回复仓库
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

// Create 回复
func (r *replyRepository) Create(ctx context.Context, reply *model.SubAgentBoardReply) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error
}

// GetInBoard 获取帖子下的回复
func (r *replyRepository) GetInBoard(ctx context.Context, id, boardID int64) (*model.SubAgentBoardReply, error) {
	var reply model.SubAgentBoardReply
	err := r.db.WithContext(ctx).
		Preload("WriteUser").
		Where("id = ? AND board_id = ?", id, boardID).
		First(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reply, err
}

// Update 更新回复内容
func (r *replyRepository) Update(ctx context.Context, reply *model.SubAgentBoardReply) error {
	return r.db.WithContext(ctx).
		Model(reply).
		Select("content").
		Updates(reply).Error
}

// Delete 删除回复
func (r *replyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SubAgentBoardReply{}, id).Error
}

// List 回复列表，最多 ReplyPageSize 条，按 id 正序
func (r *replyRepository) List(ctx context.Context, boardID, offsetIdx int64) ([]model.SubAgentBoardReply, error) {
	query := r.db.WithContext(ctx).
		Preload("WriteUser").
		Where("board_id = ?", boardID)
	if offsetIdx > 0 {
		query = query.Where("id > ?", offsetIdx)
	}

	var replies []model.SubAgentBoardReply
	err := query.Order("id ASC").Limit(ReplyPageSize).Find(&replies).Error
	return replies, err
}
