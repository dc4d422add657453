package model

import (
	"gorm.io/datatypes"
)

// BoardType 板块
type BoardType string

const (
	BoardTypeAll      BoardType = "ALL"
	BoardTypeAllQA    BoardType = "ALL_QA"
	BoardTypeLawyer   BoardType = "LAWYER"
	BoardTypeLawyerQA BoardType = "LAWYER_QA"
)

// IsValid 校验板块
func (t BoardType) IsValid() bool {
	switch t {
	case BoardTypeAll, BoardTypeAllQA, BoardTypeLawyer, BoardTypeLawyerQA:
		return true
	}
	return false
}

// LawyerOnly 仅律师可访问的板块
func (t BoardType) LawyerOnly() bool {
	return t == BoardTypeLawyer || t == BoardTypeLawyerQA
}

// SubAgentBoard 社区帖子
type SubAgentBoard struct {
	BaseModel
	BoardType   BoardType                   `gorm:"size:16;not null;index" json:"boardType"`
	Title       string                      `gorm:"size:255" json:"title"`
	Content     string                      `gorm:"type:text" json:"content"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	IsAnonymous bool                        `json:"isAnonymous"`

	WriteUserID int64 `gorm:"index;not null" json:"-"`
	WriteUser   *User `gorm:"foreignKey:WriteUserID" json:"writeUser"`

	IsMyBoard bool `gorm:"-" json:"isMyBoard"`
}

func (SubAgentBoard) TableName() string {
	return "sub_agent_boards"
}

// PresentFor 按查看者填充 isMyBoard，匿名帖隐藏作者
func (b *SubAgentBoard) PresentFor(viewerID int64) *SubAgentBoard {
	b.IsMyBoard = b.WriteUserID == viewerID
	if b.IsAnonymous {
		b.WriteUser = nil
	}
	if b.Images == nil {
		b.Images = datatypes.NewJSONSlice([]string{})
	}
	return b
}

// SubAgentBoardReply 帖子回复
type SubAgentBoardReply struct {
	BaseModel
	Content     string `gorm:"type:text" json:"content"`
	IsAnonymous bool   `json:"isAnonymous"`
	BoardID     int64  `gorm:"index;not null" json:"-"`

	WriteUserID int64 `gorm:"index;not null" json:"-"`
	WriteUser   *User `gorm:"foreignKey:WriteUserID" json:"writeUser"`

	IsMyReply bool `gorm:"-" json:"isMyReply"`
}

func (SubAgentBoardReply) TableName() string {
	return "sub_agent_board_replies"
}

// PresentFor 按查看者填充 isMyReply，匿名回复隐藏作者
func (r *SubAgentBoardReply) PresentFor(viewerID int64) *SubAgentBoardReply {
	r.IsMyReply = r.WriteUserID == viewerID
	if r.IsAnonymous {
		r.WriteUser = nil
	}
	return r
}
