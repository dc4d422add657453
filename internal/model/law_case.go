package model

// LawCaseStatus 案件状态
type LawCaseStatus string

const (
	LawCaseStatusWaiting   LawCaseStatus = "WAITING"
	LawCaseStatusOngoing   LawCaseStatus = "ONGOING"
	LawCaseStatusCompleted LawCaseStatus = "COMPLETED"
	LawCaseStatusDeleted   LawCaseStatus = "DELETED"
)

// IsValid 校验案件状态
func (s LawCaseStatus) IsValid() bool {
	switch s {
	case LawCaseStatusWaiting, LawCaseStatusOngoing, LawCaseStatusCompleted, LawCaseStatusDeleted:
		return true
	}
	return false
}

// LawCase 案件
type LawCase struct {
	BaseModel
	Title       string        `gorm:"size:255" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	LawStatus   LawCaseStatus `gorm:"size:16;not null" json:"lawStatus"`
	LawFirmID   int64         `gorm:"index;not null" json:"-"`

	Users     []User     `gorm:"many2many:law_case_users;" json:"users,omitempty"`
	Customers []Customer `gorm:"many2many:law_case_customers;" json:"customers,omitempty"`
}

func (LawCase) TableName() string {
	return "law_cases"
}

// NewLawCase 构造案件
func NewLawCase(lawFirmID int64, title, description string) *LawCase {
	return &LawCase{
		Title:       title,
		Description: description,
		LawStatus:   LawCaseStatusWaiting,
		LawFirmID:   lawFirmID,
	}
}

// LawCaseUser 案件负责人 (law_case_users 连接表)
type LawCaseUser struct {
	LawCaseID int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey;index"`
}

func (LawCaseUser) TableName() string {
	return "law_case_users"
}

// LawCaseCustomer 案件关联客户 (law_case_customers 连接表)
type LawCaseCustomer struct {
	LawCaseID  int64 `gorm:"primaryKey"`
	CustomerID int64 `gorm:"primaryKey;index"`
}

func (LawCaseCustomer) TableName() string {
	return "law_case_customers"
}
