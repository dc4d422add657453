package model

import "time"

// Customer 律所客户
type Customer struct {
	BaseModel
	Name        string `gorm:"size:64;not null" json:"name"`
	Email       string `gorm:"size:128" json:"email"`
	Birthday    string `gorm:"size:16;index" json:"birthday"`
	PhoneNumber string `gorm:"size:32;index" json:"phoneNumber"`
	Sex         string `gorm:"size:8" json:"sex"`
	Country     string `gorm:"size:64" json:"country"`
	Description string `gorm:"type:text" json:"description"`

	LawFirmID          int64      `gorm:"index;not null" json:"-"`
	LastConsultingDate *time.Time `json:"lastConsultingDate"`

	Consultings []Consulting `gorm:"foreignKey:CustomerID" json:"consultings,omitempty"`
	LawCases    []LawCase    `gorm:"many2many:law_case_customers;" json:"lawCases,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Consulting 咨询记录
type Consulting struct {
	BaseModel
	Title         string `gorm:"size:255" json:"title"`
	ContentFormat string `gorm:"size:32" json:"contentFormat"`
	Content       string `gorm:"type:text" json:"content"`
	Uniqueness    string `gorm:"type:text" json:"uniqueness"`
	CustomerID    int64  `gorm:"index;not null" json:"-"`
}

func (Consulting) TableName() string {
	return "consultings"
}
