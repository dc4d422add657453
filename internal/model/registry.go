package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels 需要自动建表的全部实体
func AllModels() []interface{} {
	return []interface{}{
		// 用户
		&User{}, &UserAuth{}, &LawyerInfo{}, &BankAccount{}, &LawyerAffiliation{},
		// 律所
		&LawFirm{}, &LawFirmJoinRequest{}, &Permission{}, &Group{},
		// 客户 & 案件
		&Customer{}, &Consulting{}, &LawCase{},
		// 复代理
		&SubAgent{}, &SubAgentRequestUser{}, &SubAgentUserNotification{},
		&SubAgentBoard{}, &SubAgentBoardReply{},
	}
}

// joinTable 多对多连接表注册项
type joinTable struct {
	owner interface{}
	field string
	table interface{}
}

var joinTables = []joinTable{
	{&Group{}, "Users", &GroupUser{}},
	{&User{}, "Groups", &GroupUser{}},
	{&LawCase{}, "Users", &LawCaseUser{}},
	{&User{}, "LawCases", &LawCaseUser{}},
	{&LawCase{}, "Customers", &LawCaseCustomer{}},
	{&Customer{}, "LawCases", &LawCaseCustomer{}},
}

// RegisterJoinTables 注册自定义连接表，必须在 AutoMigrate 之前调用
func RegisterJoinTables(db *gorm.DB) error {
	for _, jt := range joinTables {
		if err := db.SetupJoinTable(jt.owner, jt.field, jt.table); err != nil {
			return fmt.Errorf("setup join table %T.%s: %w", jt.owner, jt.field, err)
		}
	}
	return nil
}
