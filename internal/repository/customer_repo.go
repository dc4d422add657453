package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"law_office_v1/internal/model"
)

// ==================== CustomerFilter 客户查询条件 ====================

// 客户列表默认值
const (
	DefaultCustomerLimit = 200
)

// 排序键 -> 列名
var customerOrderColumns = map[string]string{
	"idx":                "id",
	"lastConsultingDate": "last_consulting_date",
}

// 过滤键 -> 列名
var customerFilterColumns = map[string]string{
	"idx":         "id",
	"phoneNumber": "phone_number",
	"birthday":    "birthday",
}

// IsCustomerOrderKey 是否为合法排序键
func IsCustomerOrderKey(key string) bool {
	_, ok := customerOrderColumns[key]
	return ok
}

// CustomerFilter 客户列表查询条件
type CustomerFilter struct {
	LawFirmID  int64
	Page       int
	Limit      int
	Order      string // idx | lastConsultingDate
	Reverse    bool
	FilterType string // idx | phoneNumber | birthday
	Target     string
}

// ==================== CustomerRepository 客户仓库 ====================

// CustomerRepository 客户仓库接口
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	UpdateLastConsultingDate(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error)
	DeleteByLawFirm(ctx context.Context, lawFirmID int64) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create 创建客户
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(customer).Error
}

// GetByID 根据 ID 获取客户
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// GetInLawFirm 获取律所内的客户
func (r *customerRepository) GetInLawFirm(ctx context.Context, id, lawFirmID int64) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND law_firm_id = ?", id, lawFirmID).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// Update 更新客户
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(customer).Error
}

// UpdateLastConsultingDate 更新最近咨询时间
func (r *customerRepository) UpdateLastConsultingDate(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Update("last_consulting_date", at).Error
}

// List 客户列表 (含咨询记录)
func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultCustomerLimit
	}
	if filter.Page < 0 {
		filter.Page = 0
	}
	column, ok := customerOrderColumns[filter.Order]
	if !ok {
		column = "id"
	}

	query := r.db.WithContext(ctx).
		Preload("Consultings", func(db *gorm.DB) *gorm.DB {
			return db.Order("consultings.id ASC")
		}).
		Where("law_firm_id = ?", filter.LawFirmID)

	if filterColumn, ok := customerFilterColumns[filter.FilterType]; ok && filter.Target != "" {
		query = query.Where(filterColumn+" = ?", filter.Target)
	}

	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   filter.Reverse,
	})
	if column != "id" {
		query = query.Order("id ASC")
	}

	var customers []model.Customer
	err := query.
		Offset(filter.Page * filter.Limit).
		Limit(filter.Limit).
		Find(&customers).Error
	return customers, err
}

// DeleteByLawFirm 删除律所全部客户及其咨询记录
func (r *customerRepository) DeleteByLawFirm(ctx context.Context, lawFirmID int64) error {
	db := r.db.WithContext(ctx)
	customerIDs := r.db.Model(&model.Customer{}).Select("id").Where("law_firm_id = ?", lawFirmID)

	if err := db.Where("customer_id IN (?)", customerIDs).Delete(&model.Consulting{}).Error; err != nil {
		return err
	}
	if err := db.Where("customer_id IN (?)", customerIDs).Delete(&model.LawCaseCustomer{}).Error; err != nil {
		return err
	}
	return db.Where("law_firm_id = ?", lawFirmID).Delete(&model.Customer{}).Error
}

// ==================== ConsultingRepository 咨询记录仓库 ====================

// ConsultingRepository 咨询记录仓库接口
type ConsultingRepository interface {
	Create(ctx context.Context, consulting *model.Consulting) error
	GetByCustomer(ctx context.Context, id, customerID int64) (*model.Consulting, error)
	Update(ctx context.Context, consulting *model.Consulting) error
}

type consultingRepository struct {
	db *gorm.DB
}

// NewConsultingRepository 创建咨询记录仓库
func NewConsultingRepository(db *gorm.DB) ConsultingRepository {
	return &consultingRepository{db: db}
}

// Create 创建咨询记录
func (r *consultingRepository) Create(ctx context.Context, consulting *model.Consulting) error {
	return r.db.WithContext(ctx).Create(consulting).Error
}

// GetByCustomer 获取指定客户的咨询记录
func (r *consultingRepository) GetByCustomer(ctx context.Context, id, customerID int64) (*model.Consulting, error) {
	var consulting model.Consulting
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&consulting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &consulting, err
}

// Update 更新咨询记录
func (r *consultingRepository) Update(ctx context.Context, consulting *model.Consulting) error {
	return r.db.WithContext(ctx).Save(consulting).Error
}
