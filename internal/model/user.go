package model

// ==================== 用户类型 ====================

// UserType 用户类型
type UserType string

const (
	UserTypeLawyer   UserType = "LAWYER"   // 律师
	UserTypeEmployee UserType = "EMPLOYEE" // 职员
)

// IsValid 校验用户类型
func (t UserType) IsValid() bool {
	return t == UserTypeLawyer || t == UserTypeEmployee
}

// AuthType 登录方式
type AuthType string

const (
	AuthTypeNormal         AuthType = "NORMAL"
	AuthTypeEmail          AuthType = "EMAIL"
	AuthTypeProviderGoogle AuthType = "PROVIDER_GOOGLE"
	AuthTypeProviderKakao  AuthType = "PROVIDER_KAKAO"
	AuthTypeProviderNaver  AuthType = "PROVIDER_NAVER"
)

// IsValid 校验登录方式
func (t AuthType) IsValid() bool {
	switch t {
	case AuthTypeNormal, AuthTypeEmail, AuthTypeProviderGoogle, AuthTypeProviderKakao, AuthTypeProviderNaver:
		return true
	}
	return false
}

// ==================== 用户 ====================

// User 用户
// LawFirmID 是租户归属的唯一依据，Groups 必须与之保持一致
type User struct {
	BaseModel
	Type        UserType `gorm:"size:16;not null;index" json:"type"`
	Name        string   `gorm:"size:64" json:"name"`
	Email       string   `gorm:"size:128" json:"email"`
	Birthday    string   `gorm:"size:16" json:"birthday"`
	PhoneNumber string   `gorm:"size:32" json:"phoneNumber"`

	// 所属律所 (可为空)
	LawFirmID *int64   `gorm:"index" json:"-"`
	LawFirm   *LawFirm `gorm:"foreignKey:LawFirmID" json:"lawFirm,omitempty"`

	// 个人资料
	BankAccountID       *int64             `json:"-"`
	BankAccount         *BankAccount       `gorm:"foreignKey:BankAccountID" json:"bankAccount,omitempty"`
	LawyerAffiliationID *int64             `json:"-"`
	LawyerAffiliation   *LawyerAffiliation `gorm:"foreignKey:LawyerAffiliationID" json:"lawyerAffiliation,omitempty"`
	LawyerInfo          *LawyerInfo        `gorm:"foreignKey:UserID" json:"lawyerInfo,omitempty"`

	Auths    []UserAuth `gorm:"foreignKey:UserID" json:"-"`
	Groups   []Group    `gorm:"many2many:group_users;" json:"groups,omitempty"`
	LawCases []LawCase  `gorm:"many2many:law_case_users;" json:"lawCases,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsLawyer 是否律师
func (u *User) IsLawyer() bool {
	return u.Type == UserTypeLawyer
}

// BelongsTo 是否属于指定律所
func (u *User) BelongsTo(lawFirmID int64) bool {
	return u.LawFirmID != nil && *u.LawFirmID == lawFirmID
}

// ==================== 登录凭证 ====================

// UserAuth 登录凭证，(LoginID, Type) 唯一
type UserAuth struct {
	BaseModel
	Type     AuthType `gorm:"size:32;not null;uniqueIndex:idx_user_auth_login" json:"type"`
	LoginID  string   `gorm:"size:128;not null;uniqueIndex:idx_user_auth_login" json:"id"`
	Password string   `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	UserID   int64    `gorm:"index;not null" json:"-"`
	User     *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (UserAuth) TableName() string {
	return "user_auths"
}

// NewUserAuth 构造登录凭证，hashedPassword 必须已经过哈希
func NewUserAuth(authType AuthType, loginID, hashedPassword string) *UserAuth {
	return &UserAuth{
		Type:     authType,
		LoginID:  loginID,
		Password: hashedPassword,
	}
}

// LawyerInfo 律师执业信息
type LawyerInfo struct {
	BaseModel
	SerialNumber   string `gorm:"size:64;index" json:"serialNumber"`
	IssueNumber    string `gorm:"size:64;uniqueIndex" json:"issueNumber"`
	IsVerification bool   `json:"isVerification"`
	UserID         int64  `gorm:"uniqueIndex" json:"-"`
}

func (LawyerInfo) TableName() string {
	return "lawyer_infos"
}

// BankAccount 收款账户
type BankAccount struct {
	BaseModel
	Info string `gorm:"size:255" json:"info"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

// LawyerAffiliation 所属律师协会
type LawyerAffiliation struct {
	BaseModel
	AffiliationOffice string `gorm:"size:128" json:"affiliationOffice"`
	AffiliationBranch string `gorm:"size:128" json:"affiliationBranch"`
}

func (LawyerAffiliation) TableName() string {
	return "lawyer_affiliations"
}
