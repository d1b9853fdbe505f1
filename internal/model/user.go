package model

import "time"

// 用户角色
const (
	UserTypeUser     = "user"     // 普通用户
	UserTypeMerchant = "merchant" // 商家
	UserTypeCustomer = "customer" // 外部账号首登创建的顾客
)

// User 用户
type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希
	Email    string `gorm:"size:100"`
	UserType string `gorm:"size:20;default:'user'"`
	Avatar   string `gorm:"size:255"`
	Address  string `gorm:"size:255"`

	LastLogin *time.Time

	// 华为账号关联字段，存在时唯一
	HuaweiOpenID  *string `gorm:"size:100;uniqueIndex"`
	HuaweiUnionID *string `gorm:"size:100"`
}

func (User) TableName() string { return "users" }
