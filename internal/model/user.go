package model

import "time"

// Role 用户角色
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RolePharmacist Role = "pharmacist"
)

// User 用户；注册即视为已验证（无邮件验证流程）
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email      string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Phone      string    `json:"phone,omitempty" gorm:"type:varchar(32)"`
	Address    string    `json:"address,omitempty" gorm:"type:varchar(255)"`
	Role       Role      `json:"role" gorm:"type:varchar(16);not null"`
	IsVerified bool      `json:"isVerified" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }
