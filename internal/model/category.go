package model

import "time"

// Category 药品分类（种子数据，极少变更）
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image" gorm:"type:varchar(255)"`
	IsActive    bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// MedicineCount 只读聚合列：该分类下上架药品数
	MedicineCount int64 `json:"medicineCount" gorm:"->;-:migration"`
}

func (Category) TableName() string { return "categories" }
