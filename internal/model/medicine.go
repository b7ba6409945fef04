package model

import (
	"time"

	"gorm.io/gorm"
)

// Medicine 药品
// InStock 不落库，读取时由 StockQuantity > 0 推导
type Medicine struct {
	ID                string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string   `json:"name" gorm:"type:varchar(200);not null;index"`
	Description       string   `json:"description" gorm:"type:text"`
	Price             float64  `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice     *float64 `json:"originalPrice,omitempty" gorm:"type:decimal(10,2)"`
	Image             string   `json:"image" gorm:"type:varchar(255)"`
	CategoryID        string   `json:"categoryId" gorm:"type:varchar(36);index"`
	StockQuantity     int      `json:"stockQuantity" gorm:"not null;check:stock_quantity >= 0"`
	Prescription      bool     `json:"prescription" gorm:"not null"`
	ActiveIngredient  string   `json:"activeIngredient" gorm:"type:varchar(200)"`
	Dosage            string   `json:"dosage" gorm:"type:varchar(64)"`
	Manufacturer      string   `json:"manufacturer" gorm:"type:varchar(128)"`
	ExpiryDate        string   `json:"expiryDate" gorm:"type:varchar(10)"`
	BatchNumber       string   `json:"batchNumber" gorm:"type:varchar(32)"`
	Rating            float64  `json:"rating" gorm:"type:decimal(3,1);not null"`
	ReviewCount       int      `json:"reviewCount" gorm:"not null"`
	SideEffects       string   `json:"sideEffects,omitempty" gorm:"type:text"`
	Contraindications string   `json:"contraindications,omitempty" gorm:"type:text"`
	IsActive          bool     `json:"isActive" gorm:"not null;index"`
	// 复合索引：全量列表默认按 created_at DESC
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	InStock      bool   `json:"inStock" gorm:"-"`
	CategoryName string `json:"categoryName,omitempty" gorm:"->;-:migration"`
}

func (Medicine) TableName() string { return "medicines" }

// AfterFind 填充派生字段
func (m *Medicine) AfterFind(*gorm.DB) error {
	m.InStock = m.StockQuantity > 0
	return nil
}
