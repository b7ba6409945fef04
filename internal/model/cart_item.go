package model

import "time"

// CartItem 购物车行；(user_id, medicine_id) 唯一
type CartItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:ux_cart_user_medicine"`
	MedicineID string    `json:"medicineId" gorm:"type:varchar(36);not null;uniqueIndex:ux_cart_user_medicine"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (CartItem) TableName() string { return "cart" }

// CartLine 购物车行 + 药品当前信息（JOIN 结果，不建表）
type CartLine struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	MedicineID    string    `json:"medicineId"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Image         string    `json:"image"`
	StockQuantity int       `json:"stockQuantity"`
	Prescription  bool      `json:"prescription"`
	InStock       bool      `json:"inStock" gorm:"-"`
}
