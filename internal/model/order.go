package model

import (
	"time"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod 支付方式（仅记录，不接入支付网关）
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order 订单模型；TotalAmount 为下单时快照
type Order struct {
	ID                string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string        `json:"userId" gorm:"type:varchar(36);index:idx_order_user_created;not null"`
	Status            OrderStatus   `json:"status" gorm:"type:varchar(16);index;not null"`
	TotalAmount       float64       `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	ShippingAddress   string        `json:"shippingAddress" gorm:"type:varchar(255);not null"`
	PaymentMethod     PaymentMethod `json:"paymentMethod" gorm:"type:varchar(8);not null"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" gorm:"type:varchar(16);not null"`
	PrescriptionImage string        `json:"prescriptionImage,omitempty" gorm:"type:varchar(512)"`
	Notes             string        `json:"notes,omitempty" gorm:"type:varchar(500)"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"index:idx_order_user_created"`
	UpdatedAt         time.Time     `json:"updatedAt"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行；Price 为下单时价格快照，不随药品调价变化
type OrderItem struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string    `json:"orderId" gorm:"type:varchar(36);index;not null"`
	MedicineID string    `json:"medicineId" gorm:"type:varchar(36);not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Price      float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time `json:"createdAt"`

	// 展示用只读列（JOIN medicines）
	Name             string `json:"name,omitempty" gorm:"->;-:migration"`
	Image            string `json:"image,omitempty" gorm:"->;-:migration"`
	ActiveIngredient string `json:"activeIngredient,omitempty" gorm:"->;-:migration"`
	Dosage           string `json:"dosage,omitempty" gorm:"->;-:migration"`
}

func (OrderItem) TableName() string { return "order_items" }
