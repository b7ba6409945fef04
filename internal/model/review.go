package model

import "time"

// Review 药品评价；每个用户对同一药品仅一条
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:ux_review_user_medicine"`
	MedicineID string    `json:"medicineId" gorm:"type:varchar(36);not null;uniqueIndex:ux_review_user_medicine;index:idx_review_medicine"`
	Rating     int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment    string    `json:"comment,omitempty" gorm:"type:varchar(1000)"`
	CreatedAt  time.Time `json:"createdAt"`

	UserName string `json:"userName,omitempty" gorm:"->;-:migration"`
}

func (Review) TableName() string { return "reviews" }
