package model

import "time"

// PrescriptionStatus 处方审核状态
type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "pending"
	PrescriptionApproved PrescriptionStatus = "approved"
	PrescriptionRejected PrescriptionStatus = "rejected"
)

// Prescription 用户上传的处方，由药剂师审核；与订单无自动关联
type Prescription struct {
	ID           string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string             `json:"userId" gorm:"type:varchar(36);index;not null"`
	Image        string             `json:"image" gorm:"type:varchar(512);not null"`
	Status       PrescriptionStatus `json:"status" gorm:"type:varchar(16);not null"`
	PharmacistID *string            `json:"pharmacistId,omitempty" gorm:"type:varchar(36)"`
	Notes        string             `json:"notes,omitempty" gorm:"type:varchar(500)"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (Prescription) TableName() string { return "prescriptions" }
