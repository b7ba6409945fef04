package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	ListByUser(ctx context.Context, userID string) ([]*model.Prescription, error)
	GetByID(ctx context.Context, id string) (*model.Prescription, error)
	// Review 仅当处方仍为 pending 时更新，否则返回 ErrStateChanged
	Review(ctx context.Context, id string, status model.PrescriptionStatus, pharmacistID, notes string) error
}

type prescriptionRepository struct{ db *gorm.DB }

func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prescriptionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Prescription, error) {
	var res []*model.Prescription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id string) (*model.Prescription, error) {
	var p model.Prescription
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prescriptionRepository) Review(ctx context.Context, id string, status model.PrescriptionStatus, pharmacistID, notes string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Prescription{}).
		Where("id = ? AND status = ?", id, model.PrescriptionPending).
		Updates(map[string]interface{}{
			"status":        status,
			"pharmacist_id": pharmacistID,
			"notes":         notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateChanged
	}
	return nil
}
