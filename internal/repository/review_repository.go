package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

type ReviewRepository interface {
	ListByMedicine(ctx context.Context, medicineID string, limit int) ([]*model.Review, error)
	Exists(ctx context.Context, userID, medicineID string) (bool, error)
	// Create 写入评价并在同一事务内重算药品 rating（保留一位小数）与 review_count
	Create(ctx context.Context, review *model.Review) error
}

type reviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) ReviewRepository { return &reviewRepository{db: db} }

func (r *reviewRepository) ListByMedicine(ctx context.Context, medicineID string, limit int) ([]*model.Review, error) {
	var res []*model.Review
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("reviews.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Where("reviews.medicine_id = ?", medicineID).
		Order("reviews.created_at DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *reviewRepository) Exists(ctx context.Context, userID, medicineID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND medicine_id = ?", userID, medicineID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

type ratingAgg struct {
	Cnt int64
	Avg float64
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockMedicine(tx, review.MedicineID); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var agg ratingAgg
		if err := tx.Model(&model.Review{}).
			Select("COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg").
			Where("medicine_id = ?", review.MedicineID).
			Scan(&agg).Error; err != nil {
			return err
		}
		rating, _ := decimal.NewFromFloat(agg.Avg).Round(1).Float64()
		return tx.Model(&model.Medicine{}).
			Where("id = ?", review.MedicineID).
			Updates(map[string]interface{}{"rating": rating, "review_count": agg.Cnt}).Error
	})
}
