package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
	GetActive(ctx context.Context, id string) (*model.Category, error)
	// Upsert 按主键幂等写入（种子数据）
	Upsert(ctx context.Context, categories []*model.Category) error
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

// 只统计上架药品
const medicineCountSelect = "categories.*, (SELECT COUNT(*) FROM medicines m WHERE m.category_id = categories.id AND m.is_active = ?) AS medicine_count"

func (r *categoryRepository) ListActive(ctx context.Context) ([]*model.Category, error) {
	var res []*model.Category
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select(medicineCountSelect, true).
		Where("categories.is_active = ?", true).
		Order("categories.name ASC").
		Find(&res).Error
	return res, err
}

func (r *categoryRepository) GetActive(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select(medicineCountSelect, true).
		Where("categories.id = ? AND categories.is_active = ?", id, true).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Upsert(ctx context.Context, categories []*model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "image", "is_active", "updated_at"}),
	}).Create(&categories).Error
}
