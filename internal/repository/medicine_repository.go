package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

// 排序方式
const (
	SortDefault = ""
	SortName    = "name"
	SortPrice   = "price"
	SortRating  = "rating"
	SortNewest  = "newest"
)

// MedicineFilter 药品列表查询条件；只会返回 is_active = true 的记录
type MedicineFilter struct {
	CategoryID   string
	Search       string
	Prescription *bool
	InStock      *bool
	SortBy       string
	// FallbackSort 未指定 SortBy 时使用
	FallbackSort string
	Offset       int
	Limit        int
}

type MedicineRepository interface {
	List(ctx context.Context, f MedicineFilter) ([]*model.Medicine, int64, error)
	GetActive(ctx context.Context, id string) (*model.Medicine, error)
	Featured(ctx context.Context, limit int) ([]*model.Medicine, error)
	// Search 名称前缀命中优先，其次评分降序
	Search(ctx context.Context, q string, limit int) ([]*model.Medicine, error)
	Create(ctx context.Context, m *model.Medicine) error
	// Upsert 种子数据：已存在则保留线上库存与评分
	Upsert(ctx context.Context, medicines []*model.Medicine) error
	// Stock 返回当前库存，压测与测试使用
	Stock(ctx context.Context, id string) (int, error)
}

type medicineRepository struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepository{db: db} }

func (r *medicineRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Medicine{}).
		Select("medicines.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = medicines.category_id")
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likeEscape 转义 LIKE 通配符，SQL 中须带 ESCAPE '!'
func likeEscape(s string) string { return likeEscaper.Replace(strings.ToLower(s)) }

func likePattern(s string) string { return "%" + likeEscape(s) + "%" }

const searchClause = "(LOWER(medicines.name) LIKE ? ESCAPE '!' OR LOWER(medicines.description) LIKE ? ESCAPE '!' OR LOWER(medicines.active_ingredient) LIKE ? ESCAPE '!')"

func (r *medicineRepository) List(ctx context.Context, f MedicineFilter) ([]*model.Medicine, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Medicine{}).Where("medicines.is_active = ?", true)
	if f.CategoryID != "" {
		q = q.Where("medicines.category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(searchClause, p, p, p)
	}
	if f.Prescription != nil {
		q = q.Where("medicines.prescription = ?", *f.Prescription)
	}
	if f.InStock != nil {
		if *f.InStock {
			q = q.Where("medicines.stock_quantity > 0")
		} else {
			q = q.Where("medicines.stock_quantity = 0")
		}
	}
	// Count 与 Find 共用条件，需要可复用的会话
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := f.SortBy
	if sortBy == SortDefault {
		sortBy = f.FallbackSort
	}

	var res []*model.Medicine
	err := q.Select("medicines.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = medicines.category_id").
		Order(orderClause(sortBy)).
		Order("medicines.id ASC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&res).Error
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func orderClause(sortBy string) string {
	switch sortBy {
	case SortName:
		return "medicines.name ASC"
	case SortPrice:
		return "medicines.price ASC"
	case SortRating:
		return "medicines.rating DESC, medicines.review_count DESC"
	default:
		return "medicines.created_at DESC"
	}
}

func (r *medicineRepository) GetActive(ctx context.Context, id string) (*model.Medicine, error) {
	var m model.Medicine
	err := r.withCategory(ctx).
		Where("medicines.id = ? AND medicines.is_active = ?", id, true).
		Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicineRepository) Featured(ctx context.Context, limit int) ([]*model.Medicine, error) {
	var res []*model.Medicine
	err := r.withCategory(ctx).
		Where("medicines.is_active = ? AND medicines.stock_quantity > 0", true).
		Order("medicines.rating DESC, medicines.review_count DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *medicineRepository) Search(ctx context.Context, q string, limit int) ([]*model.Medicine, error) {
	p := likePattern(q)
	prefix := likeEscape(q) + "%"
	var res []*model.Medicine
	err := r.withCategory(ctx).
		Where("medicines.is_active = ?", true).
		Where(searchClause, p, p, p).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(medicines.name) LIKE ? ESCAPE '!' THEN 0 ELSE 1 END, medicines.rating DESC",
			Vars:               []interface{}{prefix},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *medicineRepository) Create(ctx context.Context, m *model.Medicine) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	m.InStock = m.StockQuantity > 0
	return nil
}

func (r *medicineRepository) Upsert(ctx context.Context, medicines []*model.Medicine) error {
	if len(medicines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price", "original_price", "image", "category_id",
			"prescription", "active_ingredient", "dosage", "manufacturer", "updated_at",
		}),
	}).CreateInBatches(&medicines, 100).Error
}

func (r *medicineRepository) Stock(ctx context.Context, id string) (int, error) {
	var m model.Medicine
	if err := r.db.WithContext(ctx).Select("stock_quantity").Where("id = ?", id).Take(&m).Error; err != nil {
		return 0, err
	}
	return m.StockQuantity, nil
}
