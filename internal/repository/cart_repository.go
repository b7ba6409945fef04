package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

type CartRepository interface {
	// ListLines 购物车行关联药品当前价格/库存，已下架药品的行不返回
	ListLines(ctx context.Context, userID string) ([]model.CartLine, error)
	// Add 同一药品已在购物车时累加数量；累加后不得超过库存
	Add(ctx context.Context, userID, medicineID string, quantity int) (*model.CartItem, error)
	// UpdateQuantity 设置精确数量，行必须属于该用户
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Delete(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) ListLines(ctx context.Context, userID string) ([]model.CartLine, error) {
	return cartLines(r.db.WithContext(ctx), userID)
}

// cartLines 购物车快照；下单时在事务内调用
func cartLines(db *gorm.DB, userID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := db.
		Table("cart").
		Select("cart.id, cart.user_id, cart.medicine_id, cart.quantity, cart.created_at, " +
			"m.name, m.price, m.image, m.stock_quantity, m.prescription").
		Joins("JOIN medicines m ON m.id = cart.medicine_id").
		Where("cart.user_id = ? AND m.is_active = ?", userID, true).
		Order("cart.created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].InStock = lines[i].StockQuantity > 0
	}
	return lines, nil
}

// lockMedicine 行锁读取药品（SQLite 忽略 FOR UPDATE，由单连接串行化）
func lockMedicine(tx *gorm.DB, id string) (*model.Medicine, error) {
	var m model.Medicine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "name", "price", "stock_quantity", "is_active").
		Where("id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMedicineUnavailable
	}
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, ErrMedicineUnavailable
	}
	return &m, nil
}

func (r *cartRepository) Add(ctx context.Context, userID, medicineID string, quantity int) (*model.CartItem, error) {
	var out model.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		med, err := lockMedicine(tx, medicineID)
		if err != nil {
			return err
		}

		var existing model.CartItem
		err = tx.Where("user_id = ? AND medicine_id = ?", userID, medicineID).Take(&existing).Error
		switch {
		case err == nil:
			total := existing.Quantity + quantity
			if total > med.StockQuantity {
				return &StockError{MedicineID: med.ID, Name: med.Name, Available: med.StockQuantity, Requested: total}
			}
			if err := tx.Model(&existing).Update("quantity", total).Error; err != nil {
				return err
			}
			existing.Quantity = total
			out = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > med.StockQuantity {
				return &StockError{MedicineID: med.ID, Name: med.Name, Available: med.StockQuantity, Requested: quantity}
			}
			out = model.CartItem{ID: uuid.New().String(), UserID: userID, MedicineID: medicineID, Quantity: quantity}
			return tx.Create(&out).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).Take(&item).Error; err != nil {
			return err
		}
		med, err := lockMedicine(tx, item.MedicineID)
		if err != nil {
			return err
		}
		if quantity > med.StockQuantity {
			return &StockError{MedicineID: med.ID, Name: med.Name, Available: med.StockQuantity, Requested: quantity}
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
}

func (r *cartRepository) Delete(ctx context.Context, userID, itemID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
