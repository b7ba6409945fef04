package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

// BuildOrder 在下单事务内根据购物车快照构造订单；返回错误则整体回滚
type BuildOrder func(lines []model.CartLine) (*model.Order, error)

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// PlaceFromCart 单事务完成下单：读取购物车快照、按药品 id 顺序加锁复核并扣减库存、
	// 写订单与明细、删除快照中的购物车行。任一步失败整体回滚
	PlaceFromCart(ctx context.Context, userID string, build BuildOrder) (*model.Order, error)

	// GetByID 查询用户自己的订单（含明细）
	GetByID(ctx context.Context, userID, orderID string) (*model.Order, error)

	// ListByUser 按创建时间倒序分页查询用户订单（含明细）
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Order, int64, error)

	// Count 统计订单数量
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) PlaceFromCart(ctx context.Context, userID string, build BuildOrder) (*model.Order, error) {
	var order *model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := cartLines(tx, userID)
		if err != nil {
			return err
		}
		order, err = build(lines)
		if err != nil {
			return err
		}
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		order.UserID = userID

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if err := decrementStock(tx, order.Items); err != nil {
			return err
		}
		for i := range order.Items {
			it := &order.Items[i]
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			it.OrderID = order.ID
			if err := tx.Create(it).Error; err != nil {
				return err
			}
		}

		// 只删除快照中的行；快照之后新加入的行留在购物车
		lineIDs := make([]string, len(lines))
		for i, l := range lines {
			lineIDs[i] = l.ID
		}
		if len(lineIDs) == 0 {
			return nil
		}
		return tx.Where("user_id = ? AND id IN ?", userID, lineIDs).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// decrementStock 按药品 id 升序一次性行锁，再逐个 CAS 扣减。
// 固定加锁顺序，并发下单不会互相等待成环
func decrementStock(tx *gorm.DB, items []model.OrderItem) error {
	need := make(map[string]int, len(items))
	names := make(map[string]string, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := need[it.MedicineID]; !ok {
			ids = append(ids, it.MedicineID)
			names[it.MedicineID] = it.Name
		}
		need[it.MedicineID] += it.Quantity
	}
	if len(ids) == 0 {
		return nil
	}
	slices.Sort(ids)

	var meds []model.Medicine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "name", "stock_quantity", "is_active").
		Where("id IN ?", ids).
		Order("id").
		Find(&meds).Error
	if err != nil {
		return err
	}
	byID := make(map[string]*model.Medicine, len(meds))
	for i := range meds {
		byID[meds[i].ID] = &meds[i]
	}

	for _, id := range ids {
		med, ok := byID[id]
		if !ok || !med.IsActive {
			return &StockError{MedicineID: id, Name: names[id], Requested: need[id]}
		}
		if med.StockQuantity < need[id] {
			return &StockError{MedicineID: id, Name: med.Name, Available: med.StockQuantity, Requested: need[id]}
		}

		// CAS 扣减：即使方言不支持行锁也不会超卖
		res := tx.Model(&model.Medicine{}).
			Where("id = ? AND stock_quantity >= ?", id, need[id]).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", need[id]))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &StockError{MedicineID: id, Name: med.Name, Available: med.StockQuantity, Requested: need[id]}
		}
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Take(&order).Error
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []string{order.ID}, true)
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.loadItems(ctx, ids, false)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
		if o.Items == nil {
			o.Items = []model.OrderItem{}
		}
	}
	return orders, total, nil
}

// loadItems 批量加载明细并关联药品展示字段；detailed 额外带出成分与剂量
func (r *orderRepository) loadItems(ctx context.Context, orderIDs []string, detailed bool) (map[string][]model.OrderItem, error) {
	sel := "oi.*, m.name AS name, m.image AS image"
	if detailed {
		sel += ", m.active_ingredient AS active_ingredient, m.dosage AS dosage"
	}
	var rows []model.OrderItem
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(sel).
		Joins("LEFT JOIN medicines m ON m.id = oi.medicine_id").
		Where("oi.order_id IN ?", orderIDs).
		Order("oi.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]model.OrderItem, len(orderIDs))
	for _, it := range rows {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}

// Count 统计订单数量
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}
