package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

func newOrder(userID string, items ...model.OrderItem) *model.Order {
	return &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		ShippingAddress: "221B Baker Street, London",
		PaymentMethod:   model.PaymentCOD,
		PaymentStatus:   model.PaymentStatusPending,
		Items:           items,
	}
}

// fromCart 按购物车快照原样生成订单
func fromCart(lines []model.CartLine) (*model.Order, error) {
	o := newOrder("")
	for _, l := range lines {
		o.Items = append(o.Items, model.OrderItem{MedicineID: l.MedicineID, Quantity: l.Quantity, Price: l.Price, Name: l.Name})
		o.TotalAmount += l.Price * float64(l.Quantity)
	}
	return o, nil
}

func TestOrderPlace_DecrementsStockAndClearsCart(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	a := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5, Price: 10})
	b := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 3, Price: 5})
	testutil.CartLine(t, db, u.ID, a.ID, 2)
	testutil.CartLine(t, db, u.ID, b.ID, 3)

	order, err := repo.PlaceFromCart(ctx, u.ID, fromCart)
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, u.ID, order.UserID)

	meds := NewMedicineRepository(db)
	stockA, err := meds.Stock(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stockA)
	stockB, err := meds.Stock(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stockB)

	var cartRows int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("user_id = ?", u.ID).Count(&cartRows).Error)
	assert.Zero(t, cartRows)

	got, err := repo.GetByID(ctx, u.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.TotalAmount)
	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.NotEmpty(t, it.Name)
		assert.Equal(t, "500mg", it.Dosage)
	}
}

func TestOrderPlace_RollsBackOnShortage(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	a := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5})
	b := testutil.Medicine(t, db, testutil.MedicineOpts{Name: "Scarce", Stock: 1})
	testutil.CartLine(t, db, u.ID, a.ID, 2)
	testutil.CartLine(t, db, u.ID, b.ID, 2)

	_, err := repo.PlaceFromCart(ctx, u.ID, fromCart)
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Scarce", se.Name)

	// 已扣减的库存随事务回滚
	stockA, err := NewMedicineRepository(db).Stock(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stockA)

	var orders, items, cart int64
	db.Model(&model.Order{}).Count(&orders)
	db.Model(&model.OrderItem{}).Count(&items)
	db.Model(&model.CartItem{}).Count(&cart)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.EqualValues(t, 2, cart)
}

func TestOrderPlace_ConcurrentLastUnit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	med := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 1})
	users := []*model.User{
		testutil.User(t, db, "a@example.com"),
		testutil.User(t, db, "b@example.com"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		testutil.CartLine(t, db, u.ID, med.ID, 1)
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = repo.PlaceFromCart(ctx, userID, fromCart)
		}(i, u.ID)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		var se *StockError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &se):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)

	stock, err := NewMedicineRepository(db).Stock(ctx, med.ID)
	require.NoError(t, err)
	assert.Zero(t, stock)
}

func TestOrderPlace_BuildErrorRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	med := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5})
	testutil.CartLine(t, db, u.ID, med.ID, 2)

	refused := errors.New("refused")
	var seen []model.CartLine
	_, err := repo.PlaceFromCart(ctx, u.ID, func(lines []model.CartLine) (*model.Order, error) {
		seen = lines
		return nil, refused
	})
	require.ErrorIs(t, err, refused)
	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[0].Quantity)
	assert.True(t, seen[0].InStock)

	var cart int64
	db.Model(&model.CartItem{}).Count(&cart)
	assert.EqualValues(t, 1, cart)
}

// 快照之后写入的购物车行不随订单删除
func TestOrderPlace_KeepsLinesAddedAfterSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	a := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5, Price: 10})
	b := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5, Price: 4})
	testutil.CartLine(t, db, u.ID, a.ID, 1)

	lateID := uuid.NewString()
	injected := false
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:late_cart_line", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "cart" {
			return
		}
		injected = true
		now := time.Now()
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO cart (id, user_id, medicine_id, quantity, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			lateID, u.ID, b.ID, 2, now, now)
		require.NoError(t, err)
	}))

	order, err := repo.PlaceFromCart(ctx, u.ID, fromCart)
	require.NoError(t, err)
	require.True(t, injected)
	require.Len(t, order.Items, 1)
	assert.Equal(t, a.ID, order.Items[0].MedicineID)
	assert.Equal(t, 10.0, order.TotalAmount)

	var left []model.CartItem
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, lateID, left[0].ID)
	assert.Equal(t, 2, left[0].Quantity)

	stockB, err := NewMedicineRepository(db).Stock(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stockB)
}

// 行锁读取之后库存被改写时，条件扣减失败并整体回滚
func TestOrderPlace_StockChangedAfterLock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	med := testutil.Medicine(t, db, testutil.MedicineOpts{Name: "Salbutamol", Stock: 3})
	testutil.CartLine(t, db, u.ID, med.ID, 2)

	drained := false
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:drain_stock", func(tx *gorm.DB) {
		if drained || tx.Statement.Table != "medicines" {
			return
		}
		drained = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"UPDATE medicines SET stock_quantity = 0 WHERE id = ?", med.ID)
		require.NoError(t, err)
	}))

	_, err := repo.PlaceFromCart(ctx, u.ID, fromCart)
	require.True(t, drained)
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Salbutamol", se.Name)
	assert.Equal(t, 3, se.Available)
	assert.Equal(t, 2, se.Requested)

	stock, err := NewMedicineRepository(db).Stock(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stock)

	var orders, cart int64
	db.Model(&model.Order{}).Count(&orders)
	db.Model(&model.CartItem{}).Count(&cart)
	assert.Zero(t, orders)
	assert.EqualValues(t, 1, cart)
}

func TestOrderPlace_LocksInMedicineIDOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	ids := make(map[string]bool)
	for i := 0; i < 4; i++ {
		m := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 10})
		ids[m.ID] = true
		testutil.CartLine(t, db, u.ID, m.ID, 1)
	}

	var lockQueries int
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:count_locks", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["FOR"]; ok && tx.Statement.Table == "medicines" {
			lockQueries++
		}
	}))
	var decremented []string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_decrements", func(tx *gorm.DB) {
		if tx.Statement.Table != "medicines" {
			return
		}
		for _, v := range tx.Statement.Vars {
			if s, ok := v.(string); ok && ids[s] {
				decremented = append(decremented, s)
				return
			}
		}
	}))

	_, err := repo.PlaceFromCart(ctx, u.ID, fromCart)
	require.NoError(t, err)
	assert.Equal(t, 1, lockQueries)
	require.Len(t, decremented, 4)
	assert.True(t, slices.IsSorted(decremented))
}

func TestOrderListByUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	u := testutil.User(t, db, "buyer@example.com")
	other := testutil.User(t, db, "other@example.com")
	med := testutil.Medicine(t, db, testutil.MedicineOpts{Name: "Aspirin", Stock: 100})

	place := func(userID string) {
		testutil.CartLine(t, db, userID, med.ID, 1)
		_, err := repo.PlaceFromCart(ctx, userID, fromCart)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		place(u.ID)
	}
	place(other.ID)

	orders, total, err := repo.ListByUser(ctx, u.ID, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, orders, 2)
	assert.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Aspirin", orders[0].Items[0].Name)
	assert.Empty(t, orders[0].Items[0].Dosage)

	otherOrders, _, err := repo.ListByUser(ctx, other.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, otherOrders, 1)

	_, err = repo.GetByID(ctx, u.ID, otherOrders[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
