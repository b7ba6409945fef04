package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

func placeInput() PlaceOrderInput {
	return PlaceOrderInput{ShippingAddress: "12 Harley Street, London W1G", PaymentMethod: model.PaymentCOD}
}

func TestPlaceOrder_TotalAndSideEffects(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	del := newRecordingDeleter()
	inv := NewCacheInvalidator(del, 16)
	stop := inv.Start(1)
	defer stop(context.Background())

	svc := NewOrderService(f.orders, pub, inv)
	carts := NewCartService(f.carts)
	ctx := context.Background()

	u := testutil.User(t, f.db, "buyer@example.com")
	a := testutil.Medicine(t, f.db, testutil.MedicineOpts{Price: 10.00, Stock: 5})
	b := testutil.Medicine(t, f.db, testutil.MedicineOpts{Price: 20.00, Stock: 5})
	c := testutil.Medicine(t, f.db, testutil.MedicineOpts{Price: 5.00, Stock: 5})
	for _, add := range []struct {
		id  string
		qty int
	}{{a.ID, 1}, {b.ID, 1}, {c.ID, 2}} {
		_, err := carts.Add(ctx, u.ID, add.id, add.qty)
		require.NoError(t, err)
	}

	view, err := carts.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.00, view.TotalAmount)
	assert.Equal(t, 4, view.TotalItems)

	res, err := svc.Place(ctx, u.ID, placeInput())
	require.NoError(t, err)
	assert.Equal(t, 40.00, res.TotalAmount)
	assert.NotEmpty(t, res.OrderID)

	view, err = carts.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	for id, want := range map[string]int{a.ID: 4, b.ID: 4, c.ID: 3} {
		got, err := f.medicines.Stock(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	order, err := svc.Get(ctx, u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 3)

	require.Len(t, pub.events, 1)
	assert.Equal(t, res.OrderID, pub.events[0].OrderID)

	del.wait(t)
	assert.Contains(t, del.Keys(), cache.MedicineKey(a.ID))
	assert.Contains(t, del.Keys(), cache.FeaturedKey)
}

func TestPlaceOrder_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, nil, nil)
	ctx := context.Background()

	u := testutil.User(t, f.db, "buyer@example.com")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Price: 12.5, Stock: 5})
	testutil.CartLine(t, f.db, u.ID, m.ID, 2)

	res, err := svc.Place(ctx, u.ID, placeInput())
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&model.Medicine{}).Where("id = ?", m.ID).Update("price", 99).Error)

	order, err := svc.Get(ctx, u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, 12.5, order.Items[0].Price)
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewOrderService(f.orders, pub, nil)
	ctx := context.Background()
	u := testutil.User(t, f.db, "buyer@example.com")

	_, err := svc.Place(ctx, u.ID, placeInput())
	assert.ErrorIs(t, err, ErrEmptyCart)

	rx := testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: "Amoxicillin", Stock: 5, Prescription: true})
	testutil.CartLine(t, f.db, u.ID, rx.ID, 1)
	_, err = svc.Place(ctx, u.ID, placeInput())
	assert.ErrorIs(t, err, ErrPrescriptionRequired)

	var orders, items int64
	f.db.Model(&model.Order{}).Count(&orders)
	f.db.Model(&model.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Empty(t, pub.events)

	// 库存不足优先于处方校验，并指出药品名称
	scarce := testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: "Insulin", Stock: 1})
	testutil.CartLine(t, f.db, u.ID, scarce.ID, 3)
	_, err = svc.Place(ctx, u.ID, placeInput())
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insulin")

	require.NoError(t, f.db.Model(&model.CartItem{}).Where("medicine_id = ?", scarce.ID).Update("quantity", 1).Error)
	in := placeInput()
	in.PrescriptionImage = "/uploads/u/rx.png"
	res, err := svc.Place(ctx, u.ID, in)
	require.NoError(t, err)
	order, err := svc.Get(ctx, u.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/u/rx.png", order.PrescriptionImage)
}

func TestPlaceOrder_ConcurrentSingleUnit(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, nil, nil)
	ctx := context.Background()

	med := testutil.Medicine(t, f.db, testutil.MedicineOpts{Stock: 1})
	buyers := []string{
		testutil.User(t, f.db, "a@example.com").ID,
		testutil.User(t, f.db, "b@example.com").ID,
	}
	for _, id := range buyers {
		testutil.CartLine(t, f.db, id, med.ID, 1)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(buyers))
	for _, id := range buyers {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := svc.Place(ctx, userID, placeInput())
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	var ok, short int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)

	stock, err := f.medicines.Stock(ctx, med.ID)
	require.NoError(t, err)
	assert.Zero(t, stock)
}

func TestPlaceOrder_PublishFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, &recordingPublisher{err: errors.New("broker down")}, nil)
	ctx := context.Background()
	u := testutil.User(t, f.db, "buyer@example.com")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Stock: 2})
	testutil.CartLine(t, f.db, u.ID, m.ID, 1)

	_, err := svc.Place(ctx, u.ID, placeInput())
	assert.NoError(t, err)
}

func TestListOrders_Pagination(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, nil, nil)
	ctx := context.Background()
	u := testutil.User(t, f.db, "buyer@example.com")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Stock: 100})

	for i := 0; i < 12; i++ {
		testutil.CartLine(t, f.db, u.ID, m.ID, 1)
		_, err := svc.Place(ctx, u.ID, placeInput())
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, u.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list.Orders, 10)
	assert.Equal(t, Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 12, ItemsPerPage: 10}, list.Pagination)

	list, err = svc.List(ctx, u.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, list.Orders, 2)

	_, err = svc.Get(ctx, "someone-else", list.Orders[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
