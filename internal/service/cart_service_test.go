package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

func TestCartService_Add(t *testing.T) {
	f := newFixture(t)
	svc := NewCartService(f.carts)
	ctx := context.Background()
	u := testutil.User(t, f.db, "u@example.com")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Stock: 4, Price: 3.35})

	item, err := svc.Add(ctx, u.ID, m.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	_, err = svc.Add(ctx, u.ID, m.ID, 11)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, u.ID, m.ID, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.Add(ctx, u.ID, m.ID, 2)
	require.NoError(t, err)

	view, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, 10.05, view.TotalAmount)

	_, err = svc.Add(ctx, u.ID, "00000000-0000-4000-8000-000000000000", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	f := newFixture(t)
	svc := NewCartService(f.carts)
	ctx := context.Background()
	u := testutil.User(t, f.db, "u@example.com")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Stock: 4})
	item := testutil.CartLine(t, f.db, u.ID, m.ID, 1)

	assert.ErrorIs(t, svc.Update(ctx, u.ID, item.ID, 0), ErrInvalidInput)
	assert.ErrorIs(t, svc.Update(ctx, u.ID, item.ID, 5), ErrInsufficientStock)
	assert.ErrorIs(t, svc.Update(ctx, "other", item.ID, 1), ErrNotFound)
	require.NoError(t, svc.Update(ctx, u.ID, item.ID, 4))

	assert.ErrorIs(t, svc.Remove(ctx, "other", item.ID), ErrNotFound)
	require.NoError(t, svc.Remove(ctx, u.ID, item.ID))

	require.NoError(t, svc.Clear(ctx, u.ID))
	view, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.TotalAmount)
}
