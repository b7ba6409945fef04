package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

func TestCartAdd_MergesAndCapsAtStock(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	u := testutil.User(t, db, "u@example.com")
	med := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5})

	first, err := repo.Add(ctx, u.ID, med.ID, 2)
	require.NoError(t, err)
	second, err := repo.Add(ctx, u.ID, med.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	_, err = repo.Add(ctx, u.ID, med.ID, 1)
	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 6, se.Requested)

	lines, err := repo.ListLines(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].InStock)
}

func TestCartAdd_Unavailable(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	u := testutil.User(t, db, "u@example.com")
	hidden := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5, Inactive: true})
	empty := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 0})

	_, err := repo.Add(context.Background(), u.ID, hidden.ID, 1)
	assert.ErrorIs(t, err, ErrMedicineUnavailable)
	_, err = repo.Add(context.Background(), u.ID, "missing", 1)
	assert.ErrorIs(t, err, ErrMedicineUnavailable)

	_, err = repo.Add(context.Background(), u.ID, empty.ID, 1)
	var se *StockError
	assert.ErrorAs(t, err, &se)
}

func TestCartListLines_SkipsInactiveMedicine(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	u := testutil.User(t, db, "u@example.com")
	live := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5})
	gone := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 5})
	testutil.CartLine(t, db, u.ID, live.ID, 1)
	testutil.CartLine(t, db, u.ID, gone.ID, 1)
	require.NoError(t, db.Model(&model.Medicine{}).Where("id = ?", gone.ID).Update("is_active", false).Error)

	lines, err := repo.ListLines(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, live.ID, lines[0].MedicineID)
}

func TestCartUpdateAndDelete_ScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	owner := testutil.User(t, db, "owner@example.com")
	intruder := testutil.User(t, db, "intruder@example.com")
	med := testutil.Medicine(t, db, testutil.MedicineOpts{Stock: 3})
	item := testutil.CartLine(t, db, owner.ID, med.ID, 1)

	assert.ErrorIs(t, repo.UpdateQuantity(ctx, intruder.ID, item.ID, 2), gorm.ErrRecordNotFound)
	var se *StockError
	assert.ErrorAs(t, repo.UpdateQuantity(ctx, owner.ID, item.ID, 4), &se)
	require.NoError(t, repo.UpdateQuantity(ctx, owner.ID, item.ID, 3))

	assert.ErrorIs(t, repo.Delete(ctx, intruder.ID, item.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, item.ID), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Clear(ctx, owner.ID))
	require.NoError(t, repo.Clear(ctx, owner.ID))
}

func BenchmarkCartAdd(b *testing.B) {
	db := testutil.NewDB(b)
	repo := NewCartRepository(db)
	ctx := context.Background()

	meds := make([]*model.Medicine, 50)
	for i := range meds {
		meds[i] = testutil.Medicine(b, db, testutil.MedicineOpts{Stock: 1 << 30})
	}
	users := make([]*model.User, 100)
	for i := range users {
		users[i] = testutil.User(b, db, fmt.Sprintf("u%03d@example.com", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u := users[i%len(users)]
		m := meds[i%len(meds)]
		if _, err := repo.Add(ctx, u.ID, m.ID, 1); err != nil {
			b.Fatal(err)
		}
	}
}
