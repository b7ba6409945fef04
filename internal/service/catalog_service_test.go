package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

func newCatalogService(f *fixture, c CatalogCache) CatalogService {
	return NewCatalogService(f.medicines, repository.NewCategoryRepository(f.db), c)
}

func TestListMedicines_Pagination(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f, nil)
	for i := 0; i < 25; i++ {
		testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: fmt.Sprintf("Med %02d", i), Stock: 1})
	}

	res, err := svc.ListMedicines(context.Background(), MedicineQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Medicines, 10)
	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10}, res.Pagination)

	res, err = svc.ListMedicines(context.Background(), MedicineQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Medicines, 20)
	assert.Equal(t, 20, res.Pagination.ItemsPerPage)

	res, err = svc.ListMedicines(context.Background(), MedicineQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Medicines)
	assert.NotNil(t, res.Medicines)
}

func TestListCategoryMedicines_DefaultsToNameOrder(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f, nil)
	cat := testutil.Category(t, f.db, "Eye Care")
	testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: "Zeta Drops", CategoryID: cat.ID, Stock: 1})
	testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: "Alpha Drops", CategoryID: cat.ID, Stock: 1})

	byCat, err := svc.ListCategoryMedicines(context.Background(), cat.ID, MedicineQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Drops", byCat.Medicines[0].Name)

	all, err := svc.ListMedicines(context.Background(), MedicineQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Drops", all.Medicines[0].Name, "newest first")

	all, err = svc.ListMedicines(context.Background(), MedicineQuery{Category: cat.ID, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Drops", all.Medicines[0].Name)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f, nil)
	res, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestGetMedicine_CacheAside(t *testing.T) {
	f := newFixture(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	c := cache.NewCatalog(rdb, time.Minute)
	svc := newCatalogService(f, c)
	ctx := context.Background()

	cat := testutil.Category(t, f.db, "Pain Relief")
	m := testutil.Medicine(t, f.db, testutil.MedicineOpts{Name: "Ibuprofen", CategoryID: cat.ID, Stock: 3})

	got, err := svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pain Relief", got.CategoryName)
	assert.True(t, mr.Exists(cache.MedicineKey(m.ID)))

	// 命中缓存时不再读库
	require.NoError(t, f.db.Model(&model.Medicine{}).Where("id = ?", m.ID).Update("name", "Renamed").Error)
	got, err = svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", got.Name)
	assert.True(t, got.InStock)
	assert.EqualValues(t, 1, c.Counters().Hits)

	require.NoError(t, c.Delete(ctx, cache.MedicineKey(m.ID)))
	got, err = svc.GetMedicine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	_, err = svc.GetMedicine(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists(cache.MedicineKey("missing")))
}

func TestCatalog_CacheOutageFallsThrough(t *testing.T) {
	f := newFixture(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	svc := newCatalogService(f, cache.NewCatalog(rdb, time.Minute))
	testutil.Category(t, f.db, "Wellness")
	mr.Close()

	list, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Wellness", list[0].Name)
}

func TestGetCategory(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f, nil)
	cat := testutil.Category(t, f.db, "Diabetes Care")
	testutil.Medicine(t, f.db, testutil.MedicineOpts{CategoryID: cat.ID})

	got, err := svc.GetCategory(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.MedicineCount)

	_, err = svc.GetCategory(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
