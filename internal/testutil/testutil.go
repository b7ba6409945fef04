// Package testutil 提供测试用的内存数据库与数据构造
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/pkg/database"
)

// NewDB 每个测试独立的内存 SQLite，单连接
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func Category(t testing.TB, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{ID: uuid.NewString(), Name: name, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

// MedicineOpts 药品构造参数；零值字段使用默认
type MedicineOpts struct {
	Name         string
	CategoryID   string
	Price        float64
	Stock        int
	Prescription bool
	Inactive     bool
	Rating       float64
	ReviewCount  int
}

func Medicine(t testing.TB, db *gorm.DB, o MedicineOpts) *model.Medicine {
	t.Helper()
	if o.Name == "" {
		o.Name = "Medicine " + uuid.NewString()[:8]
	}
	if o.Price == 0 {
		o.Price = 9.99
	}
	m := &model.Medicine{
		ID:               uuid.NewString(),
		Name:             o.Name,
		Description:      o.Name + " tablets",
		Price:            o.Price,
		CategoryID:       o.CategoryID,
		StockQuantity:    o.Stock,
		Prescription:     o.Prescription,
		ActiveIngredient: "Ingredient",
		Dosage:           "500mg",
		Rating:           o.Rating,
		ReviewCount:      o.ReviewCount,
		IsActive:         !o.Inactive,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func User(t testing.TB, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		ID:         uuid.NewString(),
		Email:      email,
		Password:   "x",
		Name:       "Test User",
		Role:       model.RoleCustomer,
		IsVerified: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CartLine(t testing.TB, db *gorm.DB, userID, medicineID string, qty int) *model.CartItem {
	t.Helper()
	it := &model.CartItem{ID: uuid.NewString(), UserID: userID, MedicineID: medicineID, Quantity: qty}
	require.NoError(t, db.Create(it).Error)
	return it
}
