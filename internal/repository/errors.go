package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrMedicineUnavailable 药品不存在或已下架
	ErrMedicineUnavailable = errors.New("medicine unavailable")
	// ErrStateChanged 条件更新未命中（状态已被其他请求修改）
	ErrStateChanged = errors.New("row state changed")
)

// StockError 库存不足，携带药品名称便于上层提示
type StockError struct {
	MedicineID string
	Name       string
	Available  int
	Requested  int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.Name, e.Available, e.Requested)
}
