package service

import (
	"github.com/shopspring/decimal"

	"github.com/Khursands/Online-Pharmacy/internal/model"
)

// cartTotals 金额按十进制累加后保留两位小数
func cartTotals(lines []model.CartLine) (float64, int) {
	sum := decimal.Zero
	items := 0
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		items += l.Quantity
	}
	total, _ := sum.Round(2).Float64()
	return total, items
}
