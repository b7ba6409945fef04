package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Khursands/Online-Pharmacy/config"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// 对同一药品并发下单：库存 STOCK，买家 BUYERS，并发 CONC
func main() {
	cfg := must(config.Load())
	cfg.Database.AutoMigrate = true
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	stock := envInt("STOCK", 100)
	buyers := envInt("BUYERS", 1000)
	conc := envInt("CONC", 32)
	if conc > buyers {
		conc = buyers
	}

	ctx := context.Background()
	runID := uuid.NewString()[:8]

	med := model.Medicine{
		ID:            uuid.NewString(),
		Name:          "Bench Paracetamol " + runID,
		Price:         4.99,
		StockQuantity: stock,
		IsActive:      true,
	}
	medicines := repository.NewMedicineRepository(db)
	if err := medicines.Create(ctx, &med); err != nil {
		panic(err)
	}

	// 每个买家一行购物车
	users := make([]model.User, buyers)
	lines := make([]model.CartItem, buyers)
	for i := range users {
		id := uuid.NewString()
		users[i] = model.User{ID: id, Email: fmt.Sprintf("bench-%s-%d@example.com", runID, i), Password: "x", Name: "Bench", Role: model.RoleCustomer, IsVerified: true}
		lines[i] = model.CartItem{ID: uuid.NewString(), UserID: id, MedicineID: med.ID, Quantity: 1}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		panic(err)
	}
	if err := db.CreateInBatches(&lines, 500).Error; err != nil {
		panic(err)
	}

	svc := service.NewOrderService(repository.NewOrderRepository(db), nil, nil)

	var ok, short, failed atomic.Int64
	lat := make(chan time.Duration, buyers)
	feed := make(chan int, buyers)
	for i := 0; i < buyers; i++ {
		feed <- i
	}
	close(feed)

	t0 := time.Now()
	done := make(chan struct{}, conc)
	for w := 0; w < conc; w++ {
		go func() {
			for i := range feed {
				st := time.Now()
				_, err := svc.Place(ctx, users[i].ID, service.PlaceOrderInput{
					ShippingAddress: "1 Benchmark Road, Test City",
					PaymentMethod:   model.PaymentCOD,
				})
				lat <- time.Since(st)
				switch {
				case err == nil:
					ok.Add(1)
				case errors.Is(err, service.ErrInsufficientStock):
					short.Add(1)
				default:
					failed.Add(1)
				}
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < conc; w++ {
		<-done
	}
	total := time.Since(t0)
	close(lat)

	recs := make([]time.Duration, 0, buyers)
	for d := range lat {
		recs = append(recs, d)
	}
	final := must(medicines.Stock(ctx, med.ID))

	fmt.Printf("driver=%s STOCK=%d BUYERS=%d CONC=%d\n", cfg.Database.Driver, stock, buyers, conc)
	fmt.Printf("placed=%d insufficient=%d errors=%d final_stock=%d\n", ok.Load(), short.Load(), failed.Load(), final)
	fmt.Printf("total=%v per_op=%v p50=%v p95=%v p99=%v\n",
		total, total/time.Duration(buyers), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))
	if int(ok.Load())+final != stock {
		fmt.Println("OVERSOLD: placed + final_stock != initial stock")
		os.Exit(1)
	}
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}
