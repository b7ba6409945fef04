package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Khursands/Online-Pharmacy/config"
	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/database"
)

// 目录热点读：详情 80%、推荐 10%、分类 10%
type request struct {
	kind string
	id   string
}

func main() {
	ctx := context.Background()

	cfg := must(config.Load())
	cfg.Database.AutoMigrate = true
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	medicineCount := envInt("MEDICINES", 2000)
	requestCount := envInt("REQUESTS", 9000)

	fmt.Println("Setting up test data...")
	cats := make([]*model.Category, 8)
	for i := range cats {
		cats[i] = &model.Category{ID: uuid.NewString(), Name: fmt.Sprintf("Bench Category %d", i), IsActive: true}
	}
	mustDo(repository.NewCategoryRepository(db).Upsert(ctx, cats))

	meds := make([]*model.Medicine, medicineCount)
	for i := range meds {
		meds[i] = &model.Medicine{
			ID:               uuid.NewString(),
			Name:             fmt.Sprintf("Bench Medicine %05d", i),
			Description:      "benchmark fixture",
			Price:            float64(100+i%900) / 10,
			CategoryID:       cats[i%len(cats)].ID,
			StockQuantity:    i % 50,
			ActiveIngredient: "Benchmarkium",
			Rating:           float64(30+i%21) / 10,
			ReviewCount:      i % 400,
			IsActive:         true,
		}
	}
	medicines := repository.NewMedicineRepository(db)
	mustDo(medicines.Upsert(ctx, meds))
	fmt.Printf("Test data ready: %d medicines in %d categories\n", medicineCount, len(cats))

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err))
	}

	catalog := cache.NewCatalog(client, 10*time.Minute)
	categories := repository.NewCategoryRepository(db)
	reqs := makeRequests(requestCount, meds, cats)

	noCache := runScenario(ctx, service.NewCatalogService(medicines, categories, nil), reqs, false, client, nil)
	cached := runScenario(ctx, service.NewCatalogService(medicines, categories, catalog), reqs, true, client, catalog)

	fmt.Printf("\nCatalog read latency (%d req, %d medicines, %s + Redis)\n", requestCount, medicineCount, cfg.Database.Driver)
	for _, r := range []struct {
		name string
		res  scenarioResult
	}{{"No cache", noCache}, {"Cache-aside", cached}} {
		fmt.Printf("%-12s avg=%v p95=%v p99=%v hits=%d misses=%d errors=%d cache_keys=%d mem=%s\n",
			r.name, avg(r.res.durations), pct(r.res.durations, 0.95), pct(r.res.durations, 0.99),
			r.res.counters.Hits, r.res.counters.Misses, r.res.counters.Errors,
			r.res.cacheKeys, formatBytes(r.res.memoryBytes))
	}
}

type scenarioResult struct {
	durations   []time.Duration
	counters    cache.Counters
	cacheKeys   int
	memoryBytes int64
}

func call(ctx context.Context, svc service.CatalogService, r request) error {
	var err error
	switch r.kind {
	case "medicine":
		_, err = svc.GetMedicine(ctx, r.id)
	case "featured":
		_, err = svc.Featured(ctx)
	default:
		_, err = svc.ListCategories(ctx)
	}
	return err
}

func runScenario(ctx context.Context, svc service.CatalogService, reqs []request, warm bool, client *redis.Client, catalog *cache.Catalog) scenarioResult {
	client.FlushDB(ctx)

	if warm {
		fmt.Print("  Warming cache...")
		for _, r := range reqs {
			mustDo(call(ctx, svc, r))
		}
		fmt.Println(" done")
	}
	if catalog != nil {
		catalog.ResetCounters()
	}

	fmt.Print("  Running benchmark...")
	out := make([]time.Duration, 0, len(reqs))
	for _, r := range reqs {
		start := time.Now()
		mustDo(call(ctx, svc, r))
		out = append(out, time.Since(start))
	}
	fmt.Println(" done")

	res := scenarioResult{durations: out}
	if catalog != nil {
		res.counters = catalog.Counters()
	}
	if n, err := client.DBSize(ctx).Result(); err == nil {
		res.cacheKeys = int(n)
	}
	if info, err := client.Info(ctx, "memory").Result(); err == nil {
		res.memoryBytes = parseRedisMemory(info)
	}
	return res
}

// parseRedisMemory 取 INFO memory 中的 used_memory
func parseRedisMemory(info string) int64 {
	for _, line := range strings.Split(info, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "used_memory:"); ok {
			n, _ := strconv.ParseInt(v, 10, 64)
			return n
		}
	}
	return 0
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// makeRequests 详情请求集中在前 10% 的热门药品
func makeRequests(n int, meds []*model.Medicine, cats []*model.Category) []request {
	rnd := rand.New(rand.NewSource(42))
	hot := len(meds) / 10
	if hot == 0 {
		hot = len(meds)
	}
	out := make([]request, n)
	for i := range out {
		switch p := rnd.Float64(); {
		case p < 0.8:
			idx := rnd.Intn(hot)
			if rnd.Float64() > 0.7 {
				idx = rnd.Intn(len(meds))
			}
			out[i] = request{kind: "medicine", id: meds[idx].ID}
		case p < 0.9:
			out[i] = request{kind: "featured"}
		default:
			out[i] = request{kind: "categories", id: cats[rnd.Intn(len(cats))].ID}
		}
	}
	return out
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
