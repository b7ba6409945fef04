package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/config"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/pkg/database"
	"github.com/Khursands/Online-Pharmacy/pkg/logger"
)

var manufacturers = []string{"Pfizer", "Johnson & Johnson", "Novartis", "Roche", "Merck", "GSK", "Bayer", "AbbVie"}

// stableID 同名记录每次运行得到相同 id，重复执行即为 upsert
func stableID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("online-pharmacy/"+kind+"/"+name)).String()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// 种子数据总是需要表结构
	cfg.Database.AutoMigrate = true
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	seed := time.Now().UnixNano()
	if s := os.Getenv("SEED"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = n
		}
	}
	rnd := rand.New(rand.NewSource(seed))

	categories, medicines := build(rnd, time.Now())

	ctx := context.Background()
	if err := repository.NewCategoryRepository(db).Upsert(ctx, categories); err != nil {
		logger.Fatal("seed categories", zap.Error(err))
	}
	if err := repository.NewMedicineRepository(db).Upsert(ctx, medicines); err != nil {
		logger.Fatal("seed medicines", zap.Error(err))
	}
	logger.Info("database seeded",
		zap.Int("categories", len(categories)),
		zap.Int("medicines", len(medicines)),
		zap.Int64("seed", seed))
}

func build(rnd *rand.Rand, now time.Time) ([]*model.Category, []*model.Medicine) {
	categories := make([]*model.Category, 0, len(seedCategories))
	var medicines []*model.Medicine
	for _, sc := range seedCategories {
		cat := &model.Category{
			ID:          stableID("category", sc.Name),
			Name:        sc.Name,
			Description: sc.Description,
			Image:       sc.Image,
			IsActive:    true,
		}
		categories = append(categories, cat)

		for i, sm := range seedMedicines[sc.Name] {
			orig := sm.OriginalPrice
			stock := rnd.Intn(500) + 10
			// 约一成缺货
			if rnd.Float64() < 0.1 {
				stock = 0
			}
			medicines = append(medicines, &model.Medicine{
				ID:                stableID("medicine", sm.Name),
				Name:              sm.Name,
				Description:       sm.Description,
				Price:             sm.Price,
				OriginalPrice:     &orig,
				Image:             fmt.Sprintf("medicine-%d-%d.jpg", len(categories)-1, i+1),
				CategoryID:        cat.ID,
				StockQuantity:     stock,
				Prescription:      sm.Prescription,
				ActiveIngredient:  sm.ActiveIngredient,
				Dosage:            sm.Dosage,
				Manufacturer:      manufacturers[rnd.Intn(len(manufacturers))],
				ExpiryDate:        now.AddDate(0, 0, 365+rnd.Intn(730)).Format("2006-01-02"),
				BatchNumber:       fmt.Sprintf("B%06d", rnd.Intn(900000)+100000),
				Rating:            math.Round((rnd.Float64()*2+3)*10) / 10,
				ReviewCount:       rnd.Intn(500) + 10,
				SideEffects:       "Consult your doctor if you experience any unusual symptoms.",
				Contraindications: "Do not use if allergic to any ingredients. Consult doctor before use.",
				IsActive:          true,
			})
		}
	}
	return categories, medicines
}
