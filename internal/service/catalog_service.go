package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/internal/cache"
	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/pkg/logger"
)

const (
	featuredLimit = 6
	searchLimit   = 10
)

// CatalogCache 目录读缓存；为 nil 时直接读库
type CatalogCache interface {
	Load(ctx context.Context, key string, dst interface{}) (bool, error)
	Store(ctx context.Context, key string, v interface{}) error
}

// MedicineQuery 药品列表查询参数
type MedicineQuery struct {
	Page         int
	Limit        int
	Category     string
	Search       string
	Prescription *bool
	InStock      *bool
	SortBy       string
}

type MedicineList struct {
	Medicines  []*model.Medicine `json:"medicines"`
	Pagination Pagination        `json:"pagination"`
}

// CatalogService 药品目录服务
type CatalogService interface {
	ListMedicines(ctx context.Context, q MedicineQuery) (*MedicineList, error)
	ListCategoryMedicines(ctx context.Context, categoryID string, q MedicineQuery) (*MedicineList, error)
	GetMedicine(ctx context.Context, id string) (*model.Medicine, error)
	Featured(ctx context.Context) ([]*model.Medicine, error)
	Search(ctx context.Context, q string) ([]*model.Medicine, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
}

type catalogService struct {
	medicines  repository.MedicineRepository
	categories repository.CategoryRepository
	cache      CatalogCache
}

func NewCatalogService(medicines repository.MedicineRepository, categories repository.CategoryRepository, c CatalogCache) CatalogService {
	return &catalogService{medicines: medicines, categories: categories, cache: c}
}

// readThrough cache-aside：命中直接返回；未命中读库后回填。缓存故障只记录日志
func readThrough[T any](ctx context.Context, c CatalogCache, key string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}
	var cached T
	ok, err := c.Load(ctx, key, &cached)
	if err != nil {
		logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return cached, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if err := c.Store(ctx, key, v); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (s *catalogService) list(ctx context.Context, categoryID, fallback string, q MedicineQuery) (*MedicineList, error) {
	page, size, offset := normalizePage(q.Page, q.Limit, defaultCatalogPageSize)
	meds, total, err := s.medicines.List(ctx, repository.MedicineFilter{
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(q.Search),
		Prescription: q.Prescription,
		InStock:      q.InStock,
		SortBy:       q.SortBy,
		FallbackSort: fallback,
		Offset:       offset,
		Limit:        size,
	})
	if err != nil {
		return nil, err
	}
	if meds == nil {
		meds = []*model.Medicine{}
	}
	return &MedicineList{Medicines: meds, Pagination: newPagination(page, size, total)}, nil
}

func (s *catalogService) ListMedicines(ctx context.Context, q MedicineQuery) (*MedicineList, error) {
	return s.list(ctx, q.Category, repository.SortNewest, q)
}

// ListCategoryMedicines 分类内默认按名称升序，与全量列表不同
func (s *catalogService) ListCategoryMedicines(ctx context.Context, categoryID string, q MedicineQuery) (*MedicineList, error) {
	return s.list(ctx, categoryID, repository.SortName, q)
}

func (s *catalogService) GetMedicine(ctx context.Context, id string) (*model.Medicine, error) {
	return readThrough(ctx, s.cache, cache.MedicineKey(id), func() (*model.Medicine, error) {
		m, err := s.medicines.GetActive(ctx, id)
		if isNotFound(err) {
			return nil, fmt.Errorf("medicine %w", ErrNotFound)
		}
		return m, err
	})
}

func (s *catalogService) Featured(ctx context.Context) ([]*model.Medicine, error) {
	return readThrough(ctx, s.cache, cache.FeaturedKey, func() ([]*model.Medicine, error) {
		meds, err := s.medicines.Featured(ctx, featuredLimit)
		if meds == nil && err == nil {
			meds = []*model.Medicine{}
		}
		return meds, err
	})
}

func (s *catalogService) Search(ctx context.Context, q string) ([]*model.Medicine, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*model.Medicine{}, nil
	}
	meds, err := s.medicines.Search(ctx, q, searchLimit)
	if err != nil {
		return nil, err
	}
	if meds == nil {
		meds = []*model.Medicine{}
	}
	return meds, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return readThrough(ctx, s.cache, cache.CategoriesKey, func() ([]*model.Category, error) {
		list, err := s.categories.ListActive(ctx)
		if list == nil && err == nil {
			list = []*model.Category{}
		}
		return list, err
	})
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return readThrough(ctx, s.cache, cache.CategoryKey(id), func() (*model.Category, error) {
		c, err := s.categories.GetActive(ctx, id)
		if isNotFound(err) {
			return nil, fmt.Errorf("category %w", ErrNotFound)
		}
		return c, err
	})
}
