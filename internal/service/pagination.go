package service

const (
	maxPageSize            = 100
	defaultCatalogPageSize = 20
	defaultOrderPageSize   = 10
)

// Pagination 分页元数据
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// normalizePage page<1 取 1，size 落在 [1, 100]，未传时取默认值
func normalizePage(page, size, def int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = def
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, (page - 1) * size
}

func newPagination(page, size int, total int64) Pagination {
	return Pagination{
		CurrentPage:  page,
		TotalPages:   int((total + int64(size) - 1) / int64(size)),
		TotalItems:   total,
		ItemsPerPage: size,
	}
}
