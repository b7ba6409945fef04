package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/service"
	"github.com/Khursands/Online-Pharmacy/pkg/response"
)

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps 处理器依赖；Cache 可为 nil（未启用 Redis）
type Deps struct {
	Auth          service.AuthService
	Catalog       service.CatalogService
	Cart          service.CartService
	Orders        service.OrderService
	Prescriptions service.PrescriptionService
	Reviews       service.ReviewService
	DB            *gorm.DB
	Cache         Pinger
	Version       string
}

type Handler struct {
	authService         service.AuthService
	catalogService      service.CatalogService
	cartService         service.CartService
	orderService        service.OrderService
	prescriptionService service.PrescriptionService
	reviewService       service.ReviewService

	db      *gorm.DB
	cache   Pinger
	version string
}

func New(d Deps) *Handler {
	return &Handler{
		authService:         d.Auth,
		catalogService:      d.Catalog,
		cartService:         d.Cart,
		orderService:        d.Orders,
		prescriptionService: d.Prescriptions,
		reviewService:       d.Reviews,
		db:                  d.DB,
		cache:               d.Cache,
		version:             d.Version,
	}
}

// intOr 可选数值参数，未传时取 def
func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// fail 把服务层错误映射为 HTTP 状态
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "Insufficient permissions")
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyProcessed):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrPrescriptionRequired):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache"`
}

// Health 存活与依赖检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} healthStatus
// @Failure 503 {object} healthStatus
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	st := healthStatus{Status: "OK", Timestamp: time.Now().UTC(), Version: h.version, Database: "up", Cache: "disabled"}
	code := http.StatusOK

	if err := pingDB(ctx, h.db); err != nil {
		st.Status, st.Database = "DEGRADED", "down"
		code = http.StatusServiceUnavailable
	}
	if h.cache != nil {
		st.Cache = "up"
		// 缓存不可用时仍可读库，不影响状态码
		if err := h.cache.Ping(ctx); err != nil {
			st.Cache = "down"
		}
	}
	c.JSON(code, st)
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NotFound 未匹配路由
func (h *Handler) NotFound(c *gin.Context) {
	response.NotFound(c, "endpoint not found")
}
