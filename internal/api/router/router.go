package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Khursands/Online-Pharmacy/config"
	_ "github.com/Khursands/Online-Pharmacy/docs"
	"github.com/Khursands/Online-Pharmacy/internal/api/handler"
	"github.com/Khursands/Online-Pharmacy/internal/middleware"
	"github.com/Khursands/Online-Pharmacy/internal/model"
)

// Setup 组装中间件与路由；limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter *middleware.IPRateLimiter) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Sentry())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/uploads"})))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.GET("/health", h.Health)
	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}
	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	if cfg.RateLimit.Enabled && limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	auth := middleware.Auth(cfg.JWT.Secret)

	{
		g := api.Group("/auth")
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
		g.GET("/profile", auth, h.GetProfile)
		g.PUT("/profile", auth, h.UpdateProfile)
	}
	{
		g := api.Group("/medicines")
		g.GET("", h.ListMedicines)
		g.GET("/featured", h.FeaturedMedicines)
		g.GET("/search", h.SearchMedicines)
		g.GET("/:id", h.GetMedicine)
		g.GET("/:id/reviews", h.ListReviews)
		g.POST("/:id/reviews", auth, h.CreateReview)
	}
	{
		g := api.Group("/categories")
		g.GET("", h.ListCategories)
		g.GET("/:id", h.GetCategory)
		g.GET("/:id/medicines", h.ListCategoryMedicines)
	}
	{
		g := api.Group("/cart", auth)
		g.GET("", h.GetCart)
		g.POST("", h.AddToCart)
		g.DELETE("", h.ClearCart)
		g.PUT("/:id", h.UpdateCartItem)
		g.DELETE("/:id", h.RemoveCartItem)
	}
	{
		g := api.Group("/orders", auth)
		g.POST("", h.PlaceOrder)
		g.GET("", h.ListOrders)
		g.GET("/:id", h.GetOrder)
	}
	{
		g := api.Group("/prescriptions", auth)
		g.POST("", h.UploadPrescription)
		g.GET("", h.ListPrescriptions)
		g.PUT("/:id/review", middleware.RequireRole(string(model.RolePharmacist), string(model.RoleAdmin)), h.ReviewPrescription)
	}

	r.NoRoute(h.NotFound)
	return r
}
