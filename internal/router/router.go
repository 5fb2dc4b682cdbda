package router

import (
	"net/http"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/config"
	"github.com/snc99/Pay-Wise-BE/internal/handler"
	"github.com/snc99/Pay-Wise-BE/internal/middleware"
	"github.com/snc99/Pay-Wise-BE/internal/model"
	"github.com/snc99/Pay-Wise-BE/internal/repository"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"
	"github.com/snc99/Pay-Wise-BE/internal/session"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(200, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	sessions := session.NewRedisStore(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokenSvc := service.NewTokenService(cfg)
	authSvc := service.NewAuthService(adminRepo, tokenSvc, sessions)
	adminSvc := service.NewAdminService(adminRepo, sessions)
	customerSvc := service.NewCustomerService(customerRepo)
	debtSvc := service.NewDebtService(debtRepo, customerRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, debtRepo, customerRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, tokenSvc)
	adminsH := handler.NewAdminsHandler(adminSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	debtsH := handler.NewDebtsHandler(debtSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public). Logout stays public so expired tokens can still be
	// revoked.
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// Public unpaid-debt board
	api.GET("/debt/public", debtsH.Public)

	// Protected routes
	authMW := middleware.Authenticate(tokenSvc, sessions)
	anyAdmin := middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
	superOnly := middleware.RequireRole(model.RoleSuperAdmin)

	protected := api.Group("", authMW)
	{
		protected.GET("/auth/me", anyAdmin, authH.Profile)

		// Admin accounts — superadmin only
		admins := protected.Group("/admin", superOnly)
		{
			admins.GET("", adminsH.List)
			admins.POST("", adminsH.Create)
			admins.PUT("/:id", adminsH.Update)
			admins.DELETE("/:id", adminsH.Delete)
		}

		users := protected.Group("/user", anyAdmin)
		{
			users.GET("", customersH.List)
			users.GET("/search", customersH.Search)
			users.POST("", customersH.Create)
			users.PUT("/:id", customersH.Update)
			users.DELETE("/:id", customersH.Delete)
		}

		debts := protected.Group("/debt", anyAdmin)
		{
			debts.GET("", debtsH.List)
			debts.GET("/open", debtsH.ListOpen)
			debts.POST("", debtsH.Create)
			debts.DELETE("/:id", debtsH.Delete)
		}

		payments := protected.Group("/payment", anyAdmin)
		{
			payments.GET("", paymentsH.List)
			payments.GET("/history", paymentsH.ListDeleted)
			payments.POST("", paymentsH.Create)
			payments.DELETE("/:id", paymentsH.Delete)
		}

		dashboard := protected.Group("/dashboard", anyAdmin)
		{
			dashboard.GET("/cards", dashboardH.Cards)
			dashboard.GET("/compare", dashboardH.Comparison)
			dashboard.GET("/trends/daily-payments", dashboardH.Trend)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Err(c, http.StatusNotFound, "Endpoint tidak ditemukan.")
	})

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
