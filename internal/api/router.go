package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/k8automation/marketing-api/docs"
	"github.com/k8automation/marketing-api/internal/api/handler"
	"github.com/k8automation/marketing-api/internal/api/middleware"
	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/service"
	"github.com/k8automation/marketing-api/internal/core/token"
	"github.com/k8automation/marketing-api/internal/infrastructure/config"
	mongorepo "github.com/k8automation/marketing-api/internal/infrastructure/db/mongo"
	redisdedup "github.com/k8automation/marketing-api/internal/infrastructure/db/redis"
	"github.com/k8automation/marketing-api/internal/infrastructure/notifier"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("10K"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("marketing"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL, nil)
	userRepo := mongorepo.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, codec, log)
	authHandler := handler.NewAuthHandler(authService)

	leadRepo := mongorepo.NewLeadRepository(db)
	dedup := redisdedup.NewDedupChecker(rdb, cfg.Redis.DedupTTL)
	var leadNotifier service.LeadNotifier
	if cfg.Webhook.URL != "" {
		leadNotifier = notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)
	}
	leadService := service.NewLeadService(leadRepo, dedup, leadNotifier, log)
	leadHandler := handler.NewLeadHandler(leadService)

	authenticated := middleware.Auth(authService)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleFullAdmin)
	fullAdminOnly := middleware.RBAC(domain.RoleFullAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authenticated)
	auth.GET("/me", authHandler.Me, authenticated)

	// --- Contact/lead routes ---
	contacts := e.Group("/api/contacts")
	contacts.POST("", leadHandler.Submit)
	contacts.GET("", leadHandler.List, authenticated, adminOnly)
	contacts.PUT("/:id/status", leadHandler.UpdateStatus, authenticated, adminOnly)
	contacts.DELETE("/:id", leadHandler.Delete, authenticated, fullAdminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
