package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/soccerhub/account-service/docs"
	"github.com/soccerhub/account-service/internal/api/handler"
	"github.com/soccerhub/account-service/internal/api/middleware"
	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
	"github.com/soccerhub/account-service/internal/core/service"
	mongodb "github.com/soccerhub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/soccerhub/account-service/internal/infrastructure/db/redis"
	"github.com/soccerhub/account-service/internal/infrastructure/hash"
	"github.com/soccerhub/account-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	hasher := hash.NewBcryptHasher()
	accountRepo := mongodb.NewAccountRepository(db)
	accountService := service.NewAccountService(accountRepo, hasher, audit, log)
	accountValidator := service.NewAccountValidator(accountRepo)
	throttle := redisdb.NewLoginThrottle(rdb)
	tokenService := service.NewTokenService(accountService, hasher, throttle, cfg.JWTSecret, cfg.TokenTTL, log)

	accountHandler := handler.NewAccountHandler(accountService, accountValidator)
	auditHandler := handler.NewAuditHandler(accountService, mongodb.NewAuditRepository(db))
	tokenHandler := handler.NewTokenHandler(tokenService, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret)
	indexHandler := handler.NewIndexHandler()
	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(string(domain.RoleAdmin))

	// --- OAuth2 token endpoint (client-authenticated, no bearer token) ---
	e.POST("/oauth/token", tokenHandler.Token)

	// --- API entry point ---
	e.GET("/api", indexHandler.Index)

	// --- Account routes (bearer token required) ---
	accounts := e.Group("/api/accounts", auth)
	accounts.POST("", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.GET("/:id/audit", auditHandler.List, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
