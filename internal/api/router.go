package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetcare/accounts-api/internal/api/handler"
	"github.com/vetcare/accounts-api/internal/api/middleware"
	"github.com/vetcare/accounts-api/internal/core/domain"
	"github.com/vetcare/accounts-api/internal/core/ports"
	"github.com/vetcare/accounts-api/internal/core/service"
	"github.com/vetcare/accounts-api/internal/infrastructure/config"
	mongodb "github.com/vetcare/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vetcare/accounts-api/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs to assemble the handler chain.
type Deps struct {
	DB    *mongo.Database
	Redis *redis.Client
	Cfg   *config.Config
	Audit ports.AuditSink
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{deps.Cfg.ClientOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	issuer := service.NewJWTIssuer(deps.Cfg.JWTSecret, deps.Cfg.TokenTTL)
	lockout := domain.NewLockoutPolicy(deps.Cfg.LockoutThreshold, deps.Cfg.LockoutDuration)
	userService := service.NewUserService(userRepo, issuer, lockout, deps.Log)
	userHandler := handler.NewUserHandler(userService, deps.Audit)

	authMiddleware := middleware.Auth(deps.Cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	loginLimiter := redisdb.NewLoginLimiter(deps.Redis, deps.Cfg.LoginRateLimit, deps.Cfg.LoginRateWindow)
	rateLimit := middleware.LoginRateLimit(loginLimiter, deps.Log)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", userHandler.Register)
	users.POST("/login", userHandler.Login, rateLimit)
	users.GET("/profile", userHandler.GetProfile, authMiddleware)
	users.PUT("/profile", userHandler.UpdateProfile, authMiddleware)
	users.GET("", userHandler.ListUsers, authMiddleware, adminOnly)
	// Static /stats takes routing priority over /:id, so "stats" never parses as an id.
	users.GET("/stats", userHandler.Stats, authMiddleware, adminOnly)
	users.GET("/:id", userHandler.GetUser, authMiddleware, adminOnly)
	users.PUT("/:id", userHandler.UpdateUser, authMiddleware, adminOnly)
	users.DELETE("/:id", userHandler.DeleteUser, authMiddleware, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
