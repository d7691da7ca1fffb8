package handler

import (
	"paylater-ledger/internal/adapter/http/middleware"
	redisStore "paylater-ledger/internal/adapter/storage/redis"
	"paylater-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	LedgerSvc      ports.LedgerService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", rl("auth_signup"), authHandler.Signup)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	customerHandler := NewCustomerHandler(deps.AccountSvc)
	customers := v1.Group("/customers")
	{
		customers.GET("", rl("accounts"), customerHandler.List)
	}

	merchantHandler := NewMerchantHandler(deps.AccountSvc)
	merchants := v1.Group("/merchants")
	{
		merchants.POST("", rl("accounts"), merchantHandler.Create)
		merchants.GET("", rl("accounts"), merchantHandler.List)
		merchants.PATCH("/:id/commission", rl("accounts"), merchantHandler.UpdateCommission)
	}

	transactionHandler := NewTransactionHandler(deps.LedgerSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.POST("", rl("transactions"), transactionHandler.Create)
		transactions.POST("/:id/repay", rl("transactions"), transactionHandler.Repay)
		transactions.GET("", rl("transactions"), transactionHandler.List)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	me := v1.Group("/auth", jwtAuth)
	{
		me.GET("/me", authHandler.Me)
	}

	return r
}
