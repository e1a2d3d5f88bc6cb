package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/adapter/api/validator"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Transactions *handler.TransactionHandler
	Workflow     *handler.WorkflowHandler
	Health       *handler.HealthHandler
}

// Options configures the cross-cutting parts of the router
type Options struct {
	Auth        config.AuthConfig
	CORS        config.CORSConfig
	RateLimiter *limiter.Limiter // nil disables rate limiting
	HTTPMetrics middleware.HTTPObserver
	MetricsPath string
	Metrics     http.Handler // nil disables the metrics endpoint
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, opts Options, logger coreport.Logger) {
	router.GET("/health", h.Health.Health)
	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.Metrics))
	}

	api := router.Group("/transactions")
	api.Use(middleware.Authenticate(opts.Auth.JWTSecret, opts.Auth.Issuer, logger))

	write := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if opts.RateLimiter == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{middleware.RateLimit(opts.RateLimiter, logger), next}
	}

	// Transaction records
	api.GET("", h.Transactions.List)
	api.POST("", write(h.Transactions.Create)...)
	api.GET("/:id", h.Transactions.Get)
	api.DELETE("/:id", write(h.Transactions.Delete)...)

	// Validation workflow
	api.POST("/:id/transition", write(h.Workflow.Transition)...)
	api.GET("/:id/history", h.Workflow.History)
	api.GET("/:id/allowed-actions", h.Workflow.AllowedActions)
	api.GET("/:id/audit", h.Workflow.Audit)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, opts Options, logger coreport.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(opts.CORS))
	if opts.HTTPMetrics != nil {
		router.Use(middleware.Metrics(opts.HTTPMetrics))
	}
}

// NewRouter builds a gin engine with middlewares and routes installed
func NewRouter(h Handlers, opts Options, logger coreport.Logger) *gin.Engine {
	validator.Register()

	router := gin.New()
	SetupMiddlewares(router, opts, logger)
	SetupRoutes(router, h, opts, logger)
	return router
}
