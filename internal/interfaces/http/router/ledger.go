package router

import (
	"net/http"

	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"github.com/bizops/ledger/internal/interfaces/http/dto"
	"github.com/bizops/ledger/internal/interfaces/http/handler"
	"github.com/bizops/ledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers are the ledger's HTTP handlers
type Handlers struct {
	System       *handler.SystemHandler
	Assets       *handler.AssetHandler
	Liabilities  *handler.LiabilityHandler
	Payments     *handler.PaymentHandler
	Approvals    *handler.ApprovalHandler
	Transactions *handler.TransactionHandler
	Attachments  *handler.AttachmentHandler
}

// EngineConfig holds what the engine's middleware chain needs
type EngineConfig struct {
	Logger  *zap.Logger
	CORS    middleware.CORSConfig
	Tracing middleware.TracingConfig
	// MeterProvider may be nil; HTTP metrics are then skipped
	MeterProvider *telemetry.MeterProvider
	MaxBodySize   int64
	// Auth guards /api/v1. Nil leaves the API open, which only tests do.
	Auth gin.HandlerFunc
}

// NewEngine builds the gin engine with the middleware chain and every
// ledger route. Order: recovery, request id, tracing, request log, CORS,
// security headers, body limit, metrics; auth applies to /api/v1 only.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.TracingWithConfig(cfg.Tracing),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.Secure(),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	engine.Use(middleware.HTTPMetrics(cfg.MeterProvider))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	var apiMiddleware []gin.HandlerFunc
	if cfg.Auth != nil {
		apiMiddleware = append(apiMiddleware, cfg.Auth)
	}
	apiMiddleware = append(apiMiddleware, middleware.TracingAttributeInjector())

	NewRouter(engine, WithMiddleware(apiMiddleware...)).
		Register(LedgerRoutes(h)...).
		Setup()

	return engine
}

// LedgerRoutes returns one DomainGroup per resource
func LedgerRoutes(h Handlers) []RouteRegistrar {
	var groups []RouteRegistrar

	if h.System != nil {
		groups = append(groups,
			NewDomainGroup("health", "/health").GET("", h.System.Health),
			NewDomainGroup("system", "/system").GET("/info", h.System.GetSystemInfo),
		)
	}

	if h.Assets != nil {
		assets := NewDomainGroup("assets", "/assets")
		assets.GET("", h.Assets.List)
		assets.GET("/:id", h.Assets.Get)
		assets.POST("/:id/maintenance", h.Assets.ScheduleMaintenance)
		assets.POST("/:id/disposal", h.Assets.RequestDisposal)
		assets.POST("/:id/depreciation", h.Assets.AddDepreciation)
		assets.GET("/:id/depreciation", h.Assets.ListDepreciation)
		assets.PUT("/:id/assignment", h.Assets.Assign)
		assets.DELETE("/:id/assignment", h.Assets.Unassign)
		groups = append(groups, assets)
	}

	if h.Liabilities != nil {
		groups = append(groups, NewDomainGroup("liabilities", "/liabilities").
			POST("", h.Liabilities.Create).
			GET("", h.Liabilities.List).
			GET("/:id", h.Liabilities.Get))
	}

	if h.Payments != nil {
		payments := NewDomainGroup("payments", "/payments")
		payments.GET("/:id", h.Payments.Get)
		payments.Group("vendor-payments", "/vendor").POST("", h.Payments.CreateVendor)
		payments.Group("customer-payments", "/customer").POST("", h.Payments.CreateCustomer)
		groups = append(groups, payments)
	}

	if h.Approvals != nil {
		groups = append(groups, NewDomainGroup("approvals", "/approvals").
			POST("", h.Approvals.Create).
			GET("/:id", h.Approvals.Get).
			POST("/:id/approve", h.Approvals.Approve).
			POST("/:id/reject", h.Approvals.Reject))
	}

	if h.Transactions != nil {
		groups = append(groups, NewDomainGroup("transactions", "/transactions").
			Use(middleware.IdempotencyKey()).
			POST("/purchase", h.Transactions.CreatePurchase).
			POST("/sale", h.Transactions.CreateSale).
			POST("/internal", h.Transactions.CreateInternal).
			GET("/:kind", h.Transactions.List).
			GET("/:kind/:id", h.Transactions.Get))
	}

	if h.Attachments != nil {
		groups = append(groups, NewDomainGroup("attachments", "/attachments").
			POST("", h.Attachments.Upload))
	}

	return groups
}
