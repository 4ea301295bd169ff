package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/bizops/ledger/docs"
	approvalapp "github.com/bizops/ledger/internal/application/approval"
	assetapp "github.com/bizops/ledger/internal/application/asset"
	attachmentapp "github.com/bizops/ledger/internal/application/attachment"
	liabilityapp "github.com/bizops/ledger/internal/application/liability"
	paymentapp "github.com/bizops/ledger/internal/application/payment"
	txnapp "github.com/bizops/ledger/internal/application/transaction"
	"github.com/bizops/ledger/internal/domain/shared"
	"github.com/bizops/ledger/internal/infrastructure/auth"
	"github.com/bizops/ledger/internal/infrastructure/cache"
	"github.com/bizops/ledger/internal/infrastructure/config"
	"github.com/bizops/ledger/internal/infrastructure/logger"
	"github.com/bizops/ledger/internal/infrastructure/persistence"
	"github.com/bizops/ledger/internal/infrastructure/storage"
	"github.com/bizops/ledger/internal/infrastructure/telemetry"
	"github.com/bizops/ledger/internal/interfaces/http/handler"
	"github.com/bizops/ledger/internal/interfaces/http/middleware"
	"github.com/bizops/ledger/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

//	@title			Ledger API
//	@version		1.0
//	@description	Company operations ledger: transactions, payments, approvals, liabilities and the asset lifecycle

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() { _ = logsProvider.Shutdown(context.Background()) }()
	log = logsProvider.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilerBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilerBasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		LinkProfiles:      profiler.IsEnabled(),
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	meter := meterProvider.Meter("github.com/bizops/ledger")

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	switch schema, dirty, err := db.SchemaVersion(ctx); {
	case err != nil:
		log.Fatal("Database schema unavailable; run cmd/migrate up", zap.Error(err))
	case dirty:
		log.Fatal("Database schema is dirty; fix and force it with cmd/migrate", zap.Uint("version", schema))
	default:
		log.Info("Database connected", zap.Uint("schema_version", schema))
	}

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowQueryThresh,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		reg, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
		if err != nil {
			log.Warn("Database pool metrics unavailable", zap.Error(err))
		} else {
			defer func() { _ = reg.Unregister() }()
		}
	}

	ledgerMetrics, err := telemetry.NewLedgerMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}

	// Redis is optional; without it duplicate submissions and revoked
	// tokens are only tracked per instance.
	var (
		idempotencyStore shared.IdempotencyStore
		revocations      auth.RevocationList = auth.NewInMemoryRevocationList()
	)
	if cfg.Redis.Host != "" {
		idempotencyStore, err = cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		).CreateStore(ctx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		if redisStore, ok := idempotencyStore.(*cache.RedisIdempotencyStore); ok {
			revocations = auth.NewRedisRevocationList(redisStore.GetClient())
		}
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}
	defer func() { _ = idempotencyStore.Close() }()

	objectStorage, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize attachment storage", zap.Error(err))
	}

	repos := persistence.NewRepositories(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	assetService := assetapp.NewAssetService(repos, txScope)
	assetService.SetMetrics(ledgerMetrics)
	liabilityService := liabilityapp.NewLiabilityService(repos, txScope)
	liabilityService.SetMetrics(ledgerMetrics)
	paymentService := paymentapp.NewPaymentService(repos, txScope)
	paymentService.SetMetrics(ledgerMetrics)
	approvalService := approvalapp.NewApprovalService(repos, txScope)
	approvalService.SetMetrics(ledgerMetrics)
	transactionService := txnapp.NewTransactionService(repos, txScope)
	transactionService.SetMetrics(ledgerMetrics)
	transactionService.SetIdempotencyStore(idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Ledger.IdempotencyEnabled,
		TTL:     cfg.Ledger.IdempotencyTTL,
	})
	attachmentService := attachmentapp.NewService(objectStorage, cfg.Storage.MaxUploadSize)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	jwtService := auth.NewJWTService(cfg.JWT)
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revocations = revocations
	jwtConfig.Logger = log

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine := router.NewEngine(router.EngineConfig{
		Logger: log,
		CORS:   cors,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		MeterProvider: meterProvider,
		MaxBodySize:   cfg.HTTP.MaxBodySize,
		Auth:          middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
	}, router.Handlers{
		System:       handler.NewSystemHandler(db, version),
		Assets:       handler.NewAssetHandler(assetService),
		Liabilities:  handler.NewLiabilityHandler(liabilityService),
		Payments:     handler.NewPaymentHandler(paymentService),
		Approvals:    handler.NewApprovalHandler(approvalService),
		Transactions: handler.NewTransactionHandler(transactionService),
		Attachments:  handler.NewAttachmentHandler(attachmentService),
	})
	if cfg.HTTP.SwaggerEnabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:     true,
				RequireAuth: cfg.HTTP.SwaggerRequireAuth,
				AllowedIPs:  cfg.HTTP.SwaggerAllowedIPs,
			}, middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
			ginSwagger.WrapHandler(swaggerFiles.Handler))
		log.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newObjectStorage returns S3 storage with its bucket ensured, or the
// in-process stub
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (attachmentapp.ObjectStorage, error) {
	if cfg.Storage.Provider != "s3" {
		log.Warn("Using stub attachment storage; uploads are kept in memory")
		return storage.NewStubObjectStorage(cfg.Storage.PublicURL), nil
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s3.EnsureBucket(ensureCtx); err != nil {
		return nil, err
	}
	return s3, nil
}
