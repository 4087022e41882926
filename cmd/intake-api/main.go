package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/batch-intake-api/api/swagger"
	"github.com/noah-isme/batch-intake-api/internal/handler"
	"github.com/noah-isme/batch-intake-api/internal/middleware"
	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/internal/repository"
	"github.com/noah-isme/batch-intake-api/internal/service"
	"github.com/noah-isme/batch-intake-api/pkg/cache"
	"github.com/noah-isme/batch-intake-api/pkg/config"
	"github.com/noah-isme/batch-intake-api/pkg/database"
	"github.com/noah-isme/batch-intake-api/pkg/events"
	"github.com/noah-isme/batch-intake-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/batch-intake-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/batch-intake-api/pkg/middleware/requestid"
	"github.com/noah-isme/batch-intake-api/pkg/recordstore"
)

// @title Batch Intake API
// @version 1.0.0
// @description Public application intake and admin review dashboard
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type candidateStore interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	List(ctx context.Context) ([]models.Candidate, error)
	FindByID(ctx context.Context, id string) (*models.Candidate, error)
	UpdateFlag(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error)
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	err = run(cfg, logr)
	if err != nil {
		logr.Error("server exited with error", zap.Error(err))
	}
	_ = logr.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the application and serves until a shutdown signal arrives or the
// listener fails. Every resource it opens is released before it returns.
func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logr)
	if err != nil {
		return fmt.Errorf("open %s record store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "intake:")
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)

	var eventSvc *service.EventService
	if cfg.Events.Enabled {
		producer, err := events.NewProducer(cfg.Events)
		if err != nil {
			logr.Sugar().Warnw("event publishing disabled", "error", err)
		} else {
			defer producer.Close() //nolint:errcheck
			eventSvc = service.NewEventService(producer, metricsSvc, logr, service.EventServiceConfig{
				Workers:    cfg.Events.Workers,
				MaxRetries: cfg.Events.MaxRetries,
			})
			eventSvc.Start(ctx)
			defer eventSvc.Stop()
		}
	}

	validate := service.NewValidator()
	batchSvc := service.NewBatchService(cfg.Intake.BatchCount, nil)
	intakeSvc := service.NewIntakeService(store, batchSvc, eventSvc, cacheSvc, metricsSvc, validate, logr)
	reviewSvc := service.NewReviewService(store, cacheSvc, metricsSvc, logr, service.ReviewServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	routes := handler.Routes{
		APIPrefix: cfg.APIPrefix,
		Intake:    handler.NewIntakeHandler(intakeSvc),
		Review:    handler.NewReviewHandler(reviewSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
			"store": store.Ping,
			"cache": cacheRepo.Ping,
		}),
		IntakeGuard: middleware.RateLimit(middleware.NewIPLimiter(cfg.Intake.RateLimitPerMin, cfg.Intake.RateLimitBurst)),
	}
	if cfg.JWT.Enabled {
		authSvc := service.NewAuthService(logr, service.AuthConfig{
			Secret:   cfg.JWT.Secret,
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
		})
		routes.AdminGuard = middleware.JWT(authSvc)
	} else {
		logr.Warn("admin authentication disabled; dashboard routes are open")
	}
	handler.RegisterRoutes(r, routes)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openStore selects the candidate persistence backend. The REST driver never
// fails here: missing credentials yield a client whose calls report
// recordstore.ErrNotConfigured.
func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (candidateStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewCandidateRepository(db), func() { _ = db.Close() }, nil
	case config.StoreDriverREST, "":
		client := recordstore.New(recordstore.Options{URL: cfg.Store.URL, Key: cfg.Store.Key, Timeout: cfg.Store.Timeout})
		if !client.Configured() {
			logr.Warn("STORE_URL or STORE_KEY missing; record store calls will fail until configured")
		}
		return repository.NewCandidateRESTRepository(client, cfg.Store.Table), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
