package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/limaJavier/classgrid/internal/handler"
	internalmiddleware "github.com/limaJavier/classgrid/internal/middleware"
	"github.com/limaJavier/classgrid/internal/models"
	"github.com/limaJavier/classgrid/internal/repository"
	"github.com/limaJavier/classgrid/internal/service"
	"github.com/limaJavier/classgrid/pkg/cache"
	"github.com/limaJavier/classgrid/pkg/config"
	"github.com/limaJavier/classgrid/pkg/database"
	"github.com/limaJavier/classgrid/pkg/logger"
	reqidmiddleware "github.com/limaJavier/classgrid/pkg/middleware/requestid"
	"github.com/limaJavier/classgrid/pkg/model"
)

type timetableStore interface {
	Save(ctx context.Context, record *models.TimetableRecord) error
	Get(ctx context.Context, id string) (*models.TimetableRecord, error)
	Delete(ctx context.Context, id string) error
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
	defer logr.Sync() //nolint:errcheck

	store, closeStore, err := openStore(cfg, logr)
	if err != nil {
		logr.Fatal("failed to open timetable store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	metrics := service.NewMetricsService()
	timetables := service.NewTimetableService(store, metrics, model.NewValidator(), logr, service.TimetableServiceConfig{
		Strategy:     cfg.Engine.Strategy,
		Attempts:     cfg.Engine.Attempts,
		Seed:         cfg.Engine.Seed,
		ConflictMode: cfg.Engine.ConflictMode,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metrics, "/metrics", "/health"))

	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	handler.NewTimetableHandler(timetables).Register(api)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"store", cfg.Store.Driver,
		"strategy", cfg.Engine.Strategy,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func openStore(cfg *config.Config, logr *zap.Logger) (timetableStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewCacheRepository(client, cfg.Store.TTL, logr)
		return repo, func() { _ = repo.Close() }, nil
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewTimetableRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil
	case config.StoreMemory, "":
		return repository.NewMemoryRepository(cfg.Store.TTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
