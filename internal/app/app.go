package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/cart"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/catalog"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/config"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/event"
	handler "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/handler/http"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/memory"
	pgrepo "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/postgres"
	redisrepo "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/redis"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/repository/static"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/service"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/database"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/health"
	pkgkafka "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/kafka"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/middleware"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/tracing"
)

const serviceName = "storefront"

// initTracer is replaced in tests.
var initTracer = tracing.InitTracer

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	persister  *cart.AsyncPersister
	registry   *cart.Registry
	tracerStop tracing.ShutdownFunc
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	tracerStop, err := initTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.tracerStop = tracerStop

	snapshots, err := a.initSnapshotStorage(ctx, healthHandler)
	if err != nil {
		a.abort(ctx)
		return nil, err
	}

	products, err := a.initCatalog(ctx, healthHandler)
	if err != nil {
		a.abort(ctx)
		return nil, err
	}

	var publisher event.Publisher = event.NopPublisher{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, cfg.Currency, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	a.persister = cart.NewAsyncPersister(snapshots, cfg.PersistTimeout(), logger)
	a.registry = cart.NewRegistry(snapshots, a.persister, cfg.SessionIdle(), logger)
	catalogService := catalog.NewService(products, logger)
	cartService := service.NewCartService(a.registry, catalogService, publisher, cfg.Currency, logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(cartService, catalogService, healthHandler, handler.RouterConfig{
		CORS: cors,
		Session: handler.SessionConfig{
			CookieMaxAge: cfg.CartTTL(),
			CookieSecure: cfg.IsProduction(),
		},
		CatalogCacheAge: 60,
	}, logger)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

func (a *App) initSnapshotStorage(ctx context.Context, h *health.Handler) (repository.SnapshotRepository, error) {
	if a.cfg.CartStorage == config.StorageMemory {
		a.logger.Warn("cart storage is in-memory; carts are lost on restart")
		return memory.NewSnapshotRepository(), nil
	}

	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	h.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	a.logger.Info("connected to Redis",
		slog.String("addr", a.cfg.RedisAddr),
		slog.Int("db", a.cfg.RedisDB),
	)

	return redisrepo.NewSnapshotRepository(rdb, a.cfg.CartTTL()), nil
}

func (a *App) initCatalog(ctx context.Context, h *health.Handler) (repository.ProductRepository, error) {
	if a.cfg.CatalogSource == config.CatalogStatic {
		return static.NewProductRepository(static.SeedCatalog()), nil
	}

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     a.cfg.PostgresHost,
		Port:     a.cfg.PostgresPort,
		User:     a.cfg.PostgresUser,
		Password: a.cfg.PostgresPassword,
		DBName:   a.cfg.PostgresDB,
		SSLMode:  a.cfg.PostgresSSLMode,
		MaxConns: a.cfg.PostgresMaxConns,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool

	if err := database.RunMigrations(ctx, pool, pgrepo.Migrations(), a.logger); err != nil {
		return nil, fmt.Errorf("run catalog migrations: %w", err)
	}

	if err := prometheus.Register(database.NewPoolStatsCollector(pool, serviceName)); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("register pool metrics: %w", err)
		}
	}
	h.Register("postgres", pool.Ping)
	a.logger.Info("connected to PostgreSQL", slog.String("host", a.cfg.PostgresHost))

	return pgrepo.NewProductRepository(pool), nil
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the background workers and the HTTP server, and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	a.persister.Start()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go a.registry.Run(janitorCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. Pending cart snapshots are
// flushed after the HTTP server stops accepting requests.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.persister.Close(shutdownCtx); err != nil {
		a.logger.Error("cart snapshot flush error", slog.String("error", err.Error()))
	}

	a.closeResources()

	if err := a.tracerStop(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// abort releases whatever NewApp acquired before failing.
func (a *App) abort(ctx context.Context) {
	a.closeResources()
	if err := a.tracerStop(ctx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}
}

func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
