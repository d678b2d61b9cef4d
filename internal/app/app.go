package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/fyyur/internal/config"
	"github.com/kirinyoku/fyyur/internal/postgres"
	redisx "github.com/kirinyoku/fyyur/internal/redis"
	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/fyyur/internal/repository/redis"
	"github.com/kirinyoku/fyyur/internal/service"
	"github.com/kirinyoku/fyyur/internal/service/query"
	httpgin "github.com/kirinyoku/fyyur/internal/transport/http/gin"
)

const (
	flashTTL      = 10 * time.Minute
	formTokenTTL  = 2 * time.Hour
	shutdownAfter = 5 * time.Second
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *redis.Client
	httpServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pgxPool, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN(),
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if err := postgres.Migrate(ctx, pgxPool); err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	rdb, err := redisx.New(ctx, redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)

	// Initialize services
	services := service.NewServices(store, cache, service.Config{
		Query: query.Config{
			EntityTTL: cfg.App.CacheTTL,
			Location:  cfg.App.Location,
		},
	})

	deps := httpgin.Deps{
		Catalog:     services.Query,
		Booking:     services.Admin,
		Flashes:     redisrepo.NewFlashStore(rdb, flashTTL),
		Guard:       redisrepo.NewSubmissionGuard(rdb, formTokenTTL),
		Logger:      logger,
		CORSOrigins: cfg.App.CORSOrigins,
	}
	if cfg.App.RateLimitPerMinute > 0 {
		deps.Limiter = redisrepo.NewWindowLimiter(rdb, "forms", cfg.App.RateLimitPerMinute, time.Minute)
	}

	if cfg.App.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httpgin.NewRouter(deps)

	return &App{
		cfg:    cfg,
		logger: logger,
		pool:   pgxPool,
		rdb:    rdb,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownAfter)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

func (a *App) close() {
	if err := a.rdb.Close(); err != nil {
		a.logger.Warn("failed to close redis client", "error", err)
	}
	a.pool.Close()
}
