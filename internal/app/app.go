package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportdata/external/cbssports"
	"github.com/riskibarqy/sportdata/internal/config"
	"github.com/riskibarqy/sportdata/internal/domain/player"
	repocache "github.com/riskibarqy/sportdata/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/sportdata/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sportdata/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sportdata/internal/interfaces/httpapi"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/riskibarqy/sportdata/internal/platform/resilience"
	"github.com/riskibarqy/sportdata/internal/usecase"
)

// App owns the HTTP server and the background resources behind it.
type App struct {
	Server    *http.Server
	scheduler *usecase.RefreshScheduler
	db        *sqlx.DB
	logger    *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repo, db, err := newPlayerRepository(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		repo = repocache.NewPlayerRepository(repo, cfg.CacheTTL)
	}

	feed := cbssports.NewClient(cbssports.ClientConfig{
		BaseURL:      cfg.FeedBaseURL,
		Timeout:      cfg.FeedTimeout,
		MaxRetries:   cfg.FeedMaxRetries,
		RetryBackoff: cfg.FeedRetryBackoff,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	repopulation := usecase.NewRepopulationService(feed, repo, logger)
	scheduler, err := usecase.NewRefreshScheduler(repopulation, usecase.RefreshSchedulerConfig{
		Workers: cfg.RefreshWorkers,
		Timeout: cfg.RefreshTimeout,
	}, logger)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("build refresh scheduler: %w", err)
	}

	freshness := usecase.NewFreshnessMonitor(repo, scheduler, logger)
	searchSvc := usecase.NewSearchService(freshness, repo, usecase.NewEnricher(repo), logger)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.SearchUpstreamURL != "" {
		proxy, err := httpapi.NewSearchProxy(httpapi.SearchProxyConfig{
			UpstreamURL: cfg.SearchUpstreamURL,
			Timeout:     cfg.SearchUpstreamTimeout,
			Logger:      logger,
		})
		if err != nil {
			_ = scheduler.Close(context.Background())
			closeDB(db)
			return nil, fmt.Errorf("build search proxy: %w", err)
		}
		routerCfg.SearchProxy = proxy
	}

	handler := httpapi.NewHandler(searchSvc, logger).WithRetryAfter(cfg.RetryAfter)
	router := httpapi.NewRouter(handler, logger, routerCfg)

	logger.Info("app wired",
		"store_driver", cfg.StoreDriver,
		"player_ttl", cfg.PlayerTTL,
		"aggregate_cache", cfg.CacheEnabled,
		"refresh_workers", cfg.RefreshWorkers,
		"proxy_enabled", routerCfg.SearchProxy != nil,
	)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		scheduler: scheduler,
		db:        db,
		logger:    logger,
	}, nil
}

func newPlayerRepository(cfg config.Config) (player.Repository, *sqlx.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return memory.NewPlayerRepository(cfg.PlayerTTL), nil, nil
	case config.StoreDriverPostgres, "":
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPlayerRepository(db, cfg.PlayerTTL), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Shutdown drains HTTP traffic, abandons outstanding refreshes and closes the
// database handle.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.scheduler.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close refresh scheduler: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	a.logger.Info("app stopped")
	return errors.Join(errs...)
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
