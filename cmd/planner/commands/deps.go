package commands

import (
	"context"
	"fmt"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/internal/analytics"
	"github.com/dwkang/goalplanner/internal/contracts"
	"github.com/dwkang/goalplanner/internal/external"
	"github.com/dwkang/goalplanner/internal/external/coingecko"
	"github.com/dwkang/goalplanner/internal/external/yahoo"
	"github.com/dwkang/goalplanner/internal/forecast"
	"github.com/dwkang/goalplanner/internal/planning"
	"github.com/dwkang/goalplanner/internal/selection"
	"github.com/dwkang/goalplanner/internal/store"
	"github.com/dwkang/goalplanner/pkg/config"
	"github.com/dwkang/goalplanner/pkg/database"
	"github.com/dwkang/goalplanner/pkg/httputil"
	"github.com/dwkang/goalplanner/pkg/logger"
	"github.com/dwkang/goalplanner/pkg/redis"
)

// runtime bundles the wired dependencies shared by all commands.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	advisor *advisor.Advisor
	engine  *analytics.Engine
	store   contracts.PriceStore
	close   func()
}

// initRuntime loads config and builds the logger. Used by commands that
// need no database.
func initRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}

// buildRuntime wires the full dependency graph: database, cache,
// external clients, and the advisor on top of them.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, log, err := initRuntime()
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if health, err := db.HealthCheck(ctx); err == nil {
		log.WithFields(map[string]interface{}{
			"response_time": health.ResponseTime,
			"total_conns":   health.Stats.TotalConns,
		}).Debug("Database health check passed")
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	repo := store.NewPriceRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	zlog := log.Zerolog()
	cache := redis.NewCache(redisClient, "goalplanner")
	cachedStore := store.NewCachedStore(repo, cache, zlog)

	yahooClient := yahoo.NewClient(cfg.Yahoo,
		httputil.New(log).WithRateLimit(cfg.Yahoo.RequestsPerSec), zlog)
	coingeckoClient := coingecko.NewClient(cfg.CoinGecko,
		httputil.New(log).WithRateLimit(cfg.CoinGecko.RequestsPerSec), zlog)
	fetcher := external.NewRoutingFetcher(yahooClient, coingeckoClient, nil)

	engine := analytics.NewEngine(zlog)
	adv := advisor.New(
		cachedStore,
		fetcher,
		engine,
		selection.NewRanker(zlog),
		planning.NewPlanner(zlog),
		forecast.NewForecaster(zlog),
		cfg.HistoryYears,
		zlog,
	)

	return &runtime{
		cfg:     cfg,
		log:     log,
		advisor: adv,
		engine:  engine,
		store:   cachedStore,
		close: func() {
			redisClient.Close()
			db.Close()
		},
	}, nil
}

// symbolsOrDefault falls back to the configured default instrument set.
func symbolsOrDefault(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.DefaultSymbols
}
