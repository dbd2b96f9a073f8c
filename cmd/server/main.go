package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/adapter/gateway"
	httpAdapter "github.com/iho/splitledger/internal/adapter/http"
	"github.com/iho/splitledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/splitledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/splitledger/internal/adapter/repository/redis"
	"github.com/iho/splitledger/internal/infrastructure/config"
	"github.com/iho/splitledger/internal/infrastructure/logger"
	"github.com/iho/splitledger/internal/infrastructure/metrics"
	"github.com/iho/splitledger/internal/infrastructure/postgres"
	"github.com/iho/splitledger/internal/infrastructure/redis"
	"github.com/iho/splitledger/internal/infrastructure/tracing"
	"github.com/iho/splitledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: logger.ServiceName,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	router := buildRouter(cfg, log, pool, redisClient, metrics.New())

	server := &http.Server{
		Addr:         serverAddr(cfg),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// buildRouter wires repositories, the provider client and use cases into the HTTP router.
func buildRouter(cfg *config.Config, log zerolog.Logger, pool *pgxpool.Pool, redisClient *goredis.Client, m *metrics.Metrics) http.Handler {
	// Repositories
	retrier := postgresRepo.NewRetrier(log)
	ledger := postgresRepo.NewTransactionRepository(pool, retrier)
	accounts := postgresRepo.NewAccountRepository(pool, retrier)
	conversions := postgresRepo.NewConversionRepository(pool, retrier)
	links := postgresRepo.NewSignupLinkRepository(pool, retrier)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Provider
	providerLog := log.With().Str("component", "provider").Logger()
	provider := gateway.NewClient(gatewayConfig(cfg),
		gateway.WithObserver(m),
		gateway.WithLogger(providerLog),
		gateway.WithCircuitBreaker(gateway.NewCircuitBreaker("provider", providerLog)),
	)

	// Use cases
	resolver := usecase.NewAccountResolver(accounts, provider, cache, cfg.AccountCacheTTL, log)
	identities := usecase.NewIdentityResolver(conversions, m, log)
	engine := usecase.NewReconciliationEngine(ledger, provider, accounts, resolver, identities, links,
		usecase.ReconciliationConfig{PageLimit: cfg.ProviderPageLimit}, m, log)
	reports := usecase.NewReportUseCase(engine, resolver, log)
	charges := usecase.NewChargeUseCase(resolver, provider, idGen, cfg.DefaultSplitPercentage, log)

	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler: handler.NewReportHandler(reports, log),
		SplitHandler:  handler.NewSplitHandler(charges),
		ChargeHandler: handler.NewChargeHandler(charges, log),
		HealthHandler: handler.NewHealthHandler(
			pool,
			handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log,
	})
}

func gatewayConfig(cfg *config.Config) gateway.Config {
	return gateway.Config{
		BaseURL:        cfg.ProviderBaseURL,
		APIKey:         cfg.ProviderAPIKey,
		Timeout:        cfg.ProviderTimeout,
		MaxRetries:     cfg.ProviderMaxRetries,
		InitialBackoff: cfg.ProviderInitialBackoff,
	}
}

func serverAddr(cfg *config.Config) string {
	return ":" + cfg.HTTPPort
}
