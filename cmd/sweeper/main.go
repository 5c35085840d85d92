// Command sweeper expires donation orders abandoned before checkout.
// Records stuck in created status longer than ORDER_TTL are moved to
// failed so the store never accumulates permanently open orders.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pawhaven/internal/infra"
	"pawhaven/internal/sqlinline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("sweeper: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	logger.Info().Dur("interval", cfg.SweepInterval).Dur("ttl", cfg.OrderTTL).Msg("sweeper started")
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		sweep(ctx, runner, cfg.OrderTTL, logger)
		select {
		case <-ctx.Done():
			logger.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

func sweep(ctx context.Context, runner *infra.SQLRunner, ttl time.Duration, logger infra.Logger) {
	cutoff := time.Now().UTC().Add(-ttl)
	tag, err := runner.Exec(ctx, sqlinline.QExpireStaleDonations, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error().Err(err).Msg("sweep failed")
		}
		return
	}
	if n := tag.RowsAffected(); n > 0 {
		logger.Info().Int64("expired", n).Msg("stale donation orders marked failed")
	}
}
