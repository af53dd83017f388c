package pgx

import (
	"context"
	"fmt"

	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// New builds the shared pool. The first connection is made on fx start so a
// dry run never touches Postgres.
func New(opts Opts) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(opts.Config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if opts.Config.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = opts.Config.Postgres.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	log := opts.Logger.WithComponent("Postgres")
	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				return fmt.Errorf("failed to ping postgres: %w", err)
			}
			log.Info("Connected to postgres",
				"host", opts.Config.Postgres.Host,
				"db", opts.Config.Postgres.Name,
				"max_conns", poolCfg.MaxConns,
			)
			return nil
		},
		OnStop: func(context.Context) error {
			stat := pool.Stat()
			log.Debug("Closing postgres pool", "acquired", stat.AcquiredConns(), "total", stat.TotalConns())
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
