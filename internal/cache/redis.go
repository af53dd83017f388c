package cache

import (
	"context"
	"errors"
	"time"

	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const keyPrefix = "narra:"

type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

var _ Cache = (*Redis)(nil)

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, keyPrefix+key, value, ttl).Err()
}

type Opts struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
}

// New returns a Redis-backed cache, or Noop when no address is configured.
func New(opts Opts) (Cache, error) {
	log := opts.Logger.WithComponent("Cache")
	if opts.Config.Redis.Addr == "" {
		log.Info("Redis address not set, response caching disabled")
		return Noop{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Config.Redis.Addr,
		Password: opts.Config.Redis.Password,
		DB:       opts.Config.Redis.DB,
	})

	opts.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return err
			}
			log.Info("Connected to Redis", "addr", opts.Config.Redis.Addr)
			return nil
		},
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})

	return NewRedis(rdb), nil
}

var Module = fx.Module("cache", fx.Provide(New))
