package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port     int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
		User     string `env:"POSTGRES_USER"`
		Pass     string `env:"POSTGRES_PASS"`
		Name     string `env:"POSTGRES_NAME"`
		SslMode  string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
		MaxConns int32  `env:"POSTGRES_MAX_CONNS" env-default:"10"`
	}
	ContentAPI struct {
		Key      string        `env:"CONTENT_API_KEY" env-description:"API key for the content scraping API"`
		BaseURL  string        `env:"CONTENT_API_BASE_URL" env-default:"https://api.scrapecreators.com"`
		Timeout  time.Duration `env:"CONTENT_API_TIMEOUT" env-default:"10s"`
		CacheTTL time.Duration `env:"CONTENT_API_CACHE_TTL" env-default:"1h"`
	}
	Redis struct {
		Addr     string `env:"REDIS_ADDR" env-description:"leave empty to disable response caching"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
	}
	Ingest struct {
		TargetBoardID    string        `env:"INGEST_TARGET_BOARD_ID"`
		InterItemDelayMs int           `env:"INGEST_DELAY_MS" env-default:"2000"`
		StartOffset      int           `env:"INGEST_START_OFFSET" env-default:"0"`
		RetryAttempts    uint64        `env:"INGEST_RETRY_ATTEMPTS" env-default:"0" env-description:"0 disables retries"`
		RetryInterval    time.Duration `env:"INGEST_RETRY_INTERVAL" env-default:"500ms"`
		SaveRateLimit    time.Duration `env:"INGEST_SAVE_RATE_LIMIT" env-default:"5s"`
	}
	Transcript struct {
		Cron      string `env:"TRANSCRIPT_BACKFILL_CRON" env-default:"0 */6 * * *"`
		BatchSize int    `env:"TRANSCRIPT_BACKFILL_BATCH" env-default:"25"`
		DelayMs   int    `env:"TRANSCRIPT_BACKFILL_DELAY_MS" env-default:"2000"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN" env-description:"leave empty to disable the operator bot"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

func New() (*Config, error) {
	once.Do(func() {
		c := &Config{}
		if err := cleanenv.ReadEnv(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			loadErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, loadErr
}

// GetDSN returns a keyword/value DSN usable by both lib/pq and pgxpool.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}
