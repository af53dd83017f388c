package ingest

import (
	"errors"
	"time"

	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/retry"
)

var ErrNoTargetBoard = errors.New("target board id is required")

// Config is everything a batch run needs. It is built once by the caller
// and never read from the environment by the processor itself.
type Config struct {
	APIKey           string
	BaseURL          string
	TargetBoardID    string
	InterItemDelayMs int
	StartOffset      int

	// FetchTimeout bounds every content API call. Zero means no bound
	// beyond the HTTP client's own.
	FetchTimeout time.Duration
	// Retry wraps fetches and writes. The zero value performs no retries.
	Retry retry.Config
}

func (c Config) InterItemDelay() time.Duration {
	return time.Duration(c.InterItemDelayMs) * time.Millisecond
}

func (c Config) Validate() error {
	if c.TargetBoardID == "" {
		return ErrNoTargetBoard
	}
	if c.InterItemDelayMs < 0 {
		return errors.New("inter-item delay must not be negative")
	}
	if c.StartOffset < 0 {
		return errors.New("start offset must not be negative")
	}
	return nil
}

// ConfigFrom maps the environment-backed application config onto a
// processor config.
func ConfigFrom(cfg *config.Config) Config {
	c := Config{
		APIKey:           cfg.ContentAPI.Key,
		BaseURL:          cfg.ContentAPI.BaseURL,
		TargetBoardID:    cfg.Ingest.TargetBoardID,
		InterItemDelayMs: cfg.Ingest.InterItemDelayMs,
		StartOffset:      cfg.Ingest.StartOffset,
		FetchTimeout:     cfg.ContentAPI.Timeout,
	}
	if cfg.Ingest.RetryAttempts > 0 {
		c.Retry = retry.DefaultConfig()
		c.Retry.MaxRetries = cfg.Ingest.RetryAttempts
		c.Retry.InitialInterval = cfg.Ingest.RetryInterval
	}
	return c
}
