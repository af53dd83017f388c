package ingest

import (
	"github.com/briidgedotone/narra/internal/membership"
	"github.com/briidgedotone/narra/internal/transformer"
	"github.com/briidgedotone/narra/internal/upsert"
	"github.com/briidgedotone/narra/pkg/retry"
	"go.uber.org/fx"
)

// Module provides the processor and the pipeline stages it drives.
var Module = fx.Module("ingest",
	fx.Provide(
		ConfigFrom,
		func(c Config) retry.Config { return c.Retry },
		transformer.New,
		upsert.New,
		membership.New,
		New,
	),
)
