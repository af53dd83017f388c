package transcriptimpl

import (
	"github.com/briidgedotone/narra/internal/transcript"
	"go.uber.org/fx"
)

var Module = fx.Module("transcript_backfill",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(transcript.Backfiller)),
		),
	),
)
