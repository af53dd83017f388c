package contentapiimpl

import (
	"github.com/briidgedotone/narra/internal/contentapi"
	"go.uber.org/fx"
)

var Module = fx.Module("content_api",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(contentapi.Client)),
		),
	),
)
