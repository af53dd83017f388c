package boardpost

import "go.uber.org/fx"

var Module = fx.Module("boardpost_repository",
	fx.Provide(fx.Annotate(NewPgx, fx.As(new(Repository)))),
)
