package board

import "go.uber.org/fx"

var Module = fx.Module("board_repository",
	fx.Provide(fx.Annotate(NewPgx, fx.As(new(Repository)))),
)
