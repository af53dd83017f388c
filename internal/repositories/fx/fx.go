package fx

import (
	"github.com/briidgedotone/narra/internal/repositories/board"
	"github.com/briidgedotone/narra/internal/repositories/boardpost"
	"github.com/briidgedotone/narra/internal/repositories/post"
	"github.com/briidgedotone/narra/internal/repositories/profile"
	"go.uber.org/fx"
)

var Module = fx.Options(
	profile.Module,
	post.Module,
	boardpost.Module,
	board.Module,
)
