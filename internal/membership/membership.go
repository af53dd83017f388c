package membership

import (
	"context"
	"errors"
	"time"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/internal/repositories/boardpost"
	"github.com/briidgedotone/narra/pkg/logger"
	"go.uber.org/fx"
)

type Outcome int

const (
	Added Outcome = iota + 1
	AlreadyExists
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyExists:
		return "already_exists"
	}
	return "unknown"
}

type Opts struct {
	fx.In

	BoardPosts boardpost.Repository
	Logger     logger.Logger
}

// Guard adds posts to boards at most once. The lookup before the insert
// only gives a friendlier outcome; the unique (board_id, post_id) key is
// what actually prevents duplicates.
type Guard struct {
	boardPosts boardpost.Repository
	logger     logger.Logger
	now        func() time.Time
}

func New(opts Opts) *Guard {
	return &Guard{
		boardPosts: opts.BoardPosts,
		logger:     opts.Logger.WithComponent("MembershipGuard"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (g *Guard) AddIfAbsent(ctx context.Context, boardID, postID string) (Outcome, error) {
	_, err := g.boardPosts.Find(ctx, boardID, postID)
	switch {
	case err == nil:
		return AlreadyExists, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return 0, domain.PersistenceError(err, "failed to check board membership")
	}

	err = g.boardPosts.Insert(ctx, domain.BoardPost{
		BoardID:   boardID,
		PostID:    postID,
		CreatedAt: g.now(),
	})
	if errors.Is(err, repositories.ErrAlreadyExists) {
		g.logger.Debug("Lost insert race, post already in board", "board_id", boardID, "post_id", postID)
		return AlreadyExists, nil
	}
	if err != nil {
		return 0, domain.PersistenceError(err, "failed to add post to board")
	}

	return Added, nil
}
