package upsert

import (
	"context"
	"errors"
	"time"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/internal/repositories/post"
	"github.com/briidgedotone/narra/internal/repositories/profile"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/briidgedotone/narra/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Profiles profile.Repository
	Posts    post.Repository
	Logger   logger.Logger
	Retry    retry.Config `optional:"true"`
}

// Engine creates or merges Profile and Post rows. Reads happen before
// writes; the unique keys in the datastore keep concurrent writers from
// producing duplicates.
type Engine struct {
	profiles profile.Repository
	posts    post.Repository
	logger   logger.Logger
	retry    retry.Config
	now      func() time.Time
}

func New(opts Opts) *Engine {
	return &Engine{
		profiles: opts.Profiles,
		posts:    opts.Posts,
		logger:   opts.Logger.WithComponent("UpsertEngine"),
		retry:    opts.Retry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// UpsertProfile looks the profile up by (handle, platform) and inserts or
// merges it.
func (e *Engine) UpsertProfile(ctx context.Context, d domain.ProfileDraft) (*domain.Profile, error) {
	if d.Handle == "" {
		return nil, domain.MissingContentError("profile draft has no handle")
	}

	var stored *domain.Profile
	err := e.do(ctx, "upsert_profile", func() error {
		existing, err := e.profiles.FindByHandle(ctx, d.Handle, d.Platform)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		stored, err = e.profiles.Upsert(ctx, MergeProfile(existing, d, e.now()))
		return err
	})
	if err != nil {
		return nil, domain.PersistenceError(err, "failed to upsert profile "+d.Handle)
	}

	return stored, nil
}

// UpsertPost looks the post up by (platform, normalizedID) and inserts it
// under profileID or merges it into the existing row.
func (e *Engine) UpsertPost(ctx context.Context, profileID, normalizedID string, d domain.Draft) (*domain.Post, error) {
	if normalizedID == "" {
		return nil, domain.MissingContentError("post draft has no identifier")
	}

	var stored *domain.Post
	err := e.do(ctx, "upsert_post", func() error {
		existing, err := e.posts.FindByPlatformID(ctx, d.Platform, normalizedID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if existing != nil {
			e.logger.Debug("Merging into existing post", "post_id", existing.ID, "platform_post_id", normalizedID)
		}

		stored, err = e.posts.Upsert(ctx, MergePost(existing, profileID, normalizedID, d, e.now()))
		return err
	})
	if err != nil {
		return nil, domain.PersistenceError(err, "failed to upsert post "+normalizedID)
	}

	return stored, nil
}

func (e *Engine) do(ctx context.Context, name string, op func() error) error {
	return retry.Do(ctx, e.logger, name, op, e.retry)
}
