package post

import (
	"context"

	"github.com/briidgedotone/narra/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// FindByPlatformID looks a post up by its normalized identifier. Returns
	// repositories.ErrNotFound when absent.
	FindByPlatformID(ctx context.Context, platform domain.Platform, platformPostID string) (*domain.Post, error)

	// Upsert inserts p or, on a (platform, platform_post_id) conflict,
	// overwrites content, metrics and media columns. The transcript and the
	// owning profile of an existing row are left alone.
	Upsert(ctx context.Context, p domain.Post) (*domain.Post, error)

	// ListMissingTranscript returns video posts that have no transcript yet,
	// oldest first.
	ListMissingTranscript(ctx context.Context, limit int) ([]*domain.Post, error)

	UpdateTranscript(ctx context.Context, id, transcript string) error
}
