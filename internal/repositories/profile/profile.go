package profile

import (
	"context"

	"github.com/briidgedotone/narra/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=profile.go -destination=mocks/mock.go
type Repository interface {
	// FindByHandle returns repositories.ErrNotFound when no profile matches.
	FindByHandle(ctx context.Context, handle string, platform domain.Platform) (*domain.Profile, error)

	// Upsert inserts p or, on a (handle, platform) conflict, overwrites the
	// mutable columns. Returns the stored row.
	Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}
