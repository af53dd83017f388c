package boardpost

import (
	"context"

	"github.com/briidgedotone/narra/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=boardpost.go -destination=mocks/mock.go
type Repository interface {
	// Find returns repositories.ErrNotFound when the post is not in the board.
	Find(ctx context.Context, boardID, postID string) (*domain.BoardPost, error)

	// Insert returns repositories.ErrAlreadyExists when the (board, post)
	// pair is already stored.
	Insert(ctx context.Context, bp domain.BoardPost) error
}
