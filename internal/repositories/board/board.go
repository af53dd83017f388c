package board

import (
	"context"

	"github.com/briidgedotone/narra/internal/domain"
)

// Repository gives read access to boards. Boards are created and owned by
// the surrounding application.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Board, error)
}
