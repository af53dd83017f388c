package board

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pgx struct {
	pg *pgxpool.Pool
}

func NewPgx(pg *pgxpool.Pool) *Pgx {
	return &Pgx{pg: pg}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "user_id", "name", "created_at").
		From("boards").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var b domain.Board
	err = p.pg.QueryRow(ctx, query, args...).Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
