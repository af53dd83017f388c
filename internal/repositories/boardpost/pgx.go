package boardpost

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("BoardPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Find(ctx context.Context, boardID, postID string) (*domain.BoardPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "board_id", "post_id", "created_at").
		From("board_posts").
		Where(sq.Eq{"board_id": boardID, "post_id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var bp domain.BoardPost
	err = p.pg.QueryRow(ctx, query, args...).Scan(&bp.ID, &bp.BoardID, &bp.PostID, &bp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &bp, nil
}

func (p *Pgx) Insert(ctx context.Context, bp domain.BoardPost) error {
	if bp.ID == "" {
		bp.ID = uuid.NewString()
	}

	query, args, err := repositories.SqBuilder.
		Insert("board_posts").
		Columns("id", "board_id", "post_id", "created_at").
		Values(bp.ID, bp.BoardID, bp.PostID, bp.CreatedAt).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			p.logger.Debug("board post inserted concurrently", "board_id", bp.BoardID, "post_id", bp.PostID)
			return repositories.ErrAlreadyExists
		}
		return err
	}
	return nil
}
