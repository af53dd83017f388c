package profile

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const table = "profiles"

var columns = []string{
	"id", "handle", "platform", "display_name", "bio", "followers_count",
	"avatar_url", "verified", "last_updated", "created_at",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ProfileRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) FindByHandle(ctx context.Context, handle string, platform domain.Platform) (*domain.Profile, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"handle": handle, "platform": platform.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	prof, err := scan(p.pg.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return prof, err
}

func (p *Pgx) Upsert(ctx context.Context, prof domain.Profile) (*domain.Profile, error) {
	if prof.ID == "" {
		prof.ID = uuid.NewString()
	}

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns(columns...).
		Values(
			prof.ID, prof.Handle, prof.Platform.String(), prof.DisplayName, prof.Bio, prof.FollowersCount,
			prof.AvatarURL, prof.Verified, prof.LastUpdated, prof.CreatedAt,
		).
		Suffix(`ON CONFLICT (handle, platform) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			followers_count = EXCLUDED.followers_count,
			avatar_url = EXCLUDED.avatar_url,
			verified = EXCLUDED.verified,
			last_updated = EXCLUDED.last_updated
			RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return scan(p.pg.QueryRow(ctx, query, args...))
}

func scan(row pgx.Row) (*domain.Profile, error) {
	var (
		prof     domain.Profile
		platform string
	)
	err := row.Scan(
		&prof.ID, &prof.Handle, &platform, &prof.DisplayName, &prof.Bio, &prof.FollowersCount,
		&prof.AvatarURL, &prof.Verified, &prof.LastUpdated, &prof.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	prof.Platform = domain.Platform(platform)
	return &prof, nil
}
