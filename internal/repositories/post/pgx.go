package post

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const table = "posts"

var columns = []string{
	"id", "profile_id", "platform", "platform_post_id", "embed_url", "caption", "transcript",
	"metrics", "date_posted", "thumbnail", "display_url", "video_url", "shortcode",
	"is_video", "is_carousel", "carousel_items", "width", "height", "created_at", "updated_at",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) FindByPlatformID(ctx context.Context, platform domain.Platform, platformPostID string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"platform": platform.String(), "platform_post_id": platformPostID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scan(p.pg.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return post, err
}

func (p *Pgx) Upsert(ctx context.Context, post domain.Post) (*domain.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	metrics, err := json.Marshal(post.Metrics)
	if err != nil {
		return nil, err
	}
	items := post.CarouselItems
	if items == nil {
		items = []domain.CarouselItem{}
	}
	carousel, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns(columns...).
		Values(
			post.ID, post.ProfileID, post.Platform.String(), post.PlatformPostID, post.EmbedURL, post.Caption, post.Transcript,
			metrics, nullTime(post.DatePosted), post.Thumbnail, post.DisplayURL, post.VideoURL, post.Shortcode,
			post.IsVideo, post.IsCarousel, carousel, post.Dimensions.Width, post.Dimensions.Height, post.CreatedAt, post.UpdatedAt,
		).
		Suffix(`ON CONFLICT (platform, platform_post_id) DO UPDATE SET
			embed_url = EXCLUDED.embed_url,
			caption = EXCLUDED.caption,
			metrics = EXCLUDED.metrics,
			date_posted = COALESCE(EXCLUDED.date_posted, posts.date_posted),
			thumbnail = EXCLUDED.thumbnail,
			display_url = EXCLUDED.display_url,
			video_url = EXCLUDED.video_url,
			shortcode = EXCLUDED.shortcode,
			is_video = EXCLUDED.is_video,
			is_carousel = EXCLUDED.is_carousel,
			carousel_items = EXCLUDED.carousel_items,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return scan(p.pg.QueryRow(ctx, query, args...))
}

func (p *Pgx) ListMissingTranscript(ctx context.Context, limit int) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"is_video": true}).
		Where(sq.Or{sq.Eq{"transcript": nil}, sq.Eq{"transcript": ""}}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scan(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *Pgx) UpdateTranscript(ctx context.Context, id, transcript string) error {
	query, args, err := repositories.SqBuilder.
		Update(table).
		Set("transcript", transcript).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func scan(row pgx.Row) (*domain.Post, error) {
	var (
		post       domain.Post
		platform   string
		transcript *string
		metrics    []byte
		carousel   []byte
		datePosted *time.Time
	)
	err := row.Scan(
		&post.ID, &post.ProfileID, &platform, &post.PlatformPostID, &post.EmbedURL, &post.Caption, &transcript,
		&metrics, &datePosted, &post.Thumbnail, &post.DisplayURL, &post.VideoURL, &post.Shortcode,
		&post.IsVideo, &post.IsCarousel, &carousel, &post.Dimensions.Width, &post.Dimensions.Height, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Platform = domain.Platform(platform)
	if transcript != nil {
		post.Transcript = *transcript
	}
	if datePosted != nil {
		post.DatePosted = *datePosted
	}
	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &post.Metrics); err != nil {
			return nil, err
		}
	}
	if len(carousel) > 0 {
		if err := json.Unmarshal(carousel, &post.CarouselItems); err != nil {
			return nil, err
		}
	}
	return &post, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
