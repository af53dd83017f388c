package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProfilesPosts, downCreateProfilesPosts)
}

func upCreateProfilesPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE profiles (
		id              UUID PRIMARY KEY,
		handle          TEXT NOT NULL,
		platform        TEXT NOT NULL,
		display_name    TEXT NOT NULL DEFAULT '',
		bio             TEXT NOT NULL DEFAULT '',
		followers_count BIGINT,
		avatar_url      TEXT NOT NULL DEFAULT '',
		verified        BOOLEAN NOT NULL DEFAULT FALSE,
		last_updated    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT profiles_handle_platform_key UNIQUE (handle, platform)
	);

	CREATE TABLE posts (
		id               UUID PRIMARY KEY,
		profile_id       UUID NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
		platform         TEXT NOT NULL,
		platform_post_id TEXT NOT NULL,
		embed_url        TEXT NOT NULL DEFAULT '',
		caption          TEXT NOT NULL DEFAULT '',
		transcript       TEXT,
		metrics          JSONB NOT NULL DEFAULT '{}'::jsonb,
		date_posted      TIMESTAMPTZ,
		thumbnail        TEXT NOT NULL DEFAULT '',
		display_url      TEXT NOT NULL DEFAULT '',
		video_url        TEXT NOT NULL DEFAULT '',
		shortcode        TEXT NOT NULL DEFAULT '',
		is_video         BOOLEAN NOT NULL DEFAULT FALSE,
		is_carousel      BOOLEAN NOT NULL DEFAULT FALSE,
		carousel_items   JSONB NOT NULL DEFAULT '[]'::jsonb,
		width            INTEGER NOT NULL DEFAULT 0,
		height           INTEGER NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT posts_platform_post_id_key UNIQUE (platform, platform_post_id)
	);

	CREATE INDEX posts_profile_id_idx ON posts (profile_id);
	CREATE INDEX posts_missing_transcript_idx ON posts (created_at)
		WHERE is_video AND (transcript IS NULL OR transcript = '');
	`)
	return err
}

func downCreateProfilesPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS posts;
	DROP TABLE IF EXISTS profiles;
	`)
	return err
}
