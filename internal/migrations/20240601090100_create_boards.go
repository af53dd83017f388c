package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBoards, downCreateBoards)
}

func upCreateBoards(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS boards (
		id         UUID PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE board_posts (
		id         UUID PRIMARY KEY,
		board_id   UUID NOT NULL REFERENCES boards (id) ON DELETE CASCADE,
		post_id    UUID NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT board_posts_board_id_post_id_key UNIQUE (board_id, post_id)
	);
	`)
	return err
}

func downCreateBoards(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS board_posts;
	DROP TABLE IF EXISTS boards;
	`)
	return err
}
