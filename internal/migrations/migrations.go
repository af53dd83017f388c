package migrations

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed *.go
var FS embed.FS

// Dir is the migrations directory inside FS.
const Dir = "."

const dialect = "postgres"

// Open connects through lib/pq and prepares goose to read the embedded
// migrations.
func Open(dsn string) (*sql.DB, error) {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, err
	}
	return sql.Open(dialect, dsn)
}

// Up applies every pending migration.
func Up(ctx context.Context, dsn string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.UpContext(ctx, db, Dir)
}
