// Package store opens the CLI's local SQLite database and applies its
// embedded migrations.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/history"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB      *sql.DB
	History history.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Repositories{
		DB:      db,
		History: history.NewSQLiteRepository(db),
	}, nil
}
