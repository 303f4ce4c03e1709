// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/actionlogs"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/permissions"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/views"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Resources(db dbx.DBTX) resources.Repository {
	return resources.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Permissions(db dbx.DBTX) permissions.Repository {
	return permissions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Secrets(db dbx.DBTX) secrets.Repository {
	return secrets.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Views(db dbx.DBTX) views.Repository {
	return views.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ActionLogs(db dbx.DBTX) actionlogs.Repository {
	return actionlogs.NewPostgresRepository(db)
}

// seams for tests
var (
	gooseSetDialect = goose.SetDialect
	gooseUpContext  = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := gooseSetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
