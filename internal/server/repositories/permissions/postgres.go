// Package permissions provides the PostgreSQL repository for permission rows.
package permissions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/sqlutil"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Permission) error {
	query := `
		INSERT INTO permissions (id, aco, aco_foreign_key, aro, aro_foreign_key, type, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.ACO, p.ACOForeignKey, p.ARO, p.AROForeignKey, p.Type, p.Created, p.Modified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return sqlutil.ExpectOneRow(result)
}
