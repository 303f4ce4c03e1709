// Package secrets provides the PostgreSQL repository for secret rows.
package secrets

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

func (r *PostgresRepository) Create(ctx context.Context, s *models.Secret) error {
	query := `
		INSERT INTO secrets (id, resource_id, user_id, data, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.ResourceID, s.UserID, s.Data, s.Created, s.Modified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return sqlutil.ExpectOneRow(result)
}
