// Package actionlogs provides the PostgreSQL repository for the audit trail.
package actionlogs

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

func (r *PostgresRepository) Create(ctx context.Context, l *models.ActionLog) error {
	query := `
		INSERT INTO action_logs (id, user_id, action, resource_id, created)
		VALUES ($1, $2, $3, $4, $5)
	`
	result, err := r.db.ExecContext(ctx, query, l.ID, l.UserID, l.Action, sqlutil.NullString(l.ResourceID), l.Created)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return sqlutil.ExpectOneRow(result)
}
