// Package resources provides the PostgreSQL repository for resource rows.
package resources

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/sqlutil"
)

// PostgresRepository implements resource storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the resource row only; permissions and secrets have their
// own repositories. ID and timestamps must already be set.
func (r *PostgresRepository) Create(ctx context.Context, res *models.Resource) error {
	query := `
		INSERT INTO resources (id, name, username, uri, description, deleted, created_by, modified_by, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	result, err := r.db.ExecContext(ctx, query,
		res.ID, res.Name, sqlutil.NullString(res.Username), sqlutil.NullString(res.URI),
		sqlutil.NullString(res.Description), res.Deleted, res.CreatedBy, res.ModifiedBy, res.Created, res.Modified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return sqlutil.ExpectOneRow(result)
}
