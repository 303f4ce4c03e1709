// Package views reads a resource back together with its relational context
// (creator, modifier, and the caller's permission, secret and favorite).
package views

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// The inner join on permissions makes the row visible only to users holding
// a direct grant on the resource.
const findViewQuery = `
	SELECT r.id, r.name, r.username, r.uri, r.description, r.deleted,
		r.created_by, r.modified_by, r.created, r.modified,
		c.id, c.username, m.id, m.username,
		p.id, p.aco, p.aco_foreign_key, p.aro, p.aro_foreign_key, p.type, p.created, p.modified,
		s.id, s.resource_id, s.user_id, s.data, s.created, s.modified,
		f.id, f.user_id, f.foreign_key, f.created
	FROM resources r
	JOIN users c ON c.id = r.created_by
	JOIN users m ON m.id = r.modified_by
	JOIN permissions p ON p.aco = 'Resource' AND p.aco_foreign_key = r.id AND p.aro = 'User' AND p.aro_foreign_key = $1
	LEFT JOIN secrets s ON s.resource_id = r.id AND s.user_id = $1
	LEFT JOIN favorites f ON f.foreign_key = r.id AND f.user_id = $1
	WHERE r.id = $2 AND r.deleted = FALSE
`

// FindView returns common.ErrorNotFound when the resource does not exist,
// is soft-deleted, or is not visible to userID.
func (r *PostgresRepository) FindView(ctx context.Context, userID, resourceID string) (*models.ResourceView, error) {
	var (
		v                          models.ResourceView
		perm                       models.Permission
		username, uri, description sql.NullString

		secID, secResID, secUserID, secData sql.NullString
		secCreated, secModified             sql.NullTime

		favID, favUserID, favFK sql.NullString
		favCreated              sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, findViewQuery, userID, resourceID).Scan(
		&v.ID, &v.Name, &username, &uri, &description, &v.Deleted,
		&v.CreatedBy, &v.ModifiedBy, &v.Created, &v.Modified,
		&v.Creator.ID, &v.Creator.Username, &v.Modifier.ID, &v.Modifier.Username,
		&perm.ID, &perm.ACO, &perm.ACOForeignKey, &perm.ARO, &perm.AROForeignKey, &perm.Type, &perm.Created, &perm.Modified,
		&secID, &secResID, &secUserID, &secData, &secCreated, &secModified,
		&favID, &favUserID, &favFK, &favCreated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	v.Username = username.String
	v.URI = uri.String
	v.Description = description.String
	v.Permission = &perm

	if secID.Valid {
		v.Secret = &models.Secret{
			ID:         secID.String,
			ResourceID: secResID.String,
			UserID:     secUserID.String,
			Data:       secData.String,
			Created:    secCreated.Time,
			Modified:   secModified.Time,
		}
	}
	if favID.Valid {
		v.Favorite = &models.Favorite{
			ID:         favID.String,
			UserID:     favUserID.String,
			ForeignKey: favFK.String,
			Created:    favCreated.Time,
		}
	}

	return &v, nil
}
