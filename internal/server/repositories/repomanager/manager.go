package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/actionlogs"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/permissions"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/secrets"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/views"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code path
// works against the pool or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Resources(db dbx.DBTX) resources.Repository
	Permissions(db dbx.DBTX) permissions.Repository
	Secrets(db dbx.DBTX) secrets.Repository
	Views(db dbx.DBTX) views.Repository
	ActionLogs(db dbx.DBTX) actionlogs.Repository
}
