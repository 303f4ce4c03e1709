package resources

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/stretchr/testify/require"
)

const insertQ = `(?s)^\s*INSERT\s+INTO\s+resources\s*\(id,\s*name,\s*username,\s*uri,\s*description,\s*deleted,\s*created_by,\s*modified_by,\s*created,\s*modified\)\s*VALUES\s*\(\$1,.*\$10\)\s*$`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func sample() *models.Resource {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &models.Resource{
		ID: "r-1", Name: "mail", URI: "https://mail.example.com",
		CreatedBy: "u-1", ModifiedBy: "u-1", Created: now, Modified: now,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	res := sample()
	mock.ExpectExec(insertQ).
		WithArgs("r-1", "mail",
			sql.NullString{}, sql.NullString{String: "https://mail.example.com", Valid: true}, sql.NullString{},
			false, "u-1", "u-1", res.Created, res.Modified).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), res))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sample())
	require.ErrorContains(t, err, "db error: db down")
}

func TestCreate_NoRowsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), sample())
	require.ErrorContains(t, err, "unexpected rows affected")
}
