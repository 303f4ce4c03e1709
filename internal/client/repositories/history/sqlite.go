package history

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Record(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (id, name, uri, api_version, created) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, uri = excluded.uri
	`, e.ID, e.Name, e.URI, e.APIVersion, e.Created.UTC())
	if err != nil {
		return fmt.Errorf("failed to record history[%s]: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, uri, api_version, created FROM history ORDER BY created DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.URI, &e.APIVersion, &e.Created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return result, nil
}
