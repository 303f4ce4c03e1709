// Package sqlutil has small helpers shared by the PostgreSQL repositories.
package sqlutil

import (
	"database/sql"
	"fmt"
)

// NullString maps "" to SQL NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ExpectOneRow checks that an INSERT/UPDATE touched exactly one row.
func ExpectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
