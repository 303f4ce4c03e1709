// Package history records, on the local machine, the resources this CLI has
// created. Only identifiers and public metadata are kept; secrets never are.
package history

import (
	"context"
	"time"
)

type Entry struct {
	ID         string
	Name       string
	URI        string
	APIVersion string
	Created    time.Time
}

type Repository interface {
	Record(ctx context.Context, e *Entry) error
	// List returns entries newest first.
	List(ctx context.Context) ([]Entry, error)
}
