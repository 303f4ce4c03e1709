// Package models defines server-side data models persisted in the database.
package models

import "time"

// Resource is a stored credential: the visible metadata plus, through its
// associations, who may access it and the encrypted payload per recipient.
type Resource struct {
	ID          string
	Name        string
	Username    string
	URI         string
	Description string
	Deleted     bool
	CreatedBy   string
	ModifiedBy  string
	Created     time.Time
	Modified    time.Time

	Permissions []*Permission
	Secrets     []*Secret
}
