package models

import "time"

// ActionLog is one audit trail entry.
type ActionLog struct {
	ID         string
	UserID     string
	Action     string
	ResourceID string
	Created    time.Time
}
