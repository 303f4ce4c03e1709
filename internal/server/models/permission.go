package models

import "time"

// Access control object and request object kinds.
const (
	ACOResource = "Resource"
	AROUser     = "User"
	AROGroup    = "Group"
)

// Permission levels; higher includes lower.
const (
	PermissionRead  = 1
	PermissionOwner = 15
)

// Permission grants an ARO (user or group) a level on an ACO (a resource).
type Permission struct {
	ID            string
	ACO           string
	ACOForeignKey string
	ARO           string
	AROForeignKey string
	Type          int
	Created       time.Time
	Modified      time.Time
}
