package models

import "time"

// UserSummary is the identity attached to a view (creator, modifier).
type UserSummary struct {
	ID       string
	Username string
}

// Favorite marks a resource as starred by a user.
type Favorite struct {
	ID         string
	UserID     string
	ForeignKey string
	Created    time.Time
}

// ResourceView is a resource read back together with its relational context
// as seen by one user. Favorite is nil when the user has not starred it.
type ResourceView struct {
	Resource
	Creator    UserSummary
	Modifier   UserSummary
	Favorite   *Favorite
	Secret     *Secret
	Permission *Permission
}
