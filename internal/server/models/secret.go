package models

import "time"

// Secret is the resource payload encrypted for one recipient. Data holds an
// ASCII-armored OpenPGP message; the server never decrypts it.
type Secret struct {
	ID         string
	ResourceID string
	UserID     string
	Data       string
	Created    time.Time
	Modified   time.Time
}
