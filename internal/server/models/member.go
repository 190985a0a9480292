// Package models defines server-side data models persisted in the database.
package models

import "time"

// Member is a registered chat user.
type Member struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
