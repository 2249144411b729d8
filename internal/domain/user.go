package domain

import "time"

// User is the domain entity for a user account. Its ID scopes every task read and write.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
