package domain

import "time"

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// IssuedToken is a signed credential handed out at register/login.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
