package domain

import "time"

// Claims is the verified payload of a session token.
type Claims struct {
	UserID    int64
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c *Claims) Actor() Actor {
	return Actor{ID: c.UserID, Email: c.Email, Role: c.Role}
}
