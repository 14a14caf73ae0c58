package models

import "time"

// Session represents a server-side login session.
// The token is an opaque value delivered to the client as an HTTP-only cookie.
type Session struct {
	ID        int       `json:"id"`
	Token     string    `json:"-"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
