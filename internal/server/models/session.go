package models

import "time"

// Session binds an opaque id, held by the client in a signed cookie, to the
// username that logged in.
type Session struct {
	ID         string    `json:"id"`
	UserName   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
