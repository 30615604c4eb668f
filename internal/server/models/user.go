// Package models holds the plain data types shared by repositories,
// services and the web layer.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest and is never
// rendered or logged.
type User struct {
	ID           int64
	UserName     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
