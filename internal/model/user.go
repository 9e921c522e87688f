package model

import "time"

// UserID is the server-generated identity token for a connected user.
// It is assigned at login and immutable for the session's lifetime.
type UserID string

// Login is the user-chosen login name, unique across the server.
type Login string

// User represents a connected player. Users are never removed while the
// process runs; there is no logout or disconnect handling.
type User struct {
	ID        UserID
	Login     Login
	GameName  GameName // game the user currently occupies, or empty
	CreatedAt time.Time
}
