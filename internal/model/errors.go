package model

import "errors"

// Common errors used across the application. At the protocol edge every one
// of these collapses into the single failure opcode; the distinction exists
// for internal logic and tests.
var (
	// User errors
	ErrLoginTaken = errors.New("login already taken")

	// Game errors
	ErrGameNameTaken = errors.New("game name already taken")
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFull      = errors.New("game already has two players")
	ErrGameStarted   = errors.New("game already started")
	ErrNotInGame     = errors.New("user is not a player in this game")

	// Engine errors
	ErrInvalidFleet = errors.New("invalid fleet layout")
	ErrInvalidShot  = errors.New("invalid shot coordinate")
)
