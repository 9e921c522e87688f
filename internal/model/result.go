package model

import "time"

// GameResult is a lightweight record of a finished game, kept in the archive
// after the game itself has been removed from the registry.
type GameResult struct {
	Name       GameName  `json:"name"`
	Winner     Login     `json:"winner"`
	Loser      Login     `json:"loser"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
