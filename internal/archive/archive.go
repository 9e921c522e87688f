// Package archive records finished games after they have been removed from
// the game registry. Recording is best-effort: the dispatcher logs archive
// errors and never surfaces them to players.
package archive

import (
	"context"

	"seabattle/internal/model"
)

// Archive stores finished-game results.
type Archive interface {
	// Record saves one finished game.
	Record(ctx context.Context, result *model.GameResult) error

	// Recent returns up to n results, most recent first.
	Recent(ctx context.Context, n int) ([]*model.GameResult, error)
}
