package registry

import (
	"log/slog"
	"sort"
	"sync"

	"seabattle/internal/dependencies/clock"
	"seabattle/internal/engine"
	"seabattle/internal/model"
)

// ShotReport describes the outcome of one resolved shot. It carries
// everything the dispatcher needs to reply and notify without touching the
// game again, since the game may already have been removed.
type ShotReport struct {
	Result   model.Cell // DamagedSea, DamagedShip, Destroyed, or an echoed prior state
	Row, Col int        // half-relative coordinate of the shot
	Opponent model.UserID
	GameOver bool // the opponent's fleet is fully eliminated
	Moves    int  // total moves resolved in this game so far
}

// StartNotice identifies the players to notify when a game transitions to
// in progress. First moves first.
type StartNotice struct {
	First  model.UserID
	Second model.UserID
}

// Games is the registry of active games. It owns each game's combined
// two-player board; all board mutation happens inside its critical section.
type Games struct {
	clock  clock.Clock
	logger *slog.Logger

	mu    sync.Mutex
	games map[model.GameName]*model.Game
}

// NewGames creates an empty game registry.
func NewGames(clk clock.Clock, logger *slog.Logger) *Games {
	return &Games{
		clock:  clk,
		logger: logger.With(slog.String("component", "games")),
		games:  make(map[model.GameName]*model.Game),
	}
}

// Create registers a new game with the given player in slot 0.
func (g *Games) Create(name model.GameName, firstPlayer model.UserID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, taken := g.games[name]; taken {
		return model.ErrGameNameTaken
	}

	g.games[name] = &model.Game{
		Name:      name,
		Players:   [2]model.UserID{firstPlayer, ""},
		Phase:     model.PhaseAwaitingFleets,
		CreatedAt: g.clock.Now(),
	}

	g.logger.Info("game created", slog.String("game", string(name)))
	return nil
}

// Find returns a copy of the named game.
func (g *Games) Find(name model.GameName) (model.Game, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, ok := g.games[name]
	if !ok {
		return model.Game{}, false
	}
	return *game, true
}

// ListOpen returns the names of games whose second slot is still free,
// sorted for stable output.
func (g *Games) ListOpen() []model.GameName {
	g.mu.Lock()
	defer g.mu.Unlock()

	var open []model.GameName
	for name, game := range g.games {
		if game.IsOpen() {
			open = append(open, name)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i] < open[j] })
	return open
}

// Join puts the player into slot 1 of the named game and returns the
// identity of the waiting slot-0 player.
func (g *Games) Join(name model.GameName, secondPlayer model.UserID) (model.UserID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, ok := g.games[name]
	if !ok {
		return "", model.ErrGameNotFound
	}
	if !game.IsOpen() {
		return "", model.ErrGameFull
	}

	game.Players[1] = secondPlayer

	g.logger.Info("player joined game",
		slog.String("game", string(name)),
		slog.String("user_id", string(secondPlayer)))

	return game.Players[0], nil
}

// Remove deletes the named game.
func (g *Games) Remove(name model.GameName) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.games, name)
}

// PlaceFleet writes the player's validated fleet into their half of the
// board. When the second fleet lands the game transitions to in progress and
// a StartNotice is returned so the dispatcher can assign turns.
func (g *Games) PlaceFleet(name model.GameName, player model.UserID, fleet model.Fleet) (*StartNotice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, ok := g.games[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	slot := game.Slot(player)
	if slot < 0 {
		return nil, model.ErrNotInGame
	}
	if game.Phase == model.PhaseInProgress {
		return nil, model.ErrGameStarted
	}

	offset := model.OwnHalfOffset(slot)
	for row := 0; row < model.FieldRows; row++ {
		for col := 0; col < model.FieldCols; col++ {
			game.Field[row][col+offset] = fleet[row][col]
		}
	}
	game.FleetPlaced[slot] = true

	if !game.FleetPlaced[0] || !game.FleetPlaced[1] {
		// Resubmitting before the opponent places just overwrites the half.
		game.Phase = model.PhaseOneFleetPlaced
		return nil, nil
	}

	game.Phase = model.PhaseInProgress
	g.logger.Info("game started", slog.String("game", string(name)))

	return &StartNotice{First: game.Players[0], Second: game.Players[1]}, nil
}

// Shoot resolves the shooter's move against the opponent's half of the
// board. If the shot eliminates the last ship segment the game is removed
// from the registry before the lock is released, so no further move can
// land on a finished game.
func (g *Games) Shoot(name model.GameName, shooter model.UserID, row, col int) (ShotReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	game, ok := g.games[name]
	if !ok {
		return ShotReport{}, model.ErrGameNotFound
	}

	slot := game.Slot(shooter)
	if slot < 0 {
		return ShotReport{}, model.ErrNotInGame
	}
	if row < 0 || row >= model.FieldRows || col < 0 || col >= model.FieldCols {
		return ShotReport{}, model.ErrInvalidShot
	}

	offset := model.TargetHalfOffset(slot)
	result := engine.Resolve(&game.Field, offset, row, col)
	game.Moves++

	report := ShotReport{
		Result:   result,
		Row:      row,
		Col:      col,
		Opponent: game.Opponent(shooter),
		Moves:    game.Moves,
	}

	if !engine.FleetAlive(&game.Field, offset) {
		report.GameOver = true
		delete(g.games, name)
		g.logger.Info("game finished",
			slog.String("game", string(name)),
			slog.String("winner_id", string(shooter)),
			slog.Int("moves", game.Moves))
	}

	return report, nil
}
