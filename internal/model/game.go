package model

import "time"

// GameName uniquely identifies an active game.
type GameName string

// Phase represents the setup lifecycle of a game.
type Phase int

const (
	PhaseAwaitingFleets Phase = iota // no fleet submitted yet
	PhaseOneFleetPlaced              // exactly one player has submitted
	PhaseInProgress                  // both fleets placed, game running
)

// Game holds the combined board for both occupants. Columns 0-9 of the field
// belong to slot 0 (the creator), columns 10-19 to slot 1 (the joiner).
// A game lives only while it is being played: it is removed from the registry
// the instant one side's fleet is fully eliminated.
type Game struct {
	Name        GameName
	Players     [2]UserID // slot 1 is empty until someone joins
	Field       [FieldRows][FieldSpan]Cell
	Phase       Phase
	FleetPlaced [2]bool
	Moves       int
	CreatedAt   time.Time
}

// Slot returns the slot index the user occupies, or -1 if not a player.
func (g *Game) Slot(id UserID) int {
	switch id {
	case g.Players[0]:
		return 0
	case g.Players[1]:
		return 1
	}
	return -1
}

// Opponent returns the other occupant's identity, or empty if the user is
// not in the game or has no opponent yet.
func (g *Game) Opponent(id UserID) UserID {
	switch id {
	case g.Players[0]:
		return g.Players[1]
	case g.Players[1]:
		return g.Players[0]
	}
	return ""
}

// IsOpen reports whether the second slot is still free.
func (g *Game) IsOpen() bool {
	return g.Players[1] == ""
}

// OwnHalfOffset returns the column offset of the half owned by slot.
func OwnHalfOffset(slot int) int {
	return slot * FieldCols
}

// TargetHalfOffset returns the column offset of the half a shooter in slot
// fires into: always the opponent's half.
func TargetHalfOffset(slot int) int {
	return (1 - slot) * FieldCols
}
