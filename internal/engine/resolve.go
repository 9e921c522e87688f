package engine

import "seabattle/internal/model"

// point is a coordinate relative to one player's half: row and col in [0, 10).
type point struct {
	row, col int
}

// neighbours is the 8-connected neighbourhood used for ship connectivity.
var neighbours = [8]point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Resolve applies a shot at (row, col) within the half of the field starting
// at column offset, mutating the target cell, and returns the result code.
//
// Sea becomes DamagedSea (miss). Ship becomes DamagedShip (hit), after which
// sunk detection may upgrade the result to Destroyed. Any other state is
// already resolved: its current value is echoed back without mutation, so a
// misbehaving client re-targeting a cell cannot corrupt the board.
func Resolve(field *[model.FieldRows][model.FieldSpan]model.Cell, offset, row, col int) model.Cell {
	switch field[row][col+offset] {
	case model.Sea:
		field[row][col+offset] = model.DamagedSea
		return model.DamagedSea
	case model.Ship:
		field[row][col+offset] = model.DamagedShip
		if shipDestroyed(field, offset, row, col) {
			return model.Destroyed
		}
		return model.DamagedShip
	default:
		return field[row][col+offset]
	}
}

// shipDestroyed walks the connected component of damaged ship cells around
// the just-hit cell and reports whether the whole ship has been sunk.
//
// The walk marks visited DamagedShip cells with the fog value directly in
// the field, so it can use the live grid as its own scratch space. Every
// marked cell is restored to DamagedShip before returning, on both exit
// paths: the fog value never survives a call.
func shipDestroyed(field *[model.FieldRows][model.FieldSpan]model.Cell, offset, row, col int) bool {
	queue := []point{{row, col}}
	var marked []point

	restore := func() {
		for _, p := range marked {
			field[p.row][p.col+offset] = model.DamagedShip
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		switch field[p.row][p.col+offset] {
		case model.DamagedShip:
			field[p.row][p.col+offset] = model.UnknownTile
			marked = append(marked, p)

			for _, d := range neighbours {
				n := point{p.row + d.row, p.col + d.col}
				if n.row >= 0 && n.row < model.FieldRows && n.col >= 0 && n.col < model.FieldCols {
					queue = append(queue, n)
				}
			}

		case model.Ship:
			// Part of the ship is still afloat.
			restore()
			return false
		}
	}

	restore()
	return true
}

// FleetAlive reports whether any untouched ship segment remains in the half
// of the field starting at column offset.
func FleetAlive(field *[model.FieldRows][model.FieldSpan]model.Cell, offset int) bool {
	for row := 0; row < model.FieldRows; row++ {
		for col := 0; col < model.FieldCols; col++ {
			if field[row][col+offset] == model.Ship {
				return true
			}
		}
	}
	return false
}
