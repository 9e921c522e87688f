// Package engine implements the game rules: fleet validation, shot
// resolution and connectivity-based sunk-ship detection. All functions are
// pure grid operations; the game registry calls them inside its critical
// section, so nothing here locks.
package engine

import "seabattle/internal/model"

// Board markers accepted in a submitted fleet.
const (
	SeaMarker  = '.'
	ShipMarker = '@'
)

// ParseFleet validates a submitted board and converts it into cell states.
// The board must be exactly 10 rows of exactly 10 characters, each either
// the sea or the ship marker. The error is deliberately opaque: the client
// only learns that the submission failed, not which cell was wrong.
func ParseFleet(rows []string) (model.Fleet, error) {
	var fleet model.Fleet

	if len(rows) != model.FieldRows {
		return fleet, model.ErrInvalidFleet
	}

	for r, row := range rows {
		if len(row) != model.FieldCols {
			return fleet, model.ErrInvalidFleet
		}
		for c := 0; c < model.FieldCols; c++ {
			switch row[c] {
			case SeaMarker:
				fleet[r][c] = model.Sea
			case ShipMarker:
				fleet[r][c] = model.Ship
			default:
				return fleet, model.ErrInvalidFleet
			}
		}
	}

	return fleet, nil
}
