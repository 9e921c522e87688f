package model

// Cell is the state of a single board tile. The numeric values double as the
// wire result codes and must not be reordered.
type Cell int

const (
	Sea         Cell = iota // untouched water
	Ship                    // untouched ship segment, hidden from the opponent
	DamagedShip             // ship segment that has been hit
	DamagedSea              // water that has been shot at
	UnknownTile             // fog: flood-fill scratch marker, never visible externally
	Destroyed               // result code for a fully sunk ship, never stored in the field
)

// Board dimensions. The combined field holds both players' boards side by
// side: columns 0-9 belong to slot 0, columns 10-19 to slot 1.
const (
	FieldRows = 10
	FieldCols = 10
	FieldSpan = 2 * FieldCols
)

// Fleet is a single player's 10x10 board as submitted at setup.
type Fleet [FieldRows][FieldCols]Cell

// Digit returns the single ASCII digit representing this cell on the wire.
func (c Cell) Digit() byte {
	return byte('0' + c)
}
