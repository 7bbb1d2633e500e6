package entity

import "strings"

const (
	Rows      = 6
	Cols      = 7
	WinLength = 4

	Cells = Rows * Cols
)

// Board is the grid of cells. Row 0 is the bottom of the physical board.
type Board [Rows][Cols]Cell

// InBounds reports whether (row, col) addresses a cell of the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Height returns the number of tokens stacked in the column.
func (that *Board) Height(col int) int {
	for row := 0; row < Rows; row++ {
		if that[row][col] == EmptyCell {
			return row
		}
	}

	return Rows
}

// String renders the board top row first, the way it is seen on screen.
func (that *Board) String() string {
	var sb strings.Builder

	for row := Rows - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := 0; col < Cols; col++ {
			sb.WriteString(that[row][col].String())
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
