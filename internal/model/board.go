package model

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the grid dimension; boards are always 5x5.
const BoardSize = 5

// MaxValue is the largest value on a board; each board is a
// permutation of 1..MaxValue.
const MaxValue = BoardSize * BoardSize

// markedSentinel is the wire token for a marked cell.
const markedSentinel = "X"

// Cell holds either an unmarked value in 1..25 or 0 once marked.
// On the wire a marked cell serializes as the string "X".
type Cell int

// Marked is the in-memory sentinel for a marked cell.
const Marked Cell = 0

// IsMarked returns true if the cell has been marked.
func (c Cell) IsMarked() bool {
	return c == Marked
}

// MarshalJSON serializes a marked cell as "X" and anything else as a number.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsMarked() {
		return json.Marshal(markedSentinel)
	}
	return json.Marshal(int(c))
}

// UnmarshalJSON accepts either the "X" sentinel or a number.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != markedSentinel {
			return fmt.Errorf("invalid cell token %q", s)
		}
		*c = Marked
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 1 || n > MaxValue {
		return fmt.Errorf("cell value %d out of range 1..%d", n, MaxValue)
	}
	*c = Cell(n)
	return nil
}

// Board is a player's 5x5 grid. Every unmarked cell holds a distinct
// value in 1..25; marking is monotonic and never reverts.
type Board struct {
	Cells [][]Cell `json:"cells"`
}

// NewBoardFromValues arranges a permutation of 1..25 row-major into a board.
func NewBoardFromValues(values []int) *Board {
	cells := make([][]Cell, BoardSize)
	for row := 0; row < BoardSize; row++ {
		cells[row] = make([]Cell, BoardSize)
		for col := 0; col < BoardSize; col++ {
			cells[row][col] = Cell(values[row*BoardSize+col])
		}
	}
	return &Board{Cells: cells}
}

// SnapshotCells returns a deep copy of the grid. Outbound payloads
// must carry a snapshot, not the live cells, since the board keeps
// mutating after the payload is queued for delivery.
func (b *Board) SnapshotCells() [][]Cell {
	cells := make([][]Cell, len(b.Cells))
	for row := range b.Cells {
		cells[row] = make([]Cell, len(b.Cells[row]))
		copy(cells[row], b.Cells[row])
	}
	return cells
}

// Mark replaces every cell holding the given value with the marked
// sentinel. It is a silent no-op when the value is not present.
func (b *Board) Mark(value int) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col] == Cell(value) {
				b.Cells[row][col] = Marked
			}
		}
	}
}

// CompletedLines recomputes from scratch how many of the 5 rows,
// 5 columns and 2 diagonals are fully marked. Range 0..7.
func (b *Board) CompletedLines() int {
	lines := 0

	for row := 0; row < BoardSize; row++ {
		complete := true
		for col := 0; col < BoardSize; col++ {
			if !b.Cells[row][col].IsMarked() {
				complete = false
				break
			}
		}
		if complete {
			lines++
		}
	}

	for col := 0; col < BoardSize; col++ {
		complete := true
		for row := 0; row < BoardSize; row++ {
			if !b.Cells[row][col].IsMarked() {
				complete = false
				break
			}
		}
		if complete {
			lines++
		}
	}

	diagonal := true
	antiDiagonal := true
	for i := 0; i < BoardSize; i++ {
		if !b.Cells[i][i].IsMarked() {
			diagonal = false
		}
		if !b.Cells[i][BoardSize-1-i].IsMarked() {
			antiDiagonal = false
		}
	}
	if diagonal {
		lines++
	}
	if antiDiagonal {
		lines++
	}

	return lines
}
