package tetris

// Board is the settled grid. 0 is empty, 1..7 is the type id of the piece
// that locked there. Board is a value type: every function here that
// returns a Board returns a modified copy and leaves its argument untouched.
type Board [Rows][Cols]uint8

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Cell returns the value at (row, col), or 0 when out of bounds.
func (b Board) Cell(row, col int) uint8 {
	if !InBounds(row, col) {
		return 0
	}
	return b[row][col]
}

// RowFull reports whether every cell in the row is occupied.
func (b Board) RowFull(row int) bool {
	for _, v := range b[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

// Filled returns the number of occupied cells.
func (b Board) Filled() int {
	n := 0
	for r := range b {
		for _, v := range b[r] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// Collides reports whether any occupied cell of p falls outside the board or
// onto an occupied board cell.
func Collides(b Board, p Piece) bool {
	hit := false
	p.forEachCell(func(row, col int) {
		if hit {
			return
		}
		if !InBounds(row, col) || b[row][col] != 0 {
			hit = true
		}
	})
	return hit
}

// Merge writes the piece's occupied cells into a copy of b. Cells that fall
// outside the board are dropped; callers only merge pieces that passed
// Collides.
func Merge(b Board, p Piece) Board {
	p.forEachCell(func(row, col int) {
		if InBounds(row, col) {
			b[row][col] = uint8(p.Type)
		}
	})
	return b
}

// FullRows returns the indexes of all complete rows, top to bottom.
func FullRows(b Board) []int {
	var rows []int
	for r := range Rows {
		if b.RowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearLines removes every full row at once, shifts the remaining rows down
// keeping their order, and refills the top with empty rows. It returns the
// new board and the number of rows removed.
func ClearLines(b Board) (Board, int) {
	var out Board
	dst := Rows - 1
	for src := Rows - 1; src >= 0; src-- {
		if b.RowFull(src) {
			continue
		}
		out[dst] = b[src]
		dst--
	}
	// rows 0..dst stay zero
	return out, dst + 1
}
