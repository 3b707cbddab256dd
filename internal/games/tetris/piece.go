// Package tetris implements the falling-block puzzle: the piece catalog, the
// board, collision and line clearing, the timed drop loop and the session
// state machine. Rendering and input wiring live in game.go and render.go and
// only talk to the engine through its command methods.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Board dimensions.
const (
	Rows = 20
	Cols = 10
)

// PieceType identifies one of the seven tetrominoes. The value doubles as the
// cell id written into the board when a piece locks.
type PieceType uint8

const (
	PieceNone PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceTypeCount is the number of distinct tetrominoes.
const PieceTypeCount = 7

// String returns the conventional letter for the piece.
func (t PieceType) String() string {
	switch t {
	case PieceI:
		return "I"
	case PieceO:
		return "O"
	case PieceT:
		return "T"
	case PieceS:
		return "S"
	case PieceZ:
		return "Z"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	default:
		return "-"
	}
}

// Shape is a row-major occupancy matrix. Nonzero entries are occupied and
// carry the piece type id.
type Shape [][]uint8

// catalog holds the canonical spawn orientation of every piece.
// Never hand these slices out directly; use CanonicalShape.
var catalog = [PieceTypeCount + 1]Shape{
	PieceI: {{1, 1, 1, 1}},
	PieceO: {{2, 2}, {2, 2}},
	PieceT: {{0, 3, 0}, {3, 3, 3}},
	PieceS: {{0, 4, 4}, {4, 4, 0}},
	PieceZ: {{5, 5, 0}, {0, 5, 5}},
	PieceJ: {{6, 0, 0}, {6, 6, 6}},
	PieceL: {{0, 0, 7}, {7, 7, 7}},
}

// CanonicalShape returns a fresh copy of the spawn shape for the given type.
// Returns nil for PieceNone or unknown types.
func CanonicalShape(t PieceType) Shape {
	if t == PieceNone || int(t) > PieceTypeCount {
		return nil
	}
	return catalog[t].Clone()
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]uint8(nil), row...)
	}
	return out
}

// Height returns the number of rows in the matrix.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns in the matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(other[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// RotateShape returns a new matrix holding the shape turned a quarter turn
// about its own bounding box: the transpose with its row order reversed.
// The input is not modified.
func RotateShape(s Shape) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range w {
		out[i] = make([]uint8, h)
		for j := range h {
			// transpose[w-1-i][j] == s[j][w-1-i]
			out[i][j] = s[j][w-1-i]
		}
	}
	return out
}

// Piece is the falling tetromino. Row and Col anchor the top-left corner of
// the shape matrix on the board.
//
// A piece's Shape is treated as immutable once built: moves share it and
// rotations allocate a new one.
type Piece struct {
	Type  PieceType
	Shape Shape
	Row   int
	Col   int
}

// NewPiece builds a piece of the given type in spawn position: row 0,
// horizontally centered.
func NewPiece(t PieceType) Piece {
	shape := CanonicalShape(t)
	return Piece{
		Type:  t,
		Shape: shape,
		Row:   0,
		Col:   (Cols - shape.Width()) / 2,
	}
}

// Moved returns a copy of the piece translated by the given offsets.
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Rotated returns a copy of the piece with a rotated shape and the same anchor.
func (p Piece) Rotated() Piece {
	p.Shape = RotateShape(p.Shape)
	return p
}

// Bounds returns the piece's bounding box in board coordinates (X = column).
func (p Piece) Bounds() core.Rect {
	return core.NewRect(p.Col, p.Row, p.Shape.Width(), p.Shape.Height())
}

// Occupies reports whether the piece covers the given board cell.
func (p Piece) Occupies(row, col int) bool {
	if !p.Bounds().Contains(col, row) {
		return false
	}
	return p.Shape[row-p.Row][col-p.Col] != 0
}

// forEachCell calls fn with the board position of every occupied cell.
func (p Piece) forEachCell(fn func(row, col int)) {
	for r, line := range p.Shape {
		for c, v := range line {
			if v != 0 {
				fn(p.Row+r, p.Col+c)
			}
		}
	}
}

// Spawner produces the next piece to enter the board.
type Spawner interface {
	Spawn() Piece
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func() Piece

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn() Piece {
	return f()
}

// RandomSpawner picks each piece uniformly at random. There is deliberately
// no bag or repeat protection.
type RandomSpawner struct {
	rng *rand.Rand
}

// NewRandomSpawner creates a spawner drawing from the given source.
func NewRandomSpawner(rng *rand.Rand) *RandomSpawner {
	return &RandomSpawner{rng: rng}
}

// Spawn implements Spawner.
func (s *RandomSpawner) Spawn() Piece {
	return NewPiece(PieceType(s.rng.Intn(PieceTypeCount) + 1))
}

// SequenceSpawner replays a fixed list of piece types, cycling when it runs out.
// Useful for scripted sessions and tests.
type SequenceSpawner struct {
	types []PieceType
	pos   int
}

// NewSequenceSpawner creates a spawner cycling through the given types.
func NewSequenceSpawner(types ...PieceType) *SequenceSpawner {
	return &SequenceSpawner{types: types}
}

// Spawn implements Spawner.
func (s *SequenceSpawner) Spawn() Piece {
	if len(s.types) == 0 {
		return NewPiece(PieceO)
	}
	t := s.types[s.pos%len(s.types)]
	s.pos++
	return NewPiece(t)
}
