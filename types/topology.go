package types

import "fmt"

// Rank identifies one block owner in the decomposition.
//
// Owners are numbered 0..Workers-1 in row-major order over the block grid.
// Rank 0 doubles as the coordinator that scatters the initial field and
// gathers the final one.
type Rank int

// None marks a direction with no neighboring owner. The cells beyond that
// edge belong to the physical boundary of the domain and are held at zero
// for the whole run.
const None Rank = -1

// Valid reports whether the rank refers to a real owner.
func (r Rank) Valid() bool {
	return r != None
}

// Direction identifies one of the four halo-exchange directions.
type Direction int

// The four exchange directions. Up/Down move along the X (row) axis of the
// block grid, Left/Right along the Y (column) axis.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in a fixed order, for iteration.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction a transfer arrives from on the peer side:
// an edge sent toward Up is received by the neighbor as its Down halo.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Layout describes the block decomposition of the global grid.
//
// The NX×NY domain is cut into an XDim×YDim grid of blocks, each
// Rows×Columns cells. The partitioner guarantees Rows*XDim == NX and
// Columns*YDim == NY exactly, so the blocks tile the domain with no gaps
// and no overlap.
type Layout struct {
	// Workers is the total owner count (XDim * YDim).
	Workers int `yaml:"workers"`

	// XDim is the number of block rows.
	XDim int `yaml:"xdim"`

	// YDim is the number of block columns.
	YDim int `yaml:"ydim"`

	// Rows is the height of each block in grid cells.
	Rows int `yaml:"rows"`

	// Columns is the width of each block in grid cells.
	Columns int `yaml:"columns"`
}

// Neighbors holds the four neighbor ranks of one owner. A direction with no
// neighbor (block on the domain edge) is None.
type Neighbors struct {
	Up    Rank
	Down  Rank
	Left  Rank
	Right Rank
}

// At returns the neighbor rank in the given direction.
func (n Neighbors) At(d Direction) Rank {
	switch d {
	case Up:
		return n.Up
	case Down:
		return n.Down
	case Left:
		return n.Left
	default:
		return n.Right
	}
}

// Coord returns the (row, col) position of a rank in the block grid.
func (l Layout) Coord(r Rank) (row, col int) {
	return int(r) / l.YDim, int(r) % l.YDim
}

// RankAt returns the rank owning the block at (row, col).
func (l Layout) RankAt(row, col int) Rank {
	return Rank(row*l.YDim + col)
}

// Neighbors derives the four neighbor ranks of r from its position in the
// block grid. Edges of the block grid get None, meaning the adjacent cells
// are the fixed-zero physical boundary rather than another owner.
func (l Layout) Neighbors(r Rank) Neighbors {
	row, col := l.Coord(r)

	nb := Neighbors{Up: None, Down: None, Left: None, Right: None}
	if row > 0 {
		nb.Up = r - Rank(l.YDim)
	}
	if row < l.XDim-1 {
		nb.Down = r + Rank(l.YDim)
	}
	if col > 0 {
		nb.Left = r - 1
	}
	if col < l.YDim-1 {
		nb.Right = r + 1
	}

	return nb
}

// BlockOrigin returns the global coordinates of the first interior cell of
// r's block: global rows [x0, x0+Rows) by columns [y0, y0+Columns).
func (l Layout) BlockOrigin(r Rank) (x0, y0 int) {
	row, col := l.Coord(r)
	return row * l.Rows, col * l.Columns
}

// String renders the layout in the "XDim x YDim blocks of Rows x Columns"
// form used in log output.
func (l Layout) String() string {
	return fmt.Sprintf("%dx%d blocks of %dx%d", l.XDim, l.YDim, l.Rows, l.Columns)
}
