package field

import "fmt"

// Block is one owner's (rows+2)×(columns+2) matrix: the inner rows×columns
// region is the owner's portion of the domain, the outer one-cell ring is
// halo. Halo cells hold either a neighbor's edge values (refreshed every
// iteration by the halo exchange) or stay at the fixed physical-boundary
// value 0 when there is no neighbor on that side.
//
// Local coordinates: row 0 and row rows+1 are halo, rows 1..rows are
// interior; likewise for columns.
type Block struct {
	Rows, Cols int
	cells      []float64
}

// NewBlock allocates a zero-valued block for a rows×cols interior.
func NewBlock(rows, cols int) *Block {
	return &Block{
		Rows:  rows,
		Cols:  cols,
		cells: make([]float64, (rows+2)*(cols+2)),
	}
}

// At returns the cell at local (x, y), halo ring included.
func (b *Block) At(x, y int) float64 {
	return b.cells[x*(b.Cols+2)+y]
}

// Set stores v at local (x, y).
func (b *Block) Set(x, y int, v float64) {
	b.cells[x*(b.Cols+2)+y] = v
}

// FillInterior copies a contiguous rows×cols payload into the interior,
// leaving the halo ring untouched.
func (b *Block) FillInterior(payload []float64) error {
	if len(payload) != b.Rows*b.Cols {
		return fmt.Errorf("interior payload has %d cells, want %d", len(payload), b.Rows*b.Cols)
	}

	for i := 0; i < b.Rows; i++ {
		dst := (i+1)*(b.Cols+2) + 1
		copy(b.cells[dst:dst+b.Cols], payload[i*b.Cols:(i+1)*b.Cols])
	}

	return nil
}

// InteriorPayload copies the interior into a fresh contiguous rows×cols
// slice, the inverse of FillInterior.
func (b *Block) InteriorPayload() []float64 {
	payload := make([]float64, b.Rows*b.Cols)
	for i := 0; i < b.Rows; i++ {
		src := (i+1)*(b.Cols+2) + 1
		copy(payload[i*b.Cols:(i+1)*b.Cols], b.cells[src:src+b.Cols])
	}

	return payload
}

// CopyEdgeRow copies interior row x (1 or Rows) into dst, which must hold
// Cols values. Row transfers are contiguous.
func (b *Block) CopyEdgeRow(x int, dst []float64) {
	src := x*(b.Cols+2) + 1
	copy(dst, b.cells[src:src+b.Cols])
}

// CopyEdgeColumn copies interior column y (1 or Cols) into dst, which must
// hold Rows values. The column is strided in memory; it is staged into dst
// so it travels as a single contiguous transfer.
func (b *Block) CopyEdgeColumn(y int, dst []float64) {
	for i := 0; i < b.Rows; i++ {
		dst[i] = b.cells[(i+1)*(b.Cols+2)+y]
	}
}

// SetHaloRow stores src (Cols values) into halo row x (0 or Rows+1),
// columns 1..Cols. The halo corners are never written.
func (b *Block) SetHaloRow(x int, src []float64) {
	dst := x*(b.Cols+2) + 1
	copy(b.cells[dst:dst+b.Cols], src)
}

// SetHaloColumn stores src (Rows values) into halo column y (0 or Cols+1),
// rows 1..Rows. The halo corners are never written.
func (b *Block) SetHaloColumn(y int, src []float64) {
	for i := 0; i < b.Rows; i++ {
		b.cells[(i+1)*(b.Cols+2)+y] = src[i]
	}
}

// Local owns the two block generations of one owner and the iteration
// parity deciding which is read and which is written.
//
// Within one iteration the current generation is read-only compute input
// and the next generation is write-only output (its halo ring additionally
// receives this iteration's neighbor edges). Swap flips the roles.
type Local struct {
	gen [2]*Block
	cur int
}

// NewLocal allocates both generations for a rows×cols interior. Halo rings
// start at zero, which is the permanent value for physical-boundary sides.
func NewLocal(rows, cols int) *Local {
	return &Local{gen: [2]*Block{NewBlock(rows, cols), NewBlock(rows, cols)}}
}

// Current returns the generation read during this iteration.
func (l *Local) Current() *Block {
	return l.gen[l.cur]
}

// Next returns the generation written during this iteration.
func (l *Local) Next() *Block {
	return l.gen[1-l.cur]
}

// Swap advances the iteration parity, making this iteration's output the
// next iteration's input.
func (l *Local) Swap() {
	l.cur = 1 - l.cur
}

// Generation returns the index (0 or 1) of the current generation. After
// STEPS swaps starting from 0 it equals STEPS%2, the generation holding the
// final result at gather time.
func (l *Local) Generation() int {
	return l.cur
}
