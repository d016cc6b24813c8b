package field

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteSnapshot writes the field as a text grid: NY lines printed from
// y=NY−1 down to y=0, each line holding the NX values for x=0..NX−1 in a
// fixed 6-character field with one decimal digit, separated by single
// spaces, newline-terminated.
func WriteSnapshot(w io.Writer, g *Global) error {
	bw := bufio.NewWriter(w)
	for y := g.NY - 1; y >= 0; y-- {
		for x := 0; x < g.NX; x++ {
			if _, err := fmt.Fprintf(bw, "%6.1f", g.At(x, y)); err != nil {
				return err
			}
			sep := byte(' ')
			if x == g.NX-1 {
				sep = '\n'
			}
			if err := bw.WriteByte(sep); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteSnapshotFile writes the snapshot to the named file, creating or
// truncating it.
func WriteSnapshotFile(path string, g *Global) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}

	if err := WriteSnapshot(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}

	return f.Close()
}
