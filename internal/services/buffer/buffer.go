// Package buffer holds the character grid that frames are composed in and
// that the renderer keeps as its record of what the terminal shows.
package buffer

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var (
	ErrDimensions = errors.New("buffer dimensions must not be negative")
	ErrChar       = errors.New("cell character must be a single one-column grapheme")
)

// Cell is one character position with its logical colour pair.
type Cell struct {
	Char       string
	Foreground int
	Background int
}

// Blank is the default cell used when nothing else is given.
var Blank = Cell{Char: " ", Foreground: 0, Background: 0}

// ValidChar reports whether s occupies exactly one grapheme and one column.
func ValidChar(s string) bool {
	if s == "" {
		return false
	}
	return uniseg.GraphemeClusterCount(s) == 1 && runewidth.StringWidth(s) == 1
}

// Buffer is a width x height grid of cells stored row major.
type Buffer struct {
	width  int
	height int
	def    Cell
	cells  []Cell
}

func New(width int, height int, def Cell) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if !ValidChar(def.Char) {
		return nil, fmt.Errorf("%w: %q", ErrChar, def.Char)
	}
	b := &Buffer{def: def}
	b.resize(width, height)
	return b, nil
}

func (b *Buffer) Dimensions() (int, int) {
	return b.width, b.height
}

func (b *Buffer) Defaults() Cell {
	return b.def
}

// Empty reports whether the grid has no cells.
func (b *Buffer) Empty() bool {
	return b.width == 0 || b.height == 0
}

// Cells returns the row major backing slice. Callers must not modify it.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

func (b *Buffer) Spot(x int, y int) (Cell, bool) {
	if !b.inside(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// SetSpot writes c at (x, y). It returns false, leaving the buffer untouched,
// when the position is off the grid or the character is not valid.
func (b *Buffer) SetSpot(x int, y int, c Cell) bool {
	if !b.inside(x, y) || !ValidChar(c.Char) {
		return false
	}
	b.cells[y*b.width+x] = c
	return true
}

// Clear fills every cell with the default.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = b.def
	}
}

func (b *Buffer) SetDimensionsAndClear(width int, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	b.resize(width, height)
	return nil
}

func (b *Buffer) SetDefaultsAndClear(def Cell) error {
	if !ValidChar(def.Char) {
		return fmt.Errorf("%w: %q", ErrChar, def.Char)
	}
	b.def = def
	b.Clear()
	return nil
}

// CopyFrom makes b an exact copy of src, reusing b's storage when it is large
// enough.
func (b *Buffer) CopyFrom(src *Buffer) {
	b.width, b.height, b.def = src.width, src.height, src.def
	if cap(b.cells) < len(src.cells) {
		b.cells = make([]Cell, len(src.cells))
	}
	b.cells = b.cells[:len(src.cells)]
	copy(b.cells, src.cells)
}

// DrawOnto merges src onto b with src's top left corner at (x, y). Cells that
// fall outside b are clipped. It returns the number of cells of b that changed.
func (b *Buffer) DrawOnto(src *Buffer, x int, y int) int {
	dirty := 0
	for sy := 0; sy < src.height; sy++ {
		ty := y + sy
		if ty < 0 || ty >= b.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			tx := x + sx
			if tx < 0 || tx >= b.width {
				continue
			}
			c := src.cells[sy*src.width+sx]
			idx := ty*b.width + tx
			if b.cells[idx] != c {
				b.cells[idx] = c
				dirty++
			}
		}
	}
	return dirty
}

func (b *Buffer) inside(x int, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Buffer) resize(width int, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	}
	b.cells = b.cells[:size]
	b.width, b.height = width, height
	b.Clear()
}
