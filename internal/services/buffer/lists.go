package buffer

import "fmt"

// FromLists builds a buffer directly from row lists of characters and colours.
// The first cell supplies the defaults. fg and bg must have the same shape as
// chars; a nil colour list means colour 0 everywhere.
func FromLists(chars [][]string, fg [][]int, bg [][]int) (*Buffer, error) {
	def := Blank
	width := 0
	if len(chars) > 0 {
		width = len(chars[0])
		if width > 0 {
			def.Char = chars[0][0]
		}
	}
	def.Foreground = first(fg)
	def.Background = first(bg)

	b, err := New(width, len(chars), def)
	if err != nil {
		return nil, err
	}
	if err := checkShape("foreground", fg, width, len(chars)); err != nil {
		return nil, err
	}
	if err := checkShape("background", bg, width, len(chars)); err != nil {
		return nil, err
	}
	if b.Empty() {
		return b, nil
	}

	for y, row := range chars {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), width)
		}
		for x, ch := range row {
			c := Cell{Char: ch, Foreground: at(fg, x, y), Background: at(bg, x, y)}
			if !b.SetSpot(x, y, c) {
				return nil, fmt.Errorf("%w: %q at %d,%d", ErrChar, ch, x, y)
			}
		}
	}
	return b, nil
}

func first(layer [][]int) int {
	if len(layer) == 0 || len(layer[0]) == 0 {
		return 0
	}
	return layer[0][0]
}

// checkShape accepts a nil layer or one with exactly height rows of width.
func checkShape(name string, layer [][]int, width int, height int) error {
	if layer == nil {
		return nil
	}
	if len(layer) != height {
		return fmt.Errorf("%s has %d rows, want %d", name, len(layer), height)
	}
	for y, row := range layer {
		if len(row) != width {
			return fmt.Errorf("%s row %d has %d cells, want %d", name, y, len(row), width)
		}
	}
	return nil
}

func at(layer [][]int, x int, y int) int {
	if layer == nil {
		return 0
	}
	return layer[y][x]
}
