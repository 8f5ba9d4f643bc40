package buffer

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		def    Cell
		err    error
	}{
		{"normal", 4, 3, Blank, nil},
		{"zero width", 0, 3, Blank, nil},
		{"zero height", 5, 0, Blank, nil},
		{"negative width", -1, 3, Blank, ErrDimensions},
		{"negative height", 2, -3, Blank, ErrDimensions},
		{"empty default", 2, 2, Cell{Char: ""}, ErrChar},
		{"two graphemes", 2, 2, Cell{Char: "ab"}, ErrChar},
		{"wide default", 2, 2, Cell{Char: "世"}, ErrChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.width, tt.height, tt.def)
			if !errors.Is(err, tt.err) {
				t.Fatalf("New() error = %v, want %v", err, tt.err)
			}
			if err != nil {
				return
			}
			w, h := b.Dimensions()
			if w != tt.width || h != tt.height {
				t.Errorf("Dimensions() = %d,%d, want %d,%d", w, h, tt.width, tt.height)
			}
			if len(b.Cells()) != tt.width*tt.height {
				t.Errorf("len(Cells()) = %d, want %d", len(b.Cells()), tt.width*tt.height)
			}
			for i, c := range b.Cells() {
				if c != tt.def {
					t.Fatalf("cell %d = %+v, want default %+v", i, c, tt.def)
				}
			}
		})
	}
}

func TestValidChar(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"a", true},
		{" ", true},
		{"é", true},
		{"e\u0301", true},
		{"", false},
		{"ab", false},
		{"世", false},
	}
	for _, tt := range tests {
		if got := ValidChar(tt.s); got != tt.want {
			t.Errorf("ValidChar(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestSetSpot(t *testing.T) {
	b, _ := New(3, 2, Blank)
	c := Cell{Char: "x", Foreground: 4, Background: 7}

	if !b.SetSpot(2, 1, c) {
		t.Fatal("SetSpot(2,1) failed")
	}
	if got, ok := b.Spot(2, 1); !ok || got != c {
		t.Errorf("Spot(2,1) = %+v,%v, want %+v", got, ok, c)
	}
	if b.Cells()[5] != c {
		t.Errorf("cell not stored row major")
	}

	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if b.SetSpot(p[0], p[1], c) {
			t.Errorf("SetSpot(%d,%d) accepted an off-grid position", p[0], p[1])
		}
		if _, ok := b.Spot(p[0], p[1]); ok {
			t.Errorf("Spot(%d,%d) reported an off-grid position", p[0], p[1])
		}
	}
	if b.SetSpot(0, 0, Cell{Char: "ab"}) {
		t.Error("SetSpot accepted a two character cell")
	}
}

func TestSetDimensionsAndClear(t *testing.T) {
	def := Cell{Char: ".", Foreground: 1, Background: 2}
	b, _ := New(2, 2, def)
	b.SetSpot(0, 0, Cell{Char: "x"})

	if err := b.SetDimensionsAndClear(4, 1); err != nil {
		t.Fatal(err)
	}
	if w, h := b.Dimensions(); w != 4 || h != 1 {
		t.Fatalf("Dimensions() = %d,%d", w, h)
	}
	for _, c := range b.Cells() {
		if c != def {
			t.Fatalf("cell %+v not cleared to default", c)
		}
	}
	if err := b.SetDimensionsAndClear(-1, 1); !errors.Is(err, ErrDimensions) {
		t.Errorf("negative resize error = %v", err)
	}
}

func TestSetDefaultsAndClear(t *testing.T) {
	b, _ := New(2, 1, Blank)
	b.SetSpot(1, 0, Cell{Char: "z", Foreground: 3})
	def := Cell{Char: " ", Foreground: 5, Background: 6}

	if err := b.SetDefaultsAndClear(def); err != nil {
		t.Fatal(err)
	}
	if b.Defaults() != def {
		t.Errorf("Defaults() = %+v", b.Defaults())
	}
	for _, c := range b.Cells() {
		if c != def {
			t.Fatalf("cell %+v not cleared", c)
		}
	}
	if err := b.SetDefaultsAndClear(Cell{Char: "世"}); !errors.Is(err, ErrChar) {
		t.Errorf("wide default error = %v", err)
	}
}

func TestDrawOnto(t *testing.T) {
	dst, _ := New(4, 3, Blank)
	src, _ := New(2, 2, Cell{Char: "#", Foreground: 1, Background: 2})

	if n := dst.DrawOnto(src, 1, 1); n != 4 {
		t.Errorf("first DrawOnto dirty = %d, want 4", n)
	}
	if n := dst.DrawOnto(src, 1, 1); n != 0 {
		t.Errorf("repeated DrawOnto dirty = %d, want 0", n)
	}
	if c, _ := dst.Spot(2, 2); c.Char != "#" {
		t.Errorf("Spot(2,2) = %+v", c)
	}
	if c, _ := dst.Spot(0, 0); c != Blank {
		t.Errorf("Spot(0,0) = %+v, want untouched", c)
	}

	// clipped on every side
	if n := dst.DrawOnto(src, -1, 2); n != 1 {
		t.Errorf("clipped DrawOnto dirty = %d, want 1", n)
	}
	if n := dst.DrawOnto(src, 10, 10); n != 0 {
		t.Errorf("off-grid DrawOnto dirty = %d, want 0", n)
	}
}

func TestCopyFrom(t *testing.T) {
	src, _ := New(3, 1, Blank)
	src.SetSpot(1, 0, Cell{Char: "k", Foreground: 9})
	dst, _ := New(0, 0, Cell{Char: "-"})

	dst.CopyFrom(src)
	if w, h := dst.Dimensions(); w != 3 || h != 1 {
		t.Fatalf("Dimensions() = %d,%d", w, h)
	}
	if dst.Defaults() != Blank {
		t.Errorf("Defaults() = %+v", dst.Defaults())
	}
	src.SetSpot(1, 0, Blank)
	if c, _ := dst.Spot(1, 0); c.Char != "k" {
		t.Errorf("copy shares storage with source")
	}
}
