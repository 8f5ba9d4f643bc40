package display

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/buffer"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/palette"
)

// Mode selects how a frame is serialised.
type Mode int

const (
	// Mode2 paints the whole frame in the frame's default colour pair.
	Mode2 Mode = 2
	// Mode16 paints every cell in its own colour pair.
	Mode16 Mode = 16
)

var ErrInvalidMode = errors.New("unsupported draw mode")

// Modes returns every supported draw mode.
func Modes() []Mode {
	return []Mode{Mode2, Mode16}
}

func (m Mode) Valid() bool {
	switch m {
	case Mode2, Mode16:
		return true
	default:
		return false
	}
}

// ParseMode converts a configured integer into a Mode.
func ParseMode(n int) (Mode, error) {
	m := Mode(n)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, n)
	}
	return m, nil
}

// Stats describes the last successful Draw.
type Stats struct {
	Dirty   int  // cells changed on the shadow buffer
	Bytes   int  // payload size written to the terminal
	Cleared bool // the terminal was cleared or the defaults changed
}

// Renderer keeps a shadow copy of what the terminal shows and writes each new
// frame as a single escape sequence payload.
//
// The shadow is only replaced once the terminal write succeeds, so a failed
// Draw leaves it describing the last frame the terminal accepted. A failed
// write may still have reached the terminal in part; the next Draw repaints
// every cell, which repairs that.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	term    Terminal
	last    *buffer.Buffer
	scratch *buffer.Buffer
	mode    Mode
	out     bytes.Buffer
	stats   Stats
	active  bool
}

func NewRenderer(t Terminal) *Renderer {
	return &Renderer{
		term:    t,
		last:    blank(),
		scratch: blank(),
		mode:    Mode16,
	}
}

func blank() *buffer.Buffer {
	b, _ := buffer.New(0, 0, buffer.Blank)
	return b
}

// SetMode changes the serialisation used from the next Draw on.
func (r *Renderer) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	if m != r.mode {
		log.Debugf("draw mode %d -> %d", r.mode, m)
	}
	r.mode = m
	return nil
}

func (r *Renderer) Mode() Mode {
	return r.mode
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

func (r *Renderer) Dimensions() (int, int) {
	return r.term.Dimensions()
}

// Start clears the terminal, hides the cursor and enables raw input.
// Calling it again while started does nothing.
func (r *Renderer) Start() error {
	if r.active {
		return nil
	}
	return r.reset()
}

// Stop clears the terminal, restores the cursor and disables raw input. Every
// step is attempted; the first failure is returned.
func (r *Renderer) Stop() error {
	if !r.active {
		return nil
	}
	r.active = false

	var first error
	record := func(step string, err error) {
		if err != nil && first == nil {
			first = fmt.Errorf("%s: %w", step, err)
		}
	}
	record("reset colours", r.term.Write([]byte(ResetColours)))
	record("clear", r.term.Clear())
	record("show cursor", r.term.ShowCursor(true))
	record("disable raw input", r.term.DisableRawInput())
	return first
}

func (r *Renderer) reset() error {
	if err := r.term.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if err := r.term.ShowCursor(false); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}
	if err := r.term.EnableRawInput(); err != nil {
		return fmt.Errorf("enable raw input: %w", err)
	}
	r.active = true
	return nil
}

// Draw brings the terminal up to date with frame. The frame is centred on the
// terminal and clipped to it.
func (r *Renderer) Draw(frame *buffer.Buffer) error {
	next := r.scratch
	next.CopyFrom(r.last)
	cleared := false

	width, height := r.term.Dimensions()
	if w, h := next.Dimensions(); w != width || h != height {
		log.Debugf("terminal resized %dx%d -> %dx%d", w, h, width, height)
		if err := r.reset(); err != nil {
			return err
		}
		if err := next.SetDimensionsAndClear(width, height); err != nil {
			return err
		}
		cleared = true
	}

	// the shadow's default character is always a space
	def := frame.Defaults()
	def.Char = " "
	if next.Defaults() != def {
		if err := next.SetDefaultsAndClear(def); err != nil {
			return err
		}
		cleared = true
	}

	fw, fh := frame.Dimensions()
	dirty := next.DrawOnto(frame, (width-fw)/2, (height-fh)/2)
	if cleared {
		dirty = width * height
	}

	r.out.Reset()
	switch r.mode {
	case Mode2:
		r.encode2(next)
	case Mode16:
		r.encode16(next)
	}

	if err := r.term.Write(r.out.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	r.last, r.scratch = next, r.last
	r.stats = Stats{Dirty: dirty, Bytes: r.out.Len(), Cleared: cleared}
	return nil
}

// encode2 writes the characters in the buffer's default colour pair only.
func (r *Renderer) encode2(b *buffer.Buffer) {
	r.out.WriteString(Home)
	if b.Empty() {
		return
	}
	def := b.Defaults()
	r.writeColour(def.Foreground, def.Background)
	for _, c := range b.Cells() {
		r.out.WriteString(c.Char)
	}
}

// encode16 writes a colour escape only where the colour pair changes from the
// previous cell, so output grows with colour transitions rather than cells.
func (r *Renderer) encode16(b *buffer.Buffer) {
	r.out.WriteString(Home)
	cells := b.Cells()
	for i, c := range cells {
		if i == 0 || c.Foreground != cells[i-1].Foreground || c.Background != cells[i-1].Background {
			r.writeColour(c.Foreground, c.Background)
		}
		r.out.WriteString(c.Char)
	}
}

// writeColour emits one SGR for the pair. Indexes with no palette entry fall
// back to the terminal's default colour.
func (r *Renderer) writeColour(fg int, bg int) {
	var num [8]byte
	r.out.WriteString(sgrStart)
	if code, ok := palette.Map(fg); ok {
		r.out.WriteString(sgrFg256)
		r.out.Write(strconv.AppendInt(num[:0], int64(code), 10))
	} else {
		r.out.WriteString(sgrDefaultFg)
	}
	r.out.WriteByte(';')
	if code, ok := palette.Map(bg); ok {
		r.out.WriteString(sgrBg256)
		r.out.Write(strconv.AppendInt(num[:0], int64(code), 10))
	} else {
		r.out.WriteString(sgrDefaultBg)
	}
	r.out.WriteString(sgrEnd)
}
