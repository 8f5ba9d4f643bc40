package driver

import (
	"context"
	"fmt"
	"time"

	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/buffer"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/keyboard"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/palette"
)

// logical colours
const (
	colourBackground = 0
	colourText       = 7
	colourMarker     = 12
	colourTitle      = 11
	colourYellow     = 14
)

// rows above the key history: title, palette swatches and their labels
const historyTop = 5

// Console is what the driver needs from the terminal backend.
type Console interface {
	Start() error
	Stop() error
	Draw(frame *buffer.Buffer) error
	GetKey() (keyboard.Key, bool, error)
	SetMode(m display.Mode) error
	Mode() display.Mode
	Dimensions() (int, int)
}

// Driver runs the interactive loop: draw a frame, poll for a key, act on it.
type Driver struct {
	console  Console
	interval time.Duration
	frame    *buffer.Buffer
	history  *History
	x, y     int
	help     bool
	notice   string
}

func New(c Console, interval time.Duration) *Driver {
	frame, _ := buffer.New(0, 0, buffer.Cell{Char: " ", Foreground: colourText, Background: colourBackground})
	return &Driver{
		console:  c,
		interval: interval,
		frame:    frame,
		history:  &History{},
		y:        historyTop,
	}
}

// Run loops until the quit key is pressed or ctx is done.
func (d *Driver) Run(ctx context.Context) (err error) {
	if err := d.console.Start(); err != nil {
		return err
	}
	defer func() {
		if serr := d.console.Stop(); err == nil {
			err = serr
		}
	}()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if err := d.console.Draw(d.Frame()); err != nil {
			return err
		}
		key, ok, err := d.console.GetKey()
		if err != nil {
			return err
		}
		if ok && !d.Process(key) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Process acts on one key. It returns false when the loop should stop.
func (d *Driver) Process(key keyboard.Key) bool {
	if d.help {
		d.help = false
		return true
	}

	_, h := d.frame.Dimensions()
	rows := h - historyTop - 1

	switch key.Label {
	case "q", "ESCAPE":
		return false
	case "h", "F1":
		d.help = true
	case "m":
		d.toggleMode()
	case "c", "DELETE":
		d.history.Clear()
		d.notice = "history cleared"
	case "[":
		d.history.Scroll(1, rows)
	case "]":
		d.history.Scroll(-1, rows)
	case "UP":
		d.move(0, -1)
	case "DOWN":
		d.move(0, 1)
	case "LEFT":
		d.move(-1, 0)
	case "RIGHT":
		d.move(1, 0)
	default:
		d.history.Addf("%-10s %s", key.Class, printable(key.Label))
	}
	return true
}

func (d *Driver) toggleMode() {
	next := display.Mode2
	if d.console.Mode() == display.Mode2 {
		next = display.Mode16
	}
	if err := d.console.SetMode(next); err != nil {
		log.Errorf("set draw mode: %v", err)
		d.notice = err.Error()
		return
	}
	d.notice = fmt.Sprintf("draw mode %d", next)
}

func (d *Driver) move(dx int, dy int) {
	w, h := d.frame.Dimensions()
	x, y := d.x+dx, d.y+dy
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	d.x, d.y = x, y
}

// Frame composes the next frame at the terminal's current size.
func (d *Driver) Frame() *buffer.Buffer {
	w, h := d.console.Dimensions()
	if fw, fh := d.frame.Dimensions(); fw != w || fh != h {
		if err := d.frame.SetDimensionsAndClear(w, h); err != nil {
			log.Errorf("resize frame: %v", err)
		}
	} else {
		d.frame.Clear()
	}
	if d.frame.Empty() {
		return d.frame
	}

	if d.help {
		d.drawHelp()
		return d.frame
	}

	printAt(d.frame, 1, 0, fmt.Sprintf("tam-ctl  mode %d  %dx%d", d.console.Mode(), w, h), colourTitle, colourBackground)

	// palette swatches
	for i := 0; i < palette.Size; i++ {
		x := 1 + i*3
		printAt(d.frame, x, 2, "  ", colourText, i)
		printAt(d.frame, x, 3, fmt.Sprintf("%x", i), colourText, colourBackground)
	}

	rows := h - historyTop - 1
	for i, line := range d.history.Page(rows) {
		printAt(d.frame, 1, historyTop+i, line, colourText, colourBackground)
	}

	d.frame.SetSpot(d.x, d.y, buffer.Cell{Char: "@", Foreground: colourMarker, Background: colourBackground})

	status := "h help  m mode  q quit"
	if d.notice != "" {
		status = d.notice
	}
	printAt(d.frame, 1, h-1, status, colourYellow, colourBackground)
	return d.frame
}

// printAt writes text from (x, y) along the row, clipped at the frame edge.
// Characters that do not fit one cell are skipped.
func printAt(b *buffer.Buffer, x int, y int, text string, fg int, bg int) {
	for _, r := range text {
		b.SetSpot(x, y, buffer.Cell{Char: string(r), Foreground: fg, Background: bg})
		x++
	}
}

func printable(label string) string {
	switch label {
	case "\t":
		return "TAB"
	case "\n":
		return "NEWLINE"
	case " ":
		return "SPACE"
	default:
		return label
	}
}
