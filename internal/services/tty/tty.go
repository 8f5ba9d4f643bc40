// Package tty drives a Unix terminal: escape sequence output to a file and
// raw, non-blocking byte input from the controlling tty.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/pkg/term"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/display"
)

const (
	DefaultDevice = "/dev/tty"

	fallbackWidth  = 80
	fallbackHeight = 24
)

var ErrNotATerminal = errors.New("not attached to an interactive terminal")

// Supported reports whether stdin, stdout and stderr are all terminals.
func Supported() bool {
	return supported(os.Stdin, os.Stdout, os.Stderr)
}

func supported(files ...*os.File) bool {
	for _, f := range files {
		if f == nil || !xterm.IsTerminal(int(f.Fd())) {
			return false
		}
	}
	return true
}

// ColourMode picks the draw mode the environment can show: two colours when
// the terminal has no colour support, sixteen otherwise.
func ColourMode() display.Mode {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return display.Mode2
	}
	return display.Mode16
}

type Options struct {
	// Device is opened in raw mode for input. Defaults to /dev/tty.
	Device string
	// Out receives frames. Defaults to os.Stdout.
	Out *os.File
	// Check lists the files that must be terminals. Defaults to stdin,
	// stdout and stderr.
	Check []*os.File
}

// TTY implements display.Terminal and keyboard.Source.
type TTY struct {
	device string
	out    *os.File
	w      *bufio.Writer
	in     *term.Term
	buf    [1]byte
}

// Open returns a TTY, or ErrNotATerminal when the process is not attached to
// an interactive terminal. Input is not touched until EnableRawInput.
func Open(opts Options) (*TTY, error) {
	if opts.Device == "" {
		opts.Device = DefaultDevice
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Check == nil {
		opts.Check = []*os.File{os.Stdin, os.Stdout, os.Stderr}
	}
	if !supported(opts.Check...) {
		return nil, ErrNotATerminal
	}
	return &TTY{
		device: opts.Device,
		out:    opts.Out,
		w:      bufio.NewWriterSize(opts.Out, 64*1024),
	}, nil
}

func (t *TTY) Dimensions() (int, int) {
	w, h, err := xterm.GetSize(int(t.out.Fd()))
	if err == nil {
		return w, h
	}
	log.Warnf("unable to read terminal size (%v), assuming %dx%d", err, fallbackWidth, fallbackHeight)
	return fallbackWidth, fallbackHeight
}

// EnableRawInput opens the input device in raw mode. It does nothing if
// already enabled.
func (t *TTY) EnableRawInput() error {
	if t.in != nil {
		return nil
	}
	in, err := term.Open(t.device, term.RawMode)
	if err != nil {
		return fmt.Errorf("open %s: %w", t.device, err)
	}
	t.in = in
	return nil
}

func (t *TTY) DisableRawInput() error {
	if t.in == nil {
		return nil
	}
	in := t.in
	t.in = nil
	if err := in.Restore(); err != nil {
		in.Close()
		return fmt.Errorf("restore %s: %w", t.device, err)
	}
	return in.Close()
}

// PollByte reads one byte if one is waiting. Without raw input enabled there
// is never anything to read.
//
// Raw mode reads block for at least one byte (VMIN 1), so the input queue
// is checked first and Read is only called when it holds data.
func (t *TTY) PollByte() (byte, bool, error) {
	if t.in == nil {
		return 0, false, nil
	}
	waiting, err := t.in.Available()
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("poll %s: %w", t.device, err)
	}
	if waiting == 0 {
		return 0, false, nil
	}
	n, err := t.in.Read(t.buf[:])
	if n == 1 {
		return t.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, unix.EINTR) {
		return 0, false, nil
	}
	return 0, false, err
}

func (t *TTY) ShowCursor(visible bool) error {
	if visible {
		return t.Write([]byte(display.Show))
	}
	return t.Write([]byte(display.Hide))
}

func (t *TTY) Clear() error {
	return t.Write([]byte(display.ResetColours + display.ClearScreen + display.Home))
}

// Write sends p in one write and flushes it.
func (t *TTY) Write(p []byte) error {
	if _, err := t.w.Write(p); err != nil {
		return err
	}
	return t.w.Flush()
}

// Close releases the input device.
func (t *TTY) Close() error {
	return t.DisableRawInput()
}
