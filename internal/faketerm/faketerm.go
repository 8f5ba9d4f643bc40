// Package faketerm is an in-memory terminal device for tests. It records every
// call the renderer makes and serves input bytes in chunks, returning "no data"
// at the end of each chunk the way a non-blocking tty read does.
package faketerm

import (
	"bytes"
	"sync"
)

// Terminal implements display.Terminal and keyboard.Source.
type Terminal struct {
	mu sync.Mutex

	Width  int
	Height int

	Raw           bool
	CursorVisible bool

	// Events lists the calls made, in order: "clear", "hide", "show",
	// "raw on", "raw off" and "write".
	Events []string
	Writes [][]byte

	// Errors returned by the matching calls when set.
	WriteErr error
	ClearErr error
	RawErr   error
	ReadErr  error

	chunks [][]byte
}

func New(width int, height int) *Terminal {
	return &Terminal{Width: width, Height: height, CursorVisible: true}
}

func (t *Terminal) Dimensions() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Width, t.Height
}

// Resize changes the dimensions reported from now on.
func (t *Terminal) Resize(width int, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Width, t.Height = width, height
}

func (t *Terminal) EnableRawInput() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.RawErr != nil {
		return t.RawErr
	}
	t.Raw = true
	t.Events = append(t.Events, "raw on")
	return nil
}

func (t *Terminal) DisableRawInput() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Raw = false
	t.Events = append(t.Events, "raw off")
	return nil
}

func (t *Terminal) ShowCursor(visible bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.CursorVisible = visible
	if visible {
		t.Events = append(t.Events, "show")
	} else {
		t.Events = append(t.Events, "hide")
	}
	return nil
}

func (t *Terminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ClearErr != nil {
		return t.ClearErr
	}
	t.Events = append(t.Events, "clear")
	return nil
}

func (t *Terminal) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.WriteErr != nil {
		return t.WriteErr
	}
	t.Events = append(t.Events, "write")
	t.Writes = append(t.Writes, append([]byte(nil), p...))
	return nil
}

// Feed queues one chunk of input. Each chunk is drained by a single burst of
// PollByte calls, followed by one "no data" result.
func (t *Terminal) Feed(bs ...byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = append(t.chunks, append([]byte(nil), bs...))
}

// FeedString queues s as one chunk.
func (t *Terminal) FeedString(s string) {
	t.Feed([]byte(s)...)
}

func (t *Terminal) PollByte() (byte, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ReadErr != nil {
		return 0, false, t.ReadErr
	}
	if len(t.chunks) == 0 {
		return 0, false, nil
	}
	if len(t.chunks[0]) == 0 {
		t.chunks = t.chunks[1:]
		return 0, false, nil
	}
	b := t.chunks[0][0]
	t.chunks[0] = t.chunks[0][1:]
	return b, true, nil
}

// Pending reports whether queued input remains.
func (t *Terminal) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.chunks) > 0
}

// Last returns the most recent write, or nil.
func (t *Terminal) Last() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.Writes) == 0 {
		return nil
	}
	return t.Writes[len(t.Writes)-1]
}

// Output returns every write concatenated.
func (t *Terminal) Output() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return bytes.Join(t.Writes, nil)
}

// Reset forgets recorded events and writes.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Events = nil
	t.Writes = nil
}
