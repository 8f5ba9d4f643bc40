package driver

import "fmt"

const maxHistory = 1000

// History keeps the most recent messages for display, newest last.
type History struct {
	messages []string
	offset   int
}

func (h *History) Add(message string) {
	h.messages = append(h.messages, message)
	if len(h.messages) > maxHistory {
		h.messages = h.messages[1:]
	}
	h.offset = 0
}

func (h *History) Addf(format string, a ...interface{}) {
	h.Add(fmt.Sprintf(format, a...))
}

func (h *History) Len() int {
	return len(h.messages)
}

func (h *History) Clear() {
	h.messages = nil
	h.offset = 0
}

// Scroll moves the view back (positive) or forward (negative) through older
// messages, staying within what a page of rows can show.
func (h *History) Scroll(delta int, rows int) {
	offsetMax := len(h.messages) - rows
	if offsetMax < 0 {
		offsetMax = 0
	}
	h.offset += delta
	if h.offset > offsetMax {
		h.offset = offsetMax
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

// Page returns up to rows messages ending at the current scroll position,
// oldest first.
func (h *History) Page(rows int) []string {
	if rows <= 0 {
		return nil
	}
	end := len(h.messages) - h.offset
	start := end - rows
	if start < 0 {
		start = 0
	}
	return h.messages[start:end]
}
