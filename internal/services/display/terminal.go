// https://www.lihaoyi.com/post/BuildyourownCommandLinewithANSIescapecodes.html#colors
package display

const (
	ClearScreen = "\u001b[2J"   // clears entire screen
	Home        = "\u001b[1;1H" // moves cursor to row 1 column 1

	// 256 colour foreground and background in a single SGR, eg ESC[38;5;20;48;5;232m
	sgrStart     = "\u001b["
	sgrFg256     = "38;5;"
	sgrBg256     = "48;5;"
	sgrDefaultFg = "39"
	sgrDefaultBg = "49"
	sgrEnd       = "m"

	ResetColours = "\u001b[0m"

	// Show / Hide cursor
	Show = "\u001b[?25h"
	Hide = "\u001b[?25l"
)

// Terminal is the set of operating system level calls the renderer depends
// on. Implementations live in the tty and serial packages; tests inject a fake.
type Terminal interface {
	// Dimensions returns the current width and height in cells.
	Dimensions() (width int, height int)

	EnableRawInput() error
	DisableRawInput() error
	ShowCursor(visible bool) error
	Clear() error

	// Write sends p to the terminal with a single write and flush.
	Write(p []byte) error
}
