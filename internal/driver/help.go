package driver

var helpLines = []struct {
	key  string
	text string
}{
	{"arrows", "Move the marker"},
	{"m", "Toggle draw mode 2 / 16"},
	{"[ ]", "Scroll key history"},
	{"c delete", "Clear key history"},
	{"h F1", "Show this page"},
	{"q escape", "Quit"},
}

// drawHelp fills the frame with the key mappings.
func (d *Driver) drawHelp() {
	_, h := d.frame.Dimensions()
	printAt(d.frame, 1, 0, "Key mappings", colourYellow, colourBackground)
	for i, l := range helpLines {
		printAt(d.frame, 1, i+2, l.key, colourYellow, colourBackground)
		printAt(d.frame, 12, i+2, l.text, colourText, colourBackground)
	}
	printAt(d.frame, 1, h-1, "Press any key to return", colourYellow, colourBackground)
}
