// Package palette maps the sixteen logical colour indexes onto the xterm
// 256-colour cube.
package palette

// Size is the number of logical colours.
const Size = 16

var codes = [Size]int{
	232, // 0 black
	20,  // 1 blue
	34,  // 2 green
	75,  // 3 aqua
	1,   // 4 red
	90,  // 5 purple
	3,   // 6 yellow
	252, // 7 white
	243, // 8 grey
	33,  // 9 light blue
	76,  // 10 light green
	117, // 11 light aqua
	161, // 12 light red
	126, // 13 light purple
	229, // 14 light yellow
	15,  // 15 bright white
}

// Map returns the 256-colour code for a logical colour index.
// ok is false when the index has no mapping.
func Map(index int) (code int, ok bool) {
	if index < 0 || index >= Size {
		return 0, false
	}
	return codes[index], true
}

// Codes returns a copy of the full table, indexed by logical colour.
func Codes() [Size]int {
	return codes
}
