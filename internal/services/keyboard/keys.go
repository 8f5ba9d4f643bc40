package keyboard

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Class tags what kind of key was decoded.
type Class int

const (
	Normal Class = iota
	Special
	Whitespace
)

func (c Class) String() string {
	switch c {
	case Normal:
		return "NORMAL"
	case Special:
		return "SPECIAL"
	case Whitespace:
		return "WHITESPACE"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Key is a decoded key: the printable character itself for Normal and
// Whitespace keys, or a name such as "UP" or "F5_SHIFT" for Special keys.
type Key struct {
	Label string
	Class Class
}

// Signature separator between decimal byte values.
const separator = ";"

const (
	esc       = 27
	csi       = '[' // 91
	ss3       = 'O' // 79
	tilde     = '~' // 126
	backspace = 127
)

// printable characters decoded as themselves
const normalKeys = "0123456789" +
	"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"`-=[]\\;',./~!@#$%^&*()_+{}|:\"<>?"

var (
	table     map[string]Key
	tableOnce sync.Once
)

// Signature encodes a byte sequence the way the key table is keyed:
// decimal values joined by ";", eg "27;91;65".
func Signature(bs []byte) string {
	var b strings.Builder
	for i, c := range bs {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	return b.String()
}

func seq(bs ...byte) string {
	return Signature(bs)
}

// keyTable returns the shared key table, building it on first use.
func keyTable() map[string]Key {
	tableOnce.Do(func() {
		table = buildTable()
	})
	return table
}

func buildTable() map[string]Key {
	keys := make(map[string]Key, 128)

	for _, r := range normalKeys {
		keys[seq(byte(r))] = Key{string(r), Normal}
	}

	// ESC [ A..D
	arrows := []struct {
		code  byte
		label string
	}{
		{'A', "UP"},
		{'B', "DOWN"},
		{'D', "LEFT"},
		{'C', "RIGHT"},
	}
	for _, a := range arrows {
		keys[seq(esc, csi, a.code)] = Key{a.label, Special}
	}

	// F1-F4: ESC O P..S, shifted ESC [ 1 ; 2 P..S
	for i := byte(0); i < 4; i++ {
		label := fmt.Sprintf("F%d", i+1)
		keys[seq(esc, ss3, 'P'+i)] = Key{label, Special}
		keys[seq(esc, csi, '1', ';', '2', 'P'+i)] = Key{label + "_SHIFT", Special}
	}

	// F5-F9, F12: ESC [ n n ~, shifted ESC [ n n ; 2 ~
	tildes := []struct {
		code  string
		label string
	}{
		{"15", "F5"},
		{"17", "F6"},
		{"18", "F7"},
		{"19", "F8"},
		{"20", "F9"},
		{"24", "F12"},
	}
	for _, f := range tildes {
		keys[seq(esc, csi, f.code[0], f.code[1], tilde)] = Key{f.label, Special}
		keys[seq(esc, csi, f.code[0], f.code[1], ';', '2', tilde)] = Key{f.label + "_SHIFT", Special}
	}

	keys[seq(esc, csi, '3', tilde)] = Key{"DELETE", Special}

	keys[seq('\t')] = Key{"\t", Whitespace}
	keys[seq('\n')] = Key{"\n", Whitespace}
	keys[seq(' ')] = Key{" ", Whitespace}

	keys[seq(backspace)] = Key{"BACKSPACE", Special}
	keys[seq(esc)] = Key{"ESCAPE", Special}

	return keys
}

// Table returns a copy of the key table.
func Table() map[string]Key {
	src := keyTable()
	keys := make(map[string]Key, len(src))
	for sig, k := range src {
		keys[sig] = k
	}
	return keys
}

// Lookup returns the key for a signature.
func Lookup(signature string) (Key, bool) {
	k, ok := keyTable()[signature]
	return k, ok
}
