// Package keyboard turns raw terminal input into keys.
package keyboard

import "fmt"

// Source yields input bytes without blocking. ok is false when no byte is
// available right now.
type Source interface {
	PollByte() (b byte, ok bool, err error)
}

// Decoder reads one key per call from a Source.
//
// Each call drains every byte available at that moment and looks the whole
// burst up as a single sequence. Nothing is carried between calls, so an
// escape sequence whose bytes arrive across two calls is not recognised and
// is dropped.
type Decoder struct {
	source Source
	keys   map[string]Key
	buf    []byte
}

func NewDecoder(src Source) *Decoder {
	return &Decoder{
		source: src,
		keys:   keyTable(),
		buf:    make([]byte, 0, 16),
	}
}

// GetKey returns the next key. ok is false when no input was waiting or the
// input did not match any known key.
func (d *Decoder) GetKey() (key Key, ok bool, err error) {
	d.buf = d.buf[:0]
	for {
		b, more, err := d.source.PollByte()
		if err != nil {
			return Key{}, false, fmt.Errorf("read key: %w", err)
		}
		if !more {
			break
		}
		d.buf = append(d.buf, b)
	}
	if len(d.buf) == 0 {
		return Key{}, false, nil
	}
	key, ok = d.keys[Signature(d.buf)]
	return key, ok, nil
}

// LastSignature returns the signature of the bytes drained by the last
// GetKey, matched or not.
func (d *Decoder) LastSignature() string {
	return Signature(d.buf)
}
