// Package serial drives a VT100 compatible terminal attached to a serial line.
package serial

import (
	"fmt"
	"io"

	"github.td.teradata.com/sandbox/tam-ctl/internal/config"
	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/display"
	srl "go.bug.st/serial"
)

// Port is the part of a serial port the device uses.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
}

// Serial implements display.Terminal and keyboard.Source over a serial line.
// A serial terminal cannot report its size, so the configured size is used.
type Serial struct {
	port   Port
	name   string
	width  int
	height int
	raw    bool
	buf    [1]byte
}

// Open opens the configured port with a zero read timeout so reads never
// wait for input.
func Open(cfg *config.Serial, width int, height int) (*Serial, error) {
	mode := &srl.Mode{
		DataBits: cfg.DataBits,
		BaudRate: cfg.BaudRate,
		StopBits: toStopBits(cfg.StopBits),
		Parity:   toParity(cfg.Parity),
	}
	port, err := srl.Open(cfg.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.PortName, err)
	}
	if err := port.SetReadTimeout(0); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", cfg.PortName, err)
	}
	log.Infof("opened port %s at %d baud", cfg.PortName, cfg.BaudRate)
	return New(port, cfg.PortName, width, height), nil
}

// New wraps an already open port.
func New(port Port, name string, width int, height int) *Serial {
	return &Serial{port: port, name: name, width: width, height: height}
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	return srl.GetPortsList()
}

func toStopBits(value float64) srl.StopBits {
	switch value {
	case 1:
		return srl.OneStopBit
	case 1.5:
		return srl.OnePointFiveStopBits
	case 2:
		return srl.TwoStopBits
	default:
		log.Warnf("invalid stop bits %v, using one", value)
		return srl.OneStopBit
	}
}

func toParity(value int) srl.Parity {
	switch value {
	case 0:
		return srl.NoParity
	case 1:
		return srl.OddParity
	case 2:
		return srl.EvenParity
	case 3:
		return srl.MarkParity
	case 4:
		return srl.SpaceParity
	default:
		log.Warnf("invalid parity %d, using none", value)
		return srl.NoParity
	}
}

func (s *Serial) Dimensions() (int, int) {
	return s.width, s.height
}

// EnableRawInput discards anything typed before input was wanted. The line
// itself is always raw.
func (s *Serial) EnableRawInput() error {
	if s.raw {
		return nil
	}
	if err := s.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("reset input on %s: %w", s.name, err)
	}
	s.raw = true
	return nil
}

func (s *Serial) DisableRawInput() error {
	s.raw = false
	return nil
}

func (s *Serial) PollByte() (byte, bool, error) {
	if !s.raw {
		return 0, false, nil
	}
	n, err := s.port.Read(s.buf[:])
	if n == 1 {
		return s.buf[0], true, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, err
	}
	return 0, false, nil
}

func (s *Serial) ShowCursor(visible bool) error {
	if visible {
		return s.Write([]byte(display.Show))
	}
	return s.Write([]byte(display.Hide))
}

func (s *Serial) Clear() error {
	return s.Write([]byte(display.ResetColours + display.ClearScreen + display.Home))
}

// Write sends all of p. The port may accept it in several pieces.
func (s *Serial) Write(p []byte) error {
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return fmt.Errorf("write to %s: %w", s.name, err)
		}
		if n == 0 {
			return fmt.Errorf("write to %s: %w", s.name, io.ErrShortWrite)
		}
		p = p[n:]
	}
	return nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}
