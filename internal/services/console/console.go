// Package console joins the renderer and key decoder over one terminal device.
//
// A Console is built explicitly and held by the caller. Open refuses to build
// one when the process is not attached to a terminal, so nothing is half
// initialised.
package console

import (
	"github.td.teradata.com/sandbox/tam-ctl/internal/config"
	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/buffer"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/keyboard"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/serial"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/tty"
)

// Device is a terminal that can be drawn to and read from.
type Device interface {
	display.Terminal
	keyboard.Source
}

type closer interface {
	Close() error
}

type Console struct {
	device   Device
	renderer *display.Renderer
	decoder  *keyboard.Decoder
}

func New(device Device) *Console {
	return &Console{
		device:   device,
		renderer: display.NewRenderer(device),
		decoder:  keyboard.NewDecoder(device),
	}
}

// Open builds a Console from configuration: a serial terminal when a port is
// configured, the controlling tty otherwise.
func Open(cfg *config.Config) (*Console, error) {
	var device Device
	mode := display.Mode(cfg.Terminal.Mode)

	if cfg.Serial.PortName != "" {
		s, err := serial.Open(cfg.Serial, cfg.Terminal.Width, cfg.Terminal.Height)
		if err != nil {
			return nil, err
		}
		device = s
		if mode == 0 {
			mode = display.Mode16
		}
	} else {
		t, err := tty.Open(tty.Options{Device: cfg.Terminal.Device})
		if err != nil {
			return nil, err
		}
		device = t
		if mode == 0 {
			mode = tty.ColourMode()
		}
	}

	c := New(device)
	if err := c.SetMode(mode); err != nil {
		c.Close()
		return nil, err
	}
	log.Infof("console open, draw mode %d", mode)
	return c, nil
}

func (c *Console) SetMode(m display.Mode) error {
	return c.renderer.SetMode(m)
}

func (c *Console) Mode() display.Mode {
	return c.renderer.Mode()
}

func (c *Console) Modes() []display.Mode {
	return display.Modes()
}

func (c *Console) Draw(frame *buffer.Buffer) error {
	return c.renderer.Draw(frame)
}

// Stats describes the last frame drawn.
func (c *Console) Stats() display.Stats {
	return c.renderer.Stats()
}

func (c *Console) Start() error {
	return c.renderer.Start()
}

func (c *Console) Stop() error {
	return c.renderer.Stop()
}

// GetKey returns the next key, or ok false when there is none.
func (c *Console) GetKey() (key keyboard.Key, ok bool, err error) {
	key, ok, err = c.decoder.GetKey()
	if err == nil && !ok && c.decoder.LastSignature() != "" {
		log.Debugf("dropped unknown input %s", c.decoder.LastSignature())
	}
	return key, ok, err
}

func (c *Console) Dimensions() (int, int) {
	return c.device.Dimensions()
}

// Close stops the console if needed and releases the device.
func (c *Console) Close() error {
	err := c.Stop()
	if cl, ok := c.device.(closer); ok {
		if cerr := cl.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
