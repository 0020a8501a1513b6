package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Defaults used when a Config field is zero.
const (
	DefaultPath        = "/dev/ttyUSB0"
	DefaultBaudRate    = 115200
	DefaultReadTimeout = time.Second
)

// Config describes the serial link. The line is always 8N1.
type Config struct {
	// Path is the device node, e.g. /dev/ttyUSB0 or COM3
	Path string

	// BaudRate is the line speed in baud
	BaudRate int

	// ReadTimeout bounds a single Read; an expired read returns (0, nil)
	ReadTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	return c
}

// Port is an open serial link.
type Port struct {
	port serial.Port
	path string
}

// Open opens the serial port described by cfg.
func Open(cfg Config) (*Port, error) {
	cfg = cfg.withDefaults()
	if cfg.BaudRate < 0 {
		return nil, fmt.Errorf("invalid baud rate %d", cfg.BaudRate)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Path, err)
	}

	return &Port{port: port, path: cfg.Path}, nil
}

// Path returns the device node the port was opened from.
func (p *Port) Path() string {
	return p.path
}

// Read reads from the port. It returns (0, nil) when the read timeout expires
// with no data.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes to the port.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close releases the port.
func (p *Port) Close() error {
	return p.port.Close()
}
