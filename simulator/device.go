package simulator

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/moffa90/go-eeprom/protocol"
	"github.com/moffa90/go-eeprom/srec"
)

// Device answer lines.
const (
	nakNotStarted     = "not started"
	nakUnknownCommand = "unknown command"
	nakInvalidRecord  = "invalid record"
	nakPageBoundary   = "page boundary crossed"
	nakOutOfRange     = "address out of range"
)

const lineEnding = "\r\n"

// Device is a simulated EEPROM burner. It is safe for concurrent use.
type Device struct {
	mu sync.Mutex

	mem     [srec.MemorySize]byte
	pending []byte
	out     bytes.Buffer

	begun  bool
	closed bool

	connectResets int
	banner        []string
	stuck         map[int]bool
	echoOffset    uint16

	commands   []string
	pageWrites int
	hangups    int
}

// New creates an erased device.
func New(opts ...Option) *Device {
	d := &Device{
		stuck: make(map[int]bool),
	}
	d.fill(0xFF)

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Write feeds command bytes to the device. Complete lines are executed
// immediately and their answers queued for Read.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, io.ErrClosedPipe
	}

	d.pending = append(d.pending, p...)
	for {
		i := bytes.IndexByte(d.pending, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(d.pending[:i]), "\r")
		d.pending = d.pending[i+1:]
		d.execute(line)
	}
	return len(p), nil
}

// Read returns queued answer bytes. With nothing queued it returns (0, nil),
// the way a serial port read times out.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, io.EOF
	}
	if d.out.Len() == 0 {
		return 0, nil
	}
	return d.out.Read(p)
}

// Close disconnects the device. Later reads return io.EOF.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	return nil
}

// HandleReset records that the host applied its reset fix.
func (d *Device) HandleReset(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.hangups++
	return nil
}

// Reboot simulates a spontaneous device reset: the session is dropped and a
// RESET line is queued.
func (d *Device) Reboot() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reboot()
}

// Memory returns a copy of size bytes starting at address.
func (d *Device) Memory(address uint16, size int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]byte, size)
	copy(out, d.mem[int(address):])
	return out
}

// Commands returns every command line received, in order.
func (d *Device) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.commands...)
}

// PageWrites returns how many page writes actually changed memory.
func (d *Device) PageWrites() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pageWrites
}

// Hangups returns how many times HandleReset was called.
func (d *Device) Hangups() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.hangups
}

// Begun reports whether a session is open.
func (d *Device) Begun() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.begun
}

func (d *Device) execute(line string) {
	d.commands = append(d.commands, line)

	if line == protocol.CmdBegin {
		if d.connectResets > 0 {
			d.connectResets--
			d.reboot()
			return
		}
		for _, msg := range d.banner {
			d.send(protocol.MsgPrefix + msg)
		}
		d.begun = true
		d.ack(protocol.CmdBegin)
		return
	}

	if !d.begun {
		d.nak(nakNotStarted)
		return
	}

	switch {
	case line == protocol.CmdErase:
		d.fill(0xFF)
		d.ack(protocol.CmdErase)
	case line == protocol.CmdEnd:
		d.begun = false
		d.ack(protocol.CmdEnd)
	case len(line) > 0 && protocol.Mode(line[0]).Valid():
		d.page(protocol.Mode(line[0]), line[1:])
	default:
		d.nak(nakUnknownCommand)
	}
}

// page handles a W or V request.
func (d *Device) page(mode protocol.Mode, record string) {
	address, data, reason := decodeRecord(record)
	if reason != "" {
		d.nak(reason)
		return
	}

	size := len(data)
	start := int(address)
	current := d.mem[start : start+size]

	acked := protocol.ModeVerify
	if !bytes.Equal(current, data) {
		acked = protocol.ModeWrite
		if mode == protocol.ModeWrite && !d.stuck[start>>srec.PageBits] {
			copy(current, data)
			d.pageWrites++
		}
	}

	d.send(fmt.Sprintf("%s%c:%04X:%d", protocol.AckPrefix, byte(acked), address+d.echoOffset, size))
}

// decodeRecord validates an S1 record the way the firmware does and returns
// its address and data, or a NAK reason.
func decodeRecord(record string) (uint16, []byte, string) {
	if err := srec.VerifyChecksum(record); err != nil {
		return 0, nil, nakInvalidRecord
	}

	raw, err := hex.DecodeString(record[2:])
	if err != nil || len(raw) < 4 || int(raw[0]) != len(raw)-1 {
		return 0, nil, nakInvalidRecord
	}

	address := uint16(raw[1])<<8 | uint16(raw[2])
	data := raw[3 : len(raw)-1]

	if int(address)+len(data) > srec.MemorySize {
		return 0, nil, nakOutOfRange
	}
	if len(data) > 0 && !srec.SamePage(uint32(address), len(data)) {
		return 0, nil, nakPageBoundary
	}
	return address, data, ""
}

func (d *Device) reboot() {
	d.begun = false
	d.send(protocol.ResetLine)
}

func (d *Device) fill(b byte) {
	for i := range d.mem {
		d.mem[i] = b
	}
}

func (d *Device) ack(cmd string) {
	d.send(protocol.AckPrefix + cmd)
}

func (d *Device) nak(reason string) {
	d.send(protocol.NakPrefix + reason)
}

func (d *Device) send(line string) {
	d.out.WriteString(line)
	d.out.WriteString(lineEnding)
}
