package burner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-eeprom/protocol"
	"github.com/moffa90/go-eeprom/srec"
)

// Transport is the byte stream a Programmer talks over. Reads that time out
// must return (0, nil).
//
//go:generate mockgen -destination=mocks/burner.go -package=mocks github.com/moffa90/go-eeprom/burner Transport,ResetHandler
type Transport interface {
	io.Reader
	io.Writer
}

// Programmer drives one EEPROM burner session over a line-oriented transport.
// It owns the transport exclusively: one request is in flight at a time and
// every operation blocks until the device answers.
//
// Programmer is not safe for concurrent use.
type Programmer struct {
	device io.ReadWriter
	lines  *protocol.LineReader
	config Config

	state   State
	updated int
	resets  int
	started time.Time
}

// Result summarises a completed Program run.
type Result struct {
	// UpdatedPages is the number of pages the write pass changed
	UpdatedPages int

	// Verified is true when a verify pass ran and passed
	Verified bool

	// Erased is true when the device was erased
	Erased bool

	// Resets is the number of RESET responses handled during the handshake
	Resets int
}

// New creates a new Programmer with the given device and options.
// The device is usually a serial port; reads that time out must return
// (0, nil).
//
// Example:
//
//	port, _ := serialport.Open(serialport.Config{Path: "/dev/ttyUSB0"})
//	prog := burner.New(port,
//	    burner.WithProgressCallback(progressFunc),
//	    burner.WithResetHandler(serialport.HangupFixer{Path: "/dev/ttyUSB0"}),
//	)
func New(device io.ReadWriter, opts ...Option) *Programmer {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		device: device,
		lines:  protocol.NewLineReader(device),
		config: cfg,
		state:  StateInit,
	}
}

// State returns the current session state.
func (p *Programmer) State() State {
	return p.state
}

// UpdatedPages returns the number of pages changed by the last write pass.
func (p *Programmer) UpdatedPages() int {
	return p.updated
}

// Resets returns the number of RESET responses handled so far.
func (p *Programmer) Resets() int {
	return p.resets
}

// Program performs the complete session:
//  1. BEGIN handshake, recovering from device resets
//  2. ERASE if WithErase was given
//  3. Write pass over every record of rom
//  4. Verify pass, only if the write pass changed at least one page
//  5. END
//
// A nil rom skips both passes, which together with WithErase erases the
// device. The operation can be cancelled via context.
//
// Example:
//
//	rom, _ := srec.Parse("rom.s19")
//	res, err := prog.Program(context.Background(), rom)
func (p *Programmer) Program(ctx context.Context, rom *srec.ROM) (*Result, error) {
	p.markStart()
	res := &Result{}

	if err := p.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	res.Resets = p.resets

	if p.config.Erase {
		if err := p.Erase(ctx); err != nil {
			return nil, fmt.Errorf("erase: %w", err)
		}
		res.Erased = true
	}

	if rom != nil {
		updated, err := p.WritePass(ctx, rom)
		if err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		res.UpdatedPages = updated

		if updated > 0 {
			if err := p.VerifyPass(ctx, rom); err != nil {
				return nil, fmt.Errorf("verify: %w", err)
			}
			res.Verified = true
		}
	}

	if err := p.End(ctx); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	p.reportProgress(Progress{
		Phase:        PhaseComplete,
		Percentage:   100,
		UpdatedPages: res.UpdatedPages,
		ElapsedTime:  p.elapsed(),
	})

	p.logInfo("session complete",
		"updated", res.UpdatedPages,
		"verified", res.Verified,
		"erased", res.Erased,
		"resets", res.Resets,
		"elapsed", p.elapsed().String(),
	)

	return res, nil
}

// Begin performs the BEGIN handshake. A RESET answer means the device just
// rebooted: the reset handler runs, buffered input and session state are
// discarded and BEGIN is sent again until the device acknowledges it.
func (p *Programmer) Begin(ctx context.Context) error {
	if err := p.require(opBegin); err != nil {
		return err
	}
	p.markStart()

	p.reportProgress(Progress{Phase: PhaseHandshake, ElapsedTime: p.elapsed()})

	resets := 0
	for {
		resp, err := p.exchange(ctx, opBegin, protocol.BuildCommand(protocol.CmdBegin))
		if err != nil {
			return p.fail(opBegin, err)
		}

		if resp.Kind == protocol.KindReset {
			resets++
			p.resets++
			p.logInfo("device reset during handshake, resending BEGIN", "resets", resets)

			if p.config.MaxResets > 0 && resets > p.config.MaxResets {
				return p.fail(opBegin, &TooManyResetsError{Resets: resets})
			}
			if p.config.ResetHandler != nil {
				if err := p.config.ResetHandler.HandleReset(ctx); err != nil {
					return p.fail(opBegin, fmt.Errorf("reset handler: %w", err))
				}
			}

			p.lines.Discard()
			p.updated = 0
			continue
		}

		if !resp.IsAck(protocol.CmdBegin) {
			return p.fail(opBegin, unexpectedAck(opBegin, protocol.CmdBegin, resp))
		}

		p.state = StateBegun
		p.logDebug("session started", "resets", resets)
		return nil
	}
}

// Erase sets every byte of the device to 0xFF.
func (p *Programmer) Erase(ctx context.Context) error {
	if err := p.require(opErase); err != nil {
		return err
	}

	p.reportProgress(Progress{Phase: PhaseErasing, ElapsedTime: p.elapsed()})

	if err := p.command(ctx, opErase, protocol.CmdErase); err != nil {
		return err
	}

	p.state = StateErased
	p.logDebug("device erased")
	return nil
}

// End closes the session on the device side.
func (p *Programmer) End(ctx context.Context) error {
	if err := p.require(opEnd); err != nil {
		return err
	}

	p.reportProgress(Progress{
		Phase:        PhaseEnding,
		UpdatedPages: p.updated,
		ElapsedTime:  p.elapsed(),
	})

	if err := p.command(ctx, opEnd, protocol.CmdEnd); err != nil {
		return err
	}

	p.state = StateEnded
	return nil
}

// Close ends the local side of the session. If the transport implements
// io.Closer it is closed. Close is allowed in every state and is idempotent.
func (p *Programmer) Close() error {
	if p.state == StateClosed {
		return nil
	}
	p.state = StateClosed

	if c, ok := p.device.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close device: %w", err)
		}
	}
	return nil
}

// Transfer sends one page record in the given mode and returns the mode the
// device acknowledged: ModeVerify if the page already held the record's data,
// ModeWrite if it was (or, in verify mode, would have been) changed.
//
// The acknowledgement must echo the record's address and size; a mismatch is
// a *ValidationError and ends the session.
func (p *Programmer) Transfer(ctx context.Context, mode protocol.Mode, rec srec.Record) (protocol.Mode, error) {
	if err := p.requireTransfer(); err != nil {
		return 0, err
	}

	cmd, err := protocol.BuildPageCommand(mode, rec.Raw())
	if err != nil {
		return 0, err
	}

	op := "page " + mode.String()
	resp, err := p.exchange(ctx, op, cmd)
	if err != nil {
		return 0, p.fail(op, err)
	}

	if resp.Kind == protocol.KindReset {
		return 0, p.fail(op, &ResetError{Operation: op})
	}
	if resp.Page == nil {
		return 0, p.fail(op, &protocol.ProtocolError{
			Operation: op,
			Reason:    "unexpected page response",
			Response:  resp.Text,
		})
	}

	if resp.Page.Size != rec.Size() {
		return 0, p.fail(op, &ValidationError{
			Field:    "size",
			Expected: rec.Size(),
			Actual:   resp.Page.Size,
		})
	}
	if resp.Page.Address != rec.Address() {
		return 0, p.fail(op, &ValidationError{
			Field:    "address",
			Expected: int(rec.Address()),
			Actual:   int(resp.Page.Address),
		})
	}

	return resp.Page.Mode, nil
}

// WritePass sends every record in write mode, in file order, and returns the
// number of pages the device changed.
func (p *Programmer) WritePass(ctx context.Context, rom *srec.ROM) (int, error) {
	if rom == nil {
		return 0, fmt.Errorf("rom cannot be nil")
	}
	if err := p.require(opWrite); err != nil {
		return 0, err
	}

	p.state = StateWriting
	p.updated = 0

	p.logInfo("writing", "bytes", rom.TotalSize(), "pages", rom.PageCount())

	err := p.pass(ctx, PhaseWriting, protocol.ModeWrite, rom, func(rec srec.Record, acked protocol.Mode) error {
		if acked == protocol.ModeWrite {
			p.updated++
		}
		return nil
	})
	if err != nil {
		return p.updated, err
	}

	p.logDebug("write pass complete", "updated", p.updated)
	return p.updated, nil
}

// VerifyPass sends every record in verify mode. Any page the device reports
// as different is a *DataIntegrityError: the preceding write did not take.
func (p *Programmer) VerifyPass(ctx context.Context, rom *srec.ROM) error {
	if rom == nil {
		return fmt.Errorf("rom cannot be nil")
	}
	if err := p.require(opVerify); err != nil {
		return err
	}

	p.state = StateVerifying

	p.logInfo("verifying", "bytes", rom.TotalSize(), "pages", rom.PageCount())

	return p.pass(ctx, PhaseVerifying, protocol.ModeVerify, rom, func(rec srec.Record, acked protocol.Mode) error {
		if acked == protocol.ModeWrite {
			return p.fail(opVerify, &DataIntegrityError{Address: rec.Address(), Size: rec.Size()})
		}
		return nil
	})
}

// pass transfers every record of rom in mode, reporting progress at the start
// of the pass and around each page, and hands the acknowledged mode to onAck.
func (p *Programmer) pass(ctx context.Context, phase string, mode protocol.Mode, rom *srec.ROM, onAck func(srec.Record, protocol.Mode) error) error {
	total := rom.PageCount()
	sent := 0

	p.reportProgress(Progress{
		Phase:        phase,
		TotalPages:   total,
		UpdatedPages: p.updated,
		ElapsedTime:  p.elapsed(),
	})

	for i, rec := range rom.Records() {
		if err := ctx.Err(); err != nil {
			return p.fail(phase, fmt.Errorf("cancelled: %w", err))
		}

		p.logDebug("sending page", "address", fmt.Sprintf("0x%04x", rec.Address()), "size", rec.Size())

		progress := Progress{
			Phase:        phase,
			Page:         i + 1,
			TotalPages:   total,
			Address:      rec.Address(),
			Size:         rec.Size(),
			UpdatedPages: p.updated,
			Percentage:   float64(i) / float64(total) * 100,
			BytesSent:    sent,
			ElapsedTime:  p.elapsed(),
		}
		p.reportProgress(progress)

		acked, err := p.Transfer(ctx, mode, rec)
		if err != nil {
			return fmt.Errorf("page %d (%s): %w", i+1, rec, err)
		}
		if err := onAck(rec, acked); err != nil {
			return fmt.Errorf("page %d (%s): %w", i+1, rec, err)
		}

		sent += rec.Size()
		progress.Acked = true
		progress.Mode = acked
		progress.UpdatedPages = p.updated
		progress.Percentage = float64(i+1) / float64(total) * 100
		progress.BytesSent = sent
		progress.ElapsedTime = p.elapsed()
		p.reportProgress(progress)
	}

	return nil
}

// command sends a session command and expects exactly ACK:<cmd>. A RESET here
// means the device rebooted mid-session.
func (p *Programmer) command(ctx context.Context, op, cmd string) error {
	resp, err := p.exchange(ctx, op, protocol.BuildCommand(cmd))
	if err != nil {
		return p.fail(op, err)
	}

	if resp.Kind == protocol.KindReset {
		return p.fail(op, &ResetError{Operation: op})
	}
	if !resp.IsAck(cmd) {
		return p.fail(op, unexpectedAck(op, cmd, resp))
	}
	return nil
}

// exchange writes one request line and reads until a terminal response.
func (p *Programmer) exchange(ctx context.Context, op string, line []byte) (protocol.Response, error) {
	if p.config.ResponseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.ResponseTimeout)
		defer cancel()
	}

	if p.config.Verbose {
		p.logDebug("-->", "line", string(line[:len(line)-1]))
	}

	if err := p.writeAll(line); err != nil {
		return protocol.Response{}, fmt.Errorf("write command: %w", err)
	}

	resp, err := protocol.ReadResponse(ctx, p.lines, p.observe)
	if err != nil {
		var perr *protocol.ProtocolError
		if errors.As(err, &perr) && perr.Operation == "" {
			perr.Operation = op
		}
		return resp, err
	}
	return resp, nil
}

// writeAll writes b completely; serial drivers may accept partial writes.
func (p *Programmer) writeAll(b []byte) error {
	for len(b) > 0 {
		n, err := p.device.Write(b)
		if err != nil {
			return err
		}
		if n <= 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}

// observe traces received lines and forwards device messages.
func (p *Programmer) observe(resp protocol.Response) {
	if p.config.Verbose {
		p.logDebug("<--", "line", resp.Text)
	}

	if resp.Kind == protocol.KindInfo {
		p.logInfo("device message", "msg", resp.Body)
		if p.config.MessageCallback != nil {
			p.config.MessageCallback(resp.Body)
		}
	}
}

// require returns a *StateError unless op may start in the current state.
func (p *Programmer) require(op string) error {
	if !p.state.allows(op) {
		return &StateError{Operation: op, State: p.state}
	}
	return nil
}

func (p *Programmer) requireTransfer() error {
	switch p.state {
	case StateBegun, StateErased, StateWriting, StateVerifying:
		return nil
	default:
		return &StateError{Operation: "transfer", State: p.state}
	}
}

// fail moves the session to StateFailed and logs err.
func (p *Programmer) fail(op string, err error) error {
	if p.state != StateFailed {
		p.logError("session failed", "operation", op, "state", p.state.String(), "error", err)
		p.state = StateFailed
	}
	return err
}

func (p *Programmer) markStart() {
	if p.started.IsZero() {
		p.started = time.Now()
	}
}

func (p *Programmer) elapsed() time.Duration {
	if p.started.IsZero() {
		return 0
	}
	return time.Since(p.started)
}

func unexpectedAck(op, cmd string, resp protocol.Response) error {
	return &protocol.ProtocolError{
		Operation: op,
		Reason:    "expected " + protocol.AckPrefix + cmd,
		Response:  resp.Text,
	}
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Programmer) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
