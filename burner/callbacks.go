package burner

import (
	"context"
	"time"

	"github.com/moffa90/go-eeprom/protocol"
)

// Progress phases.
const (
	PhaseHandshake = "handshake"
	PhaseErasing   = "erasing"
	PhaseWriting   = "writing"
	PhaseVerifying = "verifying"
	PhaseEnding    = "ending"
	PhaseComplete  = "complete"
)

// Progress contains information about the programming progress.
// Passed to ProgressCallback during programming operations.
type Progress struct {
	// Phase describes the current operation phase:
	//   "handshake" - BEGIN exchange, including reset recovery
	//   "erasing"   - Erasing the whole device
	//   "writing"   - Write pass over all pages
	//   "verifying" - Verify pass over all pages
	//   "ending"    - END exchange
	//   "complete"  - Session finished successfully
	Phase string

	// Page is the 1-based index of the page being transferred. It is 0 for
	// the event that starts a pass and outside the passes.
	Page int

	// TotalPages is the number of pages in the pass
	TotalPages int

	// Address and Size describe the page record being transferred
	Address uint16
	Size    int

	// Acked is false when the page request has just been sent and true once
	// the device acknowledged it
	Acked bool

	// Mode is the acknowledged mode when Acked is true: ModeWrite means the
	// page changed, ModeVerify means it already matched
	Mode protocol.Mode

	// UpdatedPages is the number of pages the write pass changed so far
	UpdatedPages int

	// Percentage is the completion percentage of the current pass (0.0 to 100.0)
	Percentage float64

	// BytesSent is the number of data bytes acknowledged in the current pass
	BytesSent int

	// ElapsedTime is the time elapsed since the session started
	ElapsedTime time.Duration
}

// ProgressCallback is called during programming to report progress.
// Implementations should return quickly to avoid blocking the transfer.
//
// Example:
//
//	prog := burner.New(port,
//	    burner.WithProgressCallback(func(p burner.Progress) {
//	        if p.Acked {
//	            fmt.Printf("[%s] page %d/%d %s\n", p.Phase, p.Page, p.TotalPages, p.Mode)
//	        }
//	    }),
//	)
type ProgressCallback func(Progress)

// MessageCallback receives the text of informational MSG: lines sent by the
// device while a request is outstanding.
type MessageCallback func(message string)

// ResetHandler is invoked when the device answers BEGIN with RESET, before
// BEGIN is sent again. Implementations typically stop the host from resetting
// the device on the next open (see serialport.HangupFixer).
type ResetHandler interface {
	HandleReset(ctx context.Context) error
}

// ResetHandlerFunc adapts a function to the ResetHandler interface.
type ResetHandlerFunc func(ctx context.Context) error

// HandleReset calls f(ctx).
func (f ResetHandlerFunc) HandleReset(ctx context.Context) error {
	return f(ctx)
}

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	prog := burner.New(port, burner.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
