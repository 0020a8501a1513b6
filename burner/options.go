package burner

import "time"

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called during programming to report progress (optional)
	ProgressCallback ProgressCallback

	// MessageCallback receives MSG: lines from the device (optional)
	MessageCallback MessageCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ResetHandler is invoked for every RESET received during the handshake
	// (optional)
	ResetHandler ResetHandler

	// MaxResets bounds the number of RESET responses tolerated during one
	// handshake. Zero means no limit.
	MaxResets int

	// Erase makes Program erase the device after the handshake
	Erase bool

	// Verbose logs every line sent and received at debug level
	Verbose bool

	// ResponseTimeout bounds the wait for one terminal response. Zero means
	// wait until the context is done; idle read timeouts are never errors.
	ResponseTimeout time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track programming progress.
//
// Example:
//
//	prog := burner.New(port,
//	    burner.WithProgressCallback(func(p burner.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithMessageCallback sets a callback for informational device messages.
//
// Example:
//
//	prog := burner.New(port, burner.WithMessageCallback(func(m string) {
//	    fmt.Println("MSG:" + m)
//	}))
func WithMessageCallback(callback MessageCallback) Option {
	return func(c *Config) {
		c.MessageCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
//
// Example:
//
//	prog := burner.New(port, burner.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithResetHandler sets the collaborator run after each RESET during the
// handshake.
//
// Example:
//
//	prog := burner.New(port, burner.WithResetHandler(serialport.HangupFixer{Path: "/dev/ttyUSB0"}))
func WithResetHandler(handler ResetHandler) Option {
	return func(c *Config) {
		c.ResetHandler = handler
	}
}

// WithMaxResets limits how many RESET responses one handshake tolerates.
// Zero (the default) retries until the device acknowledges.
func WithMaxResets(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxResets = n
		}
	}
}

// WithErase makes Program erase the whole device before writing.
func WithErase(erase bool) Option {
	return func(c *Config) {
		c.Erase = erase
	}
}

// WithVerbose enables wire tracing through the Logger.
func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Verbose = verbose
	}
}

// WithResponseTimeout bounds the wait for each terminal response.
//
// Example:
//
//	prog := burner.New(port, burner.WithResponseTimeout(10*time.Second))
func WithResponseTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout >= 0 {
			c.ResponseTimeout = timeout
		}
	}
}
