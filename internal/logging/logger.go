// Package logging sets up zerolog for the command-line tools and adapts it to
// the burner.Logger interface.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LevelEnv overrides the configured log level when set.
const LevelEnv = "EEPROM_LOG_LEVEL"

// New returns a console logger writing to out at the given level. An empty or
// unknown level means info; LevelEnv, when set to a valid level, wins.
func New(app string, out io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).
		Level(ResolveLevel(level)).
		With().Timestamp().Str("app", app).
		Logger()
}

// NewStderr is New writing to os.Stderr.
func NewStderr(app, level string) zerolog.Logger {
	return New(app, os.Stderr, level)
}

// ResolveLevel picks the effective level from LevelEnv and level.
func ResolveLevel(level string) zerolog.Level {
	if env, ok := os.LookupEnv(LevelEnv); ok {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(env))); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Adapter implements burner.Logger on top of a zerolog.Logger.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{log: l}
}

func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	fields(a.log.Debug(), keysAndValues).Msg(msg)
}

func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	fields(a.log.Info(), keysAndValues).Msg(msg)
}

func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	fields(a.log.Error(), keysAndValues).Msg(msg)
}

// fields attaches key/value pairs to e. A trailing key without a value is
// logged under "extra".
func fields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			e = e.Interface("extra", kv[i])
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			e = e.Interface("extra", kv[i])
			key = "value"
		}
		switch v := kv[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}
