// Command eepromburn writes a file of S1 records to an EEPROM through the
// burner firmware, then verifies it if anything changed.
//
// Usage:
//
//	eepromburn [--erase] [--port /dev/ttyUSB0] [--speed 115200] [--verbose] [file]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-eeprom/burner"
	"github.com/moffa90/go-eeprom/config"
	"github.com/moffa90/go-eeprom/internal/logging"
	"github.com/moffa90/go-eeprom/protocol"
	"github.com/moffa90/go-eeprom/serialport"
	"github.com/moffa90/go-eeprom/srec"
)

const appName = "eepromburn"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stdout, displayMessage(err))
		stop()
		os.Exit(1)
	}
}

// app holds the process dependencies so tests can swap the serial port for a
// simulator.
type app struct {
	stdout io.Writer
	stderr io.Writer

	open  func(serialport.Config) (io.ReadWriteCloser, error)
	list  func() ([]serialport.PortInfo, error)
	fixer func(path string) burner.ResetHandler
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		open: func(cfg serialport.Config) (io.ReadWriteCloser, error) {
			return serialport.Open(cfg)
		},
		list: serialport.List,
		fixer: func(path string) burner.ResetHandler {
			return serialport.HangupFixer{Path: path}
		},
	}
}

type flags struct {
	configPath string
	erase      bool
	port       string
	speed      int
	verbose    bool
	timeout    time.Duration
	maxResets  int
	fixHangup  bool
	list       bool
}

func (a *app) rootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           appName + " [file]",
		Short:         "Write and verify eeprom",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.list {
				return a.listPorts()
			}

			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return a.burn(cmd.Context(), cfg, file)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "TOML settings file")
	fs.BoolVar(&f.erase, "erase", false, "Erase chip")
	fs.StringVar(&f.port, "port", serialport.DefaultPath, "Serial port device")
	fs.IntVar(&f.speed, "speed", serialport.DefaultBaudRate, "Port speed in baud")
	fs.BoolVar(&f.verbose, "verbose", false, "Verbose messages")
	fs.DurationVar(&f.timeout, "timeout", 0, "Give up waiting for a device response after this long (0 waits forever)")
	fs.IntVar(&f.maxResets, "max-resets", 0, "Give up after this many device resets during BEGIN (0 retries forever)")
	fs.BoolVar(&f.fixHangup, "fix-hangup", true, "Clear HUPCL on the port when the device resets")
	fs.BoolVar(&f.list, "list", false, "List serial ports and exit")

	return cmd
}

// resolveConfig layers defaults, the optional config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("port") {
		cfg.Port = f.port
	}
	if fs.Changed("speed") {
		cfg.Speed = f.speed
	}
	if fs.Changed("erase") {
		cfg.Erase = f.erase
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("timeout") {
		cfg.ResponseTimeout = f.timeout
	}
	if fs.Changed("max-resets") {
		cfg.MaxResets = f.maxResets
	}
	if fs.Changed("fix-hangup") {
		cfg.FixHangup = f.fixHangup
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (a *app) listPorts() error {
	ports, err := a.list()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(a.stdout, "No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Fprintln(a.stdout, p.String())
	}
	return nil
}

func (a *app) burn(ctx context.Context, cfg config.Config, file string) error {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	log := logging.New(appName, a.stderr, level)

	var rom *srec.ROM
	if file != "" {
		var err error
		if rom, err = loadROM(file); err != nil {
			return err
		}
	}

	port, err := a.open(serialport.Config{
		Path:        cfg.Port,
		BaudRate:    cfg.Speed,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return err
	}

	con := newConsole(a.stdout, cfg.Verbose, rom, rom == nil && !cfg.Erase)

	var fixer burner.ResetHandler
	if cfg.FixHangup {
		fixer = a.fixer(cfg.Port)
	}

	prog := burner.New(port,
		burner.WithLogger(logging.NewAdapter(log)),
		burner.WithVerbose(cfg.Verbose),
		burner.WithErase(cfg.Erase),
		burner.WithMaxResets(cfg.MaxResets),
		burner.WithResponseTimeout(cfg.ResponseTimeout),
		burner.WithProgressCallback(con.progress),
		burner.WithMessageCallback(con.message),
		burner.WithResetHandler(con.resetHandler(fixer)),
	)
	defer prog.Close()

	res, err := prog.Program(ctx, rom)
	if err != nil {
		return err
	}

	log.Debug().
		Int("updated", res.UpdatedPages).
		Bool("verified", res.Verified).
		Int("resets", res.Resets).
		Msg("burn finished")

	con.println("Done")
	return nil
}

// loadROM parses an S1 file, or an Intel HEX file when the extension says so.
func loadROM(path string) (*srec.ROM, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex", ".ihx":
		return srec.LoadIntelHexFile(path, srec.MaxRecordSize)
	default:
		return srec.Parse(path)
	}
}

// displayMessage strips the device's NAK: marker so the user sees only the
// device's own reason.
func displayMessage(err error) string {
	var derr *protocol.DeviceError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return strings.TrimPrefix(err.Error(), protocol.NakPrefix)
}
