package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moffa90/go-eeprom/burner"
	"github.com/moffa90/go-eeprom/protocol"
	"github.com/moffa90/go-eeprom/serialport"
	"github.com/moffa90/go-eeprom/simulator"
)

const (
	recPage0 = "S10B00000001020304050607D8"
	recPage1 = "S10B0040000102030405060798"
)

type harness struct {
	app    *app
	dev    *simulator.Device
	stdout bytes.Buffer
	stderr bytes.Buffer
	opened []serialport.Config
}

func newHarness(opts ...simulator.Option) *harness {
	h := &harness{dev: simulator.New(opts...)}
	h.app = &app{
		stdout: &h.stdout,
		stderr: &h.stderr,
		open: func(cfg serialport.Config) (io.ReadWriteCloser, error) {
			h.opened = append(h.opened, cfg)
			return h.dev, nil
		},
		list: func() ([]serialport.PortInfo, error) {
			return []serialport.PortInfo{
				{Name: "/dev/ttyS0"},
				{Name: "/dev/ttyUSB0", IsUSB: true, VID: "1A86", PID: "7523"},
			}, nil
		},
		fixer: func(path string) burner.ResetHandler {
			return h.dev
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := h.app.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&h.stdout)
	cmd.SetErr(&h.stderr)
	return cmd.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBurnWritesThenVerifies(t *testing.T) {
	h := newHarness(simulator.WithContents(0, []byte{0, 1, 2, 3, 4, 5, 6, 7}))
	file := writeFile(t, "rom.s19", recPage0+"\n"+recPage1+"\n")

	if err := h.run(file); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Writing 16 bytes in 2 pages\n" +
		">\b<\b.>\b<\bW\n" +
		"Verifying 16 bytes in 2 pages\n" +
		">\b<\bv>\b<\bv\n" +
		"Done\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}

	if len(h.opened) != 1 || h.opened[0].Path != "/dev/ttyUSB0" || h.opened[0].BaudRate != 115200 {
		t.Errorf("opened = %+v", h.opened)
	}
	if _, err := h.dev.Read(make([]byte, 1)); err != io.EOF {
		t.Error("port not closed after run")
	}
}

func TestBurnUnchangedSkipsVerify(t *testing.T) {
	h := newHarness(simulator.WithContents(0, []byte{0, 1, 2, 3, 4, 5, 6, 7}))
	file := writeFile(t, "rom.s19", recPage0+"\n")

	if err := h.run(file); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Writing 8 bytes in 1 pages\n>\b<\b.\nDone\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
}

func TestBurnNothingToDo(t *testing.T) {
	h := newHarness(simulator.WithConnectResets(1), simulator.WithBanner("EEPROM burner"))

	if err := h.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "Ignoring RESET, resending BEGIN\n" +
		"MSG:EEPROM burner\n" +
		"No file specified, and not erasing. Nothing to do.\n" +
		"Done\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
	if h.dev.Hangups() != 1 {
		t.Errorf("Hangups() = %d, want 1", h.dev.Hangups())
	}

	cmds := strings.Join(h.dev.Commands(), ",")
	if cmds != "BEGIN,BEGIN,END" {
		t.Errorf("commands = %s", cmds)
	}
}

func TestBurnWithoutHangupFix(t *testing.T) {
	h := newHarness(simulator.WithConnectResets(1))

	if err := h.run("--fix-hangup=false"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if h.dev.Hangups() != 0 {
		t.Errorf("Hangups() = %d, want 0", h.dev.Hangups())
	}
	if !strings.Contains(h.stdout.String(), "Ignoring RESET, resending BEGIN") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestBurnEraseOnly(t *testing.T) {
	h := newHarness(simulator.WithContents(0x10, []byte{1}))

	if err := h.run("--erase", "--port", "/dev/ttyACM0", "--speed", "57600"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if h.stdout.String() != "Done\n" {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if got := h.dev.Memory(0x10, 1); got[0] != 0xFF {
		t.Errorf("memory not erased: % X", got)
	}
	if h.opened[0].Path != "/dev/ttyACM0" || h.opened[0].BaudRate != 57600 {
		t.Errorf("opened = %+v", h.opened[0])
	}
}

func TestBurnVerbose(t *testing.T) {
	h := newHarness()
	file := writeFile(t, "rom.s19", recPage0+"\n")

	if err := h.run("--verbose", file); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if strings.ContainsAny(h.stdout.String(), "\b") {
		t.Errorf("progress marks printed in verbose mode: %q", h.stdout.String())
	}
	if !strings.Contains(h.stdout.String(), "Writing 8 bytes in 1 pages") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	for _, want := range []string{"-->", "BEGIN", "<--", "ACK:W:0000:8"} {
		if !strings.Contains(h.stderr.String(), want) {
			t.Errorf("stderr missing %q", want)
		}
	}
}

func TestBurnIntelHex(t *testing.T) {
	h := newHarness()
	file := writeFile(t, "rom.hex", ":0400000001020304F2\n:00000001FF\n")

	if err := h.run(file); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := h.dev.Memory(0, 4); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("memory = % X", got)
	}
}

func TestBurnErrors(t *testing.T) {
	tests := []struct {
		name         string
		opts         []simulator.Option
		file         string
		args         []string
		errMsg       string
		wantNoDevice bool
	}{
		{
			name:         "bad record",
			file:         recPage0 + "\nS9030000FC\n",
			errMsg:       "line 2 doesn't look like an S1 record",
			wantNoDevice: true,
		},
		{
			name:   "write does not take",
			opts:   []simulator.Option{simulator.WithStuckPage(1)},
			file:   recPage0 + "\n" + recPage1 + "\n",
			errMsg: "data integrity",
		},
		{
			name:   "device resets forever",
			opts:   []simulator.Option{simulator.WithConnectResets(10)},
			args:   []string{"--max-resets", "2"},
			errMsg: "device reset 3 times during handshake",
		},
		{
			name:         "invalid speed",
			args:         []string{"--speed", "0"},
			errMsg:       "speed must be positive",
			wantNoDevice: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.opts...)
			args := tt.args
			if tt.file != "" {
				args = append(args, writeFile(t, "rom.s19", tt.file))
			}

			err := h.run(args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.errMsg)
			}
			if tt.wantNoDevice && len(h.opened) != 0 {
				t.Errorf("port opened despite early failure")
			}
		})
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	h := newHarness()
	cfgFile := writeFile(t, "eepromburn.toml", "port = \"/dev/ttyACM1\"\nspeed = 9600\nerase = true\n")

	if err := h.run("--config", cfgFile, "--speed", "19200"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if h.opened[0].Path != "/dev/ttyACM1" || h.opened[0].BaudRate != 19200 {
		t.Errorf("opened = %+v", h.opened[0])
	}
	if cmds := strings.Join(h.dev.Commands(), ","); cmds != "BEGIN,ERASE,END" {
		t.Errorf("commands = %s", cmds)
	}
}

func TestListPorts(t *testing.T) {
	h := newHarness()

	if err := h.run("--list"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "/dev/ttyS0\n/dev/ttyUSB0  USB 1A86:7523\n"
	if h.stdout.String() != want {
		t.Errorf("stdout = %q, want %q", h.stdout.String(), want)
	}
	if len(h.opened) != 0 {
		t.Error("--list opened a port")
	}
}

func TestTooManyArgs(t *testing.T) {
	h := newHarness()
	if err := h.run("a.s19", "b.s19"); err == nil {
		t.Error("expected error for two files")
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "device error",
			err:  fmt.Errorf("write: page 1: %w", &protocol.DeviceError{Response: "NAK:page boundary crossed", Message: "page boundary crossed"}),
			want: "page boundary crossed",
		},
		{
			name: "bare nak text",
			err:  errors.New("NAK:write completion timeout"),
			want: "write completion timeout",
		},
		{
			name: "other error",
			err:  errors.New("open /dev/ttyUSB0: no such file or directory"),
			want: "open /dev/ttyUSB0: no such file or directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayMessage(tt.err); got != tt.want {
				t.Errorf("displayMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
