package main

import (
	"context"
	"fmt"
	"io"

	"github.com/moffa90/go-eeprom/burner"
	"github.com/moffa90/go-eeprom/protocol"
	"github.com/moffa90/go-eeprom/srec"
)

// console renders session progress on stdout. In quiet mode every page shows
// a transient '>' while the request is outstanding, then a mark: '.' for an
// unchanged page, 'W' for a written one and 'v' for a verified one. Verbose
// mode leaves the marks out; the wire trace goes to the log instead.
type console struct {
	out     io.Writer
	verbose bool
	rom     *srec.ROM
	idle    bool
}

// newConsole creates a console for a run of rom; idle marks a run with neither
// a file nor an erase.
func newConsole(out io.Writer, verbose bool, rom *srec.ROM, idle bool) *console {
	return &console{out: out, verbose: verbose, rom: rom, idle: idle}
}

func (c *console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *console) quiet(s string) {
	if !c.verbose {
		fmt.Fprint(c.out, s)
	}
}

func (c *console) progress(p burner.Progress) {
	if p.Phase == burner.PhaseEnding && c.idle {
		c.println("No file specified, and not erasing. Nothing to do.")
		return
	}
	if p.Phase != burner.PhaseWriting && p.Phase != burner.PhaseVerifying {
		return
	}

	if p.Page == 0 {
		verb := "Writing"
		if p.Phase == burner.PhaseVerifying {
			verb = "Verifying"
		}
		size := 0
		if c.rom != nil {
			size = c.rom.TotalSize()
		}
		fmt.Fprintf(c.out, "%s %d bytes in %d pages\n", verb, size, p.TotalPages)
		if p.TotalPages == 0 {
			c.quiet("\n")
		}
		return
	}

	if !p.Acked {
		c.quiet(">\b")
		return
	}

	c.quiet("<\b")
	switch {
	case p.Mode == protocol.ModeWrite:
		c.quiet("W")
	case p.Phase == burner.PhaseVerifying:
		c.quiet("v")
	default:
		c.quiet(".")
	}

	if p.Page == p.TotalPages {
		c.quiet("\n")
	}
}

func (c *console) message(msg string) {
	c.println(protocol.MsgPrefix + msg)
}

// resetHandler announces the retry and then runs next, if any.
func (c *console) resetHandler(next burner.ResetHandler) burner.ResetHandler {
	return burner.ResetHandlerFunc(func(ctx context.Context) error {
		c.println("Ignoring RESET, resending BEGIN")
		if next == nil {
			return nil
		}
		return next.HandleReset(ctx)
	})
}
