package serialport

import (
	"context"
	"fmt"
)

// HangupFixer clears the "hang up on close" flag (HUPCL) of a tty so that
// closing and reopening the port no longer drops DTR and reboots the board.
// It implements burner.ResetHandler.
type HangupFixer struct {
	Path string
}

// HandleReset clears HUPCL on f.Path.
func (f HangupFixer) HandleReset(ctx context.Context) error {
	if f.Path == "" {
		return fmt.Errorf("no port path to fix")
	}
	if err := clearHangup(ctx, f.Path); err != nil {
		return fmt.Errorf("clear hupcl on %s: %w", f.Path, err)
	}
	return nil
}
