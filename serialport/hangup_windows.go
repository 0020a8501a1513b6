//go:build windows

package serialport

import "context"

// Windows has no HUPCL; opening a COM port does not toggle DTR unless asked.
func clearHangup(ctx context.Context, path string) error {
	return ctx.Err()
}
