//go:build !linux && !windows

package serialport

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// clearHangup shells out to stty, which takes the device with -f on the BSDs
// and macOS.
func clearHangup(ctx context.Context, path string) error {
	out, err := exec.CommandContext(ctx, "stty", "-f", path, "-hupcl").CombinedOutput()
	if err != nil {
		return fmt.Errorf("stty: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
