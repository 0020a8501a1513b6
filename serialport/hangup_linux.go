//go:build linux

package serialport

import (
	"context"

	"golang.org/x/sys/unix"
)

func clearHangup(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	if t.Cflag&unix.HUPCL == 0 {
		return nil
	}

	t.Cflag &^= unix.HUPCL
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
