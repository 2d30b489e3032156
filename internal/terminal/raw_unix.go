//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// makeRaw switches the terminal to raw mode with non blocking reads and
// returns a function to restore the previous state.
func makeRaw(fd int) (func() error, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("getting terminal state: %w", err)
	}

	termRestore := *termios
	termState := *termios

	termState.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	termState.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termState.Cflag &^= unix.CSIZE | unix.PARENB
	termState.Cflag |= unix.CS8

	termState.Cc[unix.VMIN] = 0
	termState.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termState); err != nil {
		return nil, fmt.Errorf("setting terminal state: %w", err)
	}

	restore := func() error {
		return unix.IoctlSetTermios(fd, ioctlSetTermios, &termRestore)
	}
	return restore, nil
}
