//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package terminal

import "errors"

func makeRaw(int) (func() error, error) {
	return nil, errors.New("raw terminal mode is not supported on this platform")
}
