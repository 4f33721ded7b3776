//go:build !linux
// +build !linux

package decode

import (
	"os"

	"github.com/pkg/errors"
)

func openPty() (*os.File, string, error) {
	return nil, "", errors.New("pty-backed sniffing is only supported on linux")
}
