//go:build linux
// +build linux

package decode

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// openPty allocates a pseudoterminal pair, returning the master side
// and the slave device path.
func openPty() (*os.File, string, error) {
	m, err := os.OpenFile("/dev/ptmx", os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, "", err
	}

	var n uint32
	if err := ioctl(m.Fd(), unix.TIOCGPTN, uintptr(unsafe.Pointer(&n))); err != nil {
		m.Close()
		return nil, "", err
	}

	var unlock int32
	if err := ioctl(m.Fd(), unix.TIOCSPTLCK, uintptr(unsafe.Pointer(&unlock))); err != nil {
		m.Close()
		return nil, "", err
	}

	return m, fmt.Sprintf("/dev/pts/%d", n), nil
}

func ioctl(fd uintptr, cmd uint, ptr uintptr) error {
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(cmd), ptr); e != 0 {
		return e
	}
	return nil
}
