//go:build linux

package input

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
)

// inputEvent mirrors struct input_event from <linux/input.h>.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

var eventSize = int(unsafe.Sizeof(inputEvent{}))

// Device is an input device node opened read-only and non-blocking.
type Device struct {
	path string
	fd   int
	buf  []byte
}

var _ Source = (*Device)(nil)

// Open opens the device node at path.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &Device{path: path, fd: fd, buf: make([]byte, eventSize)}, nil
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Poll reads event records until the device would block or reports EOF.
func (d *Device) Poll() bool {
	if d.fd < 0 {
		return false
	}

	active := false
	for {
		n, err := unix.Read(d.fd, d.buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			// EAGAIN means drained. Anything else ends this poll too; the
			// device stays open and is tried again on the next tick.
			return active
		}
		if n == 0 {
			return active
		}
		active = true
	}
}

// Close releases the descriptor. It is safe to call more than once.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
