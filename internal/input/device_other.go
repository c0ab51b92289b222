//go:build !linux

package input

import "errors"

var errUnsupported = errors.New("input devices are only supported on linux")

// Device is unavailable on this platform.
type Device struct {
	path string
}

// Open always fails on this platform.
func Open(path string) (*Device, error) {
	return nil, &OpenError{Path: path, Err: errUnsupported}
}

func (d *Device) Path() string { return d.path }
func (d *Device) Poll() bool { return false }
func (d *Device) Close() error { return nil }
