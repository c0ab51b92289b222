// Package input watches input device nodes for human activity.
//
// Only the occurrence of events matters. Payloads are read and dropped.
package input

import "fmt"

// Source is one channel of activity.
type Source interface {
	// Poll drains everything pending on the channel without blocking and
	// reports whether anything was there.
	Poll() bool
}

// OpenError is returned when a device node cannot be opened at startup.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// OpenAll opens every path in order. On the first failure the devices
// already opened are closed and an *OpenError is returned.
func OpenAll(paths []string) ([]*Device, error) {
	devices := make([]*Device, 0, len(paths))
	for _, p := range paths {
		d, err := Open(p)
		if err != nil {
			CloseAll(devices)
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// CloseAll closes every device, ignoring errors.
func CloseAll(devices []*Device) {
	for _, d := range devices {
		_ = d.Close()
	}
}

// Any polls every source and reports whether at least one had activity.
// All sources are drained even after a hit.
func Any[S Source](sources []S) bool {
	active := false
	for _, s := range sources {
		if s.Poll() {
			active = true
		}
	}
	return active
}
