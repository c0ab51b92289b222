// Package daemon detaches the process from its terminal.
//
// Go cannot fork safely once the runtime has started threads, so detaching
// re-executes the current binary in a new session with stdio on /dev/null.
// The child sees a marker in its environment and carries on in place.
package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

const envMarker = "DISPLAYIDLE_DETACHED"

// Detached reports whether the process already runs detached, either as the
// re-executed child or because init is its parent.
func Detached() bool {
	return os.Getenv(envMarker) == "1" || os.Getppid() == 1
}

// Detach starts a detached copy of the process running args, with env added
// to its environment, and returns true in the original, which should exit
// successfully. The copy runs from "/", so args and env must not hold
// relative paths. In an already detached process it only tightens the umask
// and returns false.
func Detach(args []string, env ...string) (bool, error) {
	if Detached() {
		unix.Umask(0o027)
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("locate executable: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := childCommand(exe, args, env, devNull)
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("start detached process: %w", err)
	}
	// The child outlives us; init reaps it.
	_ = cmd.Process.Release()

	return true, nil
}

func childCommand(exe string, args, env []string, devNull *os.File) *exec.Cmd {
	cmd := exec.Command(exe, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Env = append(cmd.Env, envMarker+"=1")
	cmd.Dir = "/"
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd
}
