//go:build !windows

// Package process manages OS process groups for child processes spawned by
// the renderers (the headless browser and the pandoc converter).
package process

import (
	"os/exec"
	"syscall"
)

// Isolate places the command in its own process group so that
// KillProcessGroup can terminate it together with any children it spawns.
// Must be called before cmd.Start.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; callers keep their own fallback kill.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
