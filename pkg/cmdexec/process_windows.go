//go:build windows

package cmdexec

import (
	"os/exec"
)

// setProcGroup is a no-op on Windows; exec.CommandContext kills the process.
func setProcGroup(cmd *exec.Cmd) {}

// killProcGroup kills the search process.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
