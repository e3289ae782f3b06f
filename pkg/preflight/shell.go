package preflight

import (
	"fmt"
	"os"
)

// getShellCommandCheck returns the shell from $SHELL (or sh) and the
// arguments that run `command -v cmd` in a login shell, so aliases and
// functions from the user's profile are visible.
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-l", "-c", fmt.Sprintf("command -v %s", cmd)}
}
