package cmdexec

// getDefaultShell is used when $SHELL is unset.
func getDefaultShell() (shell string, args []string) {
	return "sh", []string{"-c"}
}
