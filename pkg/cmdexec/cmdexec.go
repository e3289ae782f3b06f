// Package cmdexec runs the registry search command.
//
// A command is a template such as
//
//	cargo search --registry {{registry}} --limit {{limit}} {{package}}
//
// whose {{placeholders}} are replaced with shell-escaped values before the
// line is handed to the user's shell. The shell handles pipes and sequencing,
// so a template may be any shell snippet that prints search results.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
	"github.com/ajxudir/cargo-stabilize/pkg/warnings"
)

// Request describes one command invocation.
//
// Fields:
//   - Command: Command template with {{key}} placeholders
//   - Vars: Placeholder values, shell-escaped on substitution
//   - Env: Extra environment variables; values may reference $VARS
//   - Dir: Working directory, empty for the current one
//   - Timeout: Kill the command after this long; zero disables the limit
type Request struct {
	Command string
	Vars    map[string]string
	Env     map[string]string
	Dir     string
	Timeout time.Duration
}

// RunFunc is the signature of Run.
type RunFunc func(ctx context.Context, req Request) ([]byte, error)

// Run executes a request and returns its stdout. It is a variable so tests
// can replace command execution.
var Run RunFunc = run

// ExitError reports a command that ran but exited non-zero.
//
// Fields:
//   - Command: Rendered command line
//   - Code: Process exit code
//   - Stderr: Trimmed stderr, or stdout when stderr was empty
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// getShell returns the user's shell and the args that make it run a string.
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-c"}
	}
	return getDefaultShell()
}

func run(ctx context.Context, req Request) ([]byte, error) {
	line := strings.TrimSpace(Render(req.Command, req.Vars))
	if line == "" {
		return nil, errors.New("no command configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	shell, shellArgs := getShell()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, line)...)
	cmd.Env = buildEnv(req.Env)
	cmd.Dir = req.Dir

	// Own process group so cancellation also kills cargo's children.
	setProcGroup(cmd)
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	verbose.CommandExec(line, req.Dir)
	err := cmd.Run()
	if err == nil {
		verbose.CommandResult(line, 0, "")
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && req.Timeout > 0 {
		warnings.Warnf("search command timed out after %s", req.Timeout)
		verbose.CommandResult(line, -1, "timed out")
		return nil, fmt.Errorf("command timed out after %s: %w", req.Timeout, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		verbose.CommandResult(line, exitErr.ExitCode(), msg)
		return nil, &ExitError{Command: line, Code: exitErr.ExitCode(), Stderr: msg}
	}

	verbose.CommandResult(line, -1, err.Error())
	return nil, err
}

// buildEnv returns the process environment plus extra, with $VAR
// references in the extra values expanded. Keys are applied in sorted order.
func buildEnv(extra map[string]string) []string {
	environ := os.Environ()
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+os.ExpandEnv(extra[k]))
	}
	return environ
}

// Render replaces every {{key}} in template with the shell-escaped value
// of vars[key]. Unknown placeholders are left as they are.
//
// Parameters:
//   - template: Command template
//   - vars: Placeholder values
//
// Returns:
//   - string: Command line ready for the shell
func Render(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", shellEscape(value))
	}
	return result
}

// SearchVars builds the placeholder values for a registry search.
//
// Parameters:
//   - registry: Registry name passed to --registry
//   - pkg: Crate name to search for
//   - limit: Maximum number of results
//
// Returns:
//   - map[string]string: Values for {{registry}}, {{package}} and {{limit}}
func SearchVars(registry, pkg string, limit int) map[string]string {
	return map[string]string{
		"registry": registry,
		"package":  pkg,
		"limit":    strconv.Itoa(limit),
	}
}

// shellEscape single-quotes s unless every rune is shell-safe.
func shellEscape(s string) string {
	if s == "" {
		return "''"
	}

	safe := true
	for _, r := range s {
		if !isShellSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_' || r == '.' ||
		r == '/' || r == '@' || r == ':' ||
		r == '+' || r == '='
}
