// Package verbose provides [DEBUG] logging for --verbose runs.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// out returns the writer when logging is enabled, nil otherwise.
func out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if w := out(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	if w := out(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", msg)
	}
}

// CommandExec logs a search command before it runs.
//
// Parameters:
//   - cmd: The rendered command line
//   - workDir: Working directory, empty for the current one
func CommandExec(cmd, workDir string) {
	w := out()
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
	if workDir != "" {
		_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
	}
}

// CommandResult logs the outcome of a search command. Output is shown for
// failures only, limited to five lines.
//
// Parameters:
//   - cmd: The command line that was executed
//   - exitCode: Exit code, 0 for success, -1 when the process did not start
//   - output: Captured stderr or stdout
func CommandResult(cmd string, exitCode int, output string) {
	w := out()
	if w == nil || exitCode == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 5 {
		for _, line := range lines[:5] {
			_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
		}
		_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-5)
		return
	}
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
	}
}

// ConfigLoaded logs the config file a run uses.
func ConfigLoaded(path string) {
	Printf("Config loaded: %s", path)
}

// DependencySkipped logs an entry that will not be queried.
//
// Parameters:
//   - section: Dependency section name
//   - name: Dependency name
//   - reason: Why it is skipped
func DependencySkipped(section, name, reason string) {
	Printf("Skipping %s.%s: %s", section, name, reason)
}

// VersionResolved logs what the registry returned for a crate.
//
// Parameters:
//   - name: Queried crate name
//   - current: Current version constraint
//   - latest: Version reported by the registry
//   - cached: Whether the answer came from an earlier query this run
func VersionResolved(name, current, latest string, cached bool) {
	src := "registry"
	if cached {
		src = "cache"
	}
	Printf("Resolved %s: %s -> %s (%s)", name, current, latest, src)
}

// truncate shortens s to maxLen bytes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
