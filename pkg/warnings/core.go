// Package warnings is the sink for non-fatal notices such as unknown
// command-line tokens or a missing search tool.
package warnings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
	count      int
)

// Warnf writes a formatted warning and counts it. A trailing newline is
// added when the message does not end with one.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	mu.Lock()
	w := warnWriter
	count++
	mu.Unlock()

	_, _ = io.WriteString(w, msg)
}

// Count returns the number of warnings written since the last Reset.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return count
}

// Reset zeroes the warning counter.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	count = 0
}

// WarningWriter returns the currently configured warning writer.
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): Restores the previous writer when called
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
