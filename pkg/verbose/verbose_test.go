package verbose

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture enables logging into a fresh buffer for the duration of a test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetWriter(buf)
	Enable()
	t.Cleanup(Disable)
	return buf
}

// TestEnableDisable tests the behavior of Enable and Disable functions.
//
// It verifies:
//   - IsEnabled reflects the last call
func TestEnableDisable(t *testing.T) {
	Disable()
	assert.False(t, IsEnabled())

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestPrintfDisabled tests that nothing is written when disabled.
func TestPrintfDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)
	Disable()

	Printf("hidden %d", 1)
	Info("hidden")
	CommandExec("cargo search serde", "")
	CommandResult("cargo search serde", 1, "boom")
	ConfigLoaded(".cargo-stabilize.yml")

	assert.Empty(t, buf.String())
}

// TestPrintfAndInfo tests formatted output.
//
// It verifies:
//   - messages carry the [DEBUG] prefix
//   - a nil writer leaves the current writer in place
func TestPrintfAndInfo(t *testing.T) {
	buf := capture(t)

	Printf("queried %d crates", 3)
	Info("done")
	SetWriter(nil)
	Info("still here")

	assert.Equal(t, "[DEBUG] queried 3 crates\n[DEBUG] done\n[DEBUG] still here\n", buf.String())
}

// TestCommandExec tests command logging.
func TestCommandExec(t *testing.T) {
	buf := capture(t)

	CommandExec("cargo search serde", "/tmp/crate")
	assert.Contains(t, buf.String(), "[DEBUG] Executing: cargo search serde")
	assert.Contains(t, buf.String(), "Working dir: /tmp/crate")

	buf.Reset()
	CommandExec("cargo search serde", "")
	assert.NotContains(t, buf.String(), "Working dir")
}

// TestCommandResult tests failure logging.
//
// It verifies:
//   - successes are silent
//   - long output is cut after five lines
func TestCommandResult(t *testing.T) {
	buf := capture(t)

	CommandResult("cargo search serde", 0, "serde = \"1.0.0\"")
	assert.Empty(t, buf.String())

	CommandResult("cargo search serde", 101, "")
	assert.Equal(t, "[DEBUG] Command failed (exit 101): cargo search serde\n", buf.String())

	buf.Reset()
	lines := strings.Join([]string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}, "\n")
	CommandResult("cargo search serde", 1, lines)
	out := buf.String()
	assert.Contains(t, out, "| l5")
	assert.NotContains(t, out, "| l6")
	assert.Contains(t, out, "... (2 more lines)")
}

// TestDomainHelpers tests the config, skip and resolution helpers.
func TestDomainHelpers(t *testing.T) {
	buf := capture(t)

	ConfigLoaded(".cargo-stabilize.yml")
	DependencySkipped("dependencies", "local", "no version")
	VersionResolved("serde", "*", "1.0.210", false)
	VersionResolved("serde", "*", "1.0.210", true)

	out := buf.String()
	assert.Contains(t, out, "Config loaded: .cargo-stabilize.yml")
	assert.Contains(t, out, "Skipping dependencies.local: no version")
	assert.Contains(t, out, "Resolved serde: * -> 1.0.210 (registry)")
	assert.Contains(t, out, "Resolved serde: * -> 1.0.210 (cache)")
}

// TestTruncate tests string shortening.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
