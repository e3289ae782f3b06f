package cmdexec

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useSh pins the shell to sh so tests do not depend on the user's $SHELL.
func useSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Setenv("SHELL", "")
}

// TestRender tests placeholder substitution.
//
// It verifies:
//   - known placeholders are replaced
//   - unsafe values are single-quoted
//   - unknown placeholders survive
func TestRender(t *testing.T) {
	got := Render("cargo search --registry {{registry}} --limit {{limit}} {{package}} {{other}}",
		SearchVars("crates-io", "serde_json", 10))
	assert.Equal(t, "cargo search --registry crates-io --limit 10 serde_json {{other}}", got)

	got = Render("echo {{package}}", map[string]string{"package": "x; rm -rf /"})
	assert.Equal(t, "echo 'x; rm -rf /'", got)
}

// TestShellEscape tests quoting rules.
func TestShellEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"serde", "serde"},
		{"a-b_c.d/e@f:g+h=i", "a-b_c.d/e@f:g+h=i"},
		{"has space", "'has space'"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shellEscape(tt.in), tt.in)
	}
}

// TestSearchVars tests the search placeholder map.
func TestSearchVars(t *testing.T) {
	assert.Equal(t, map[string]string{
		"registry": "crates-io",
		"package":  "tokio",
		"limit":    "5",
	}, SearchVars("crates-io", "tokio", 5))
}

// TestGetShell tests shell selection.
func TestGetShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	sh, args := getShell()
	assert.Equal(t, "/bin/zsh", sh)
	assert.Equal(t, []string{"-c"}, args)

	t.Setenv("SHELL", "")
	sh, args = getShell()
	assert.Equal(t, "sh", sh)
	assert.Equal(t, []string{"-c"}, args)
}

// TestRunStdout tests a successful command.
//
// It verifies:
//   - stdout is returned
//   - vars are substituted
//   - env values are expanded
//   - Dir is honoured
func TestRunStdout(t *testing.T) {
	useSh(t)
	t.Setenv("STABILIZE_TEST_BASE", "base")
	dir := t.TempDir()

	out, err := Run(context.Background(), Request{
		Command: `printf '%s = "%s"\n' {{package}} "$CRATE_VERSION"; pwd`,
		Vars:    map[string]string{"package": "serde"},
		Env:     map[string]string{"CRATE_VERSION": "$STABILIZE_TEST_BASE-1"},
		Dir:     dir,
	})
	require.NoError(t, err)

	assert.Contains(t, string(out), "serde = \"base-1\"\n")
	assert.Contains(t, string(out), dir)
}

// TestRunPipes tests that the shell handles pipelines.
func TestRunPipes(t *testing.T) {
	useSh(t)
	out, err := Run(context.Background(), Request{Command: "printf 'a\\nb\\n' | tail -n 1"})
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(out))
}

// TestRunExitError tests non-zero exits.
//
// It verifies:
//   - an *ExitError carries the code and stderr
//   - stdout is used when stderr is empty
func TestRunExitError(t *testing.T) {
	useSh(t)

	_, err := Run(context.Background(), Request{Command: "echo 'error: no such registry' >&2; exit 101"})
	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, 101, exitErr.Code)
	assert.Equal(t, "error: no such registry", exitErr.Stderr)
	assert.Equal(t, "exit status 101: error: no such registry", err.Error())

	_, err = Run(context.Background(), Request{Command: "echo only-stdout; exit 3"})
	exitErr, ok = err.(*ExitError)
	require.True(t, ok)
	assert.Equal(t, "only-stdout", exitErr.Stderr)

	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}

// TestRunEmptyCommand tests that a blank template is rejected.
func TestRunEmptyCommand(t *testing.T) {
	_, err := Run(context.Background(), Request{Command: "  \n"})
	assert.EqualError(t, err, "no command configured")
}

// TestRunCancelledContext tests that a cancelled context stops before spawning.
func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Request{Command: "echo hi"})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRunTimeout tests that slow commands are killed.
func TestRunTimeout(t *testing.T) {
	useSh(t)

	start := time.Now()
	_, err := Run(context.Background(), Request{Command: "sleep 5", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command timed out after 200ms")
	assert.Less(t, time.Since(start), 4*time.Second)
}

// TestRunIsReplaceable tests the function-variable seam.
func TestRunIsReplaceable(t *testing.T) {
	orig := Run
	defer func() { Run = orig }()

	var got Request
	Run = func(_ context.Context, req Request) ([]byte, error) {
		got = req
		return []byte("ok"), nil
	}

	out, err := Run(context.Background(), Request{Command: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, "x", got.Command)
}
