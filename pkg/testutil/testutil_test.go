package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/cargo-stabilize/pkg/config"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
	"github.com/ajxudir/cargo-stabilize/pkg/warnings"
)

// These tests ensure the test helpers behave as other packages expect.

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfig().
		WithManifest("crates/a/Cargo.toml").
		WithSections("dependencies", "dev-dependencies").
		WithUpgrade().
		WithNormalize().
		WithAPI("http://localhost:1234/api/v1").
		Build()

	assert.Equal(t, "crates/a/Cargo.toml", cfg.Manifest)
	assert.Equal(t, []string{"dependencies", "dev-dependencies"}, cfg.Sections)
	assert.True(t, cfg.Upgrade)
	assert.True(t, cfg.Normalize)
	assert.Equal(t, config.SourceAPI, cfg.Registry.Source)
	assert.NoError(t, cfg.Validate())

	cfg = NewConfig().WithSearchCommand("echo {{package}}").Build()
	assert.Equal(t, config.SourceSearch, cfg.Registry.Source)
	assert.Equal(t, "echo {{package}}", cfg.Registry.Command)
}

func TestFakeRegistry(t *testing.T) {
	boom := fmt.Errorf("boom")
	var hooked []string
	reg := NewRegistry().
		WithVersion("serde", "1.0.210").
		WithError("broken", boom).
		OnCall(func(name string) { hooked = append(hooked, name) })

	v, err := reg.Latest(context.Background(), "serde")
	require.NoError(t, err)
	assert.Equal(t, "1.0.210", v)

	_, err = reg.Latest(context.Background(), "broken")
	assert.ErrorIs(t, err, boom)

	_, err = reg.Latest(context.Background(), "unknown")
	_, ok := errs.IsNotFoundError(err)
	assert.True(t, ok)

	assert.Equal(t, []string{"serde", "broken", "unknown"}, reg.Calls())
	assert.Equal(t, reg.Calls(), hooked)
}

func TestManifestBuilder(t *testing.T) {
	got := NewManifest("demo").
		Dep("dependencies", "foo", "*").
		TableDep("dependencies", "bar", "1.0", `features = ["x"]`).
		Dep("dev-dependencies", "baz", "2").
		String()

	want := `[package]
name = "demo"
version = "0.1.0"
edition = "2021"

[dependencies]
foo = "*"
bar = { version = "1.0", features = ["x"] }

[dev-dependencies]
baz = "2"
`
	assert.Equal(t, want, got)

	dir := t.TempDir()
	path := NewManifest("demo").Write(t, dir)
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, ReadManifest(t, dir), `name = "demo"`)
}

func TestCaptureHelpers(t *testing.T) {
	out := CaptureStdout(t, func() { fmt.Print("to stdout") })
	assert.Equal(t, "to stdout", out)

	errOut := CaptureStderr(t, func() { fmt.Fprint(os.Stderr, "to stderr") })
	assert.Equal(t, "to stderr", errOut)

	stdout, stderr := CaptureOutput(t, func() {
		fmt.Print("a")
		fmt.Fprint(os.Stderr, "b")
	})
	assert.Equal(t, "a", stdout)
	assert.Equal(t, "b", stderr)

	w := CaptureWarnings(t, func() { warnings.Warnf("careful") })
	assert.Equal(t, "careful\n", w)

	v := CaptureVerbose(t, func() { verbose.Printf("detail %d", 1) })
	assert.Contains(t, v, "[DEBUG] detail 1")
	assert.False(t, verbose.IsEnabled())
}
