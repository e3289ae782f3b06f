package stabilize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/manifest"
	"github.com/ajxudir/cargo-stabilize/pkg/testutil"
)

// recorder is a Reporter that keeps every event.
type recorder struct {
	missing  []string
	invalid  []string
	changes  []Change
	failures []Failure
}

func (r *recorder) SectionMissing(s string) { r.missing = append(r.missing, s) }
func (r *recorder) SectionInvalid(s string, _ error) { r.invalid = append(r.invalid, s) }
func (r *recorder) Changed(c Change) { r.changes = append(r.changes, c) }
func (r *recorder) Failed(f Failure) { r.failures = append(r.failures, f) }

func parse(t *testing.T, content string) *manifest.Document {
	t.Helper()
	doc, err := manifest.Parse("Cargo.toml", []byte(content))
	require.NoError(t, err)
	return doc
}

func output(t *testing.T, doc *manifest.Document) string {
	t.Helper()
	out, err := doc.Encode(false)
	require.NoError(t, err)
	return string(out)
}

// TestStabilizeWildcard tests the basic stabilize scenario.
//
// It verifies:
//   - a wildcard is replaced by the registry version
//   - the stabilized counter is incremented once
//   - the change is reported with the stabilized kind and bump
func TestStabilizeWildcard(t *testing.T) {
	doc := parse(t, "[dependencies]\nfoo = \"*\"\n")
	reg := testutil.NewRegistry().WithVersion("foo", "1.2.3")
	rec := &recorder{}

	summary, err := Run(context.Background(), doc, reg, Options{}, rec)
	require.NoError(t, err)

	assert.Equal(t, "[dependencies]\nfoo = \"1.2.3\"\n", output(t, doc))
	assert.Equal(t, 1, summary.Stabilized)
	assert.Equal(t, 0, summary.Upgraded)
	assert.Equal(t, 1, summary.Checked)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, Change{Section: "dependencies", Name: "foo", From: "*", To: "1.2.3", Kind: KindStabilized, Bump: BumpStabilized}, rec.changes[0])
	assert.Equal(t, summary.Changes, rec.changes)
	assert.NoError(t, summary.Err())
}

// TestNonWildcardUntouched tests that pinned versions are not queried
// outside upgrade mode.
func TestNonWildcardUntouched(t *testing.T) {
	content := testutil.NewManifest("demo").
		Dep("dependencies", "foo", "1.0").
		TableDep("dependencies", "bar", "^2", `features = ["x"]`).
		String()
	doc := parse(t, content)
	reg := testutil.NewRegistry().WithVersion("foo", "9.9.9").WithVersion("bar", "9.9.9")

	summary, err := Run(context.Background(), doc, reg, Options{}, nil)
	require.NoError(t, err)

	assert.Empty(t, reg.Calls())
	assert.Equal(t, content, output(t, doc))
	assert.Equal(t, 0, summary.Changed())
	assert.Equal(t, 0, summary.Checked)
}

// TestUpgradeMode tests the --upgrade scenario.
//
// It verifies:
//   - every versioned entry is queried
//   - unchanged answers are neither reported nor counted
//   - a wildcard in upgrade mode still counts as stabilized
func TestUpgradeMode(t *testing.T) {
	doc := parse(t, "[dependencies]\nfoo = \"1.0\"\nbar = \"2.0\"\nbaz = \"*\"\n")
	reg := testutil.NewRegistry().
		WithVersion("foo", "1.1").
		WithVersion("bar", "2.0").
		WithVersion("baz", "0.3.0")
	rec := &recorder{}

	summary, err := Run(context.Background(), doc, reg, Options{UpgradeAll: true}, rec)
	require.NoError(t, err)

	assert.Equal(t, "[dependencies]\nfoo = \"1.1\"\nbar = \"2.0\"\nbaz = \"0.3.0\"\n", output(t, doc))
	assert.Equal(t, []string{"foo", "bar", "baz"}, reg.Calls())
	assert.Equal(t, 1, summary.Upgraded)
	assert.Equal(t, 1, summary.Stabilized)
	assert.Equal(t, 3, summary.Checked)
	require.Len(t, rec.changes, 2)
	assert.Equal(t, KindUpgraded, rec.changes[0].Kind)
	assert.Equal(t, BumpMinor, rec.changes[0].Bump)
	assert.Equal(t, KindStabilized, rec.changes[1].Kind)
	assert.True(t, summary.UpgradeAll)
}

// TestMissingAndInvalidSections tests section-level problems.
//
// It verifies:
//   - a missing section is reported and the document is left as is
//   - a non-table section is reported as invalid
//   - other sections are still processed
func TestMissingAndInvalidSections(t *testing.T) {
	content := "dev-dependencies = 3\n\n[package]\nname = \"demo\"\n\n[build-dependencies]\ncc = \"*\"\n"
	doc := parse(t, content)
	reg := testutil.NewRegistry().WithVersion("cc", "1.1.0")
	rec := &recorder{}

	summary, err := Run(context.Background(), doc, reg, Options{
		Sections: []string{"dependencies", "dev-dependencies", "build-dependencies"},
	}, rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"dependencies"}, rec.missing)
	assert.Equal(t, []string{"dev-dependencies"}, rec.invalid)
	assert.Equal(t, []string{"dependencies"}, summary.Missing)
	assert.Equal(t, []string{"dev-dependencies"}, summary.Invalid)
	assert.Equal(t, 1, summary.Stabilized)
	assert.Equal(t, strings.Replace(content, `cc = "*"`, `cc = "1.1.0"`, 1), output(t, doc))
}

// TestNoDependenciesRoundTrip tests that a manifest without a dependencies
// table comes back unchanged.
func TestNoDependenciesRoundTrip(t *testing.T) {
	content := "# nothing to do\n[package]\nname = \"demo\"\n"
	doc := parse(t, content)
	rec := &recorder{}

	summary, err := Run(context.Background(), doc, testutil.NewRegistry(), Options{}, rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"dependencies"}, rec.missing)
	assert.Equal(t, content, output(t, doc))
	assert.Zero(t, summary.Changed())
}

// TestRegistryFailures tests that one failing lookup does not stop the run.
//
// It verifies:
//   - the failing entry keeps its version
//   - later entries are still processed
//   - Summary.Err is a PartialSuccessError
func TestRegistryFailures(t *testing.T) {
	doc := parse(t, "[dependencies]\nbroken = \"*\"\nmissing = \"*\"\nok = \"*\"\n")
	clientErr := &errs.ClientError{Name: "broken", Reason: "error running search", Err: errors.New("exec: \"cargo\": executable file not found in $PATH")}
	reg := testutil.NewRegistry().
		WithError("broken", clientErr).
		WithVersion("ok", "0.1.0")
	rec := &recorder{}

	summary, err := Run(context.Background(), doc, reg, Options{}, rec)
	require.NoError(t, err)

	assert.Equal(t, "[dependencies]\nbroken = \"*\"\nmissing = \"*\"\nok = \"0.1.0\"\n", output(t, doc))
	require.Len(t, rec.failures, 2)
	assert.Equal(t, "broken", rec.failures[0].Name)
	assert.ErrorIs(t, rec.failures[0].Err, clientErr)
	_, ok := errs.IsNotFoundError(rec.failures[1].Err)
	assert.True(t, ok)
	assert.Equal(t, 2, summary.Failed())
	assert.Equal(t, 1, summary.Stabilized)

	pse, ok := errs.IsPartialSuccess(summary.Err())
	require.True(t, ok)
	assert.Equal(t, 1, pse.Succeeded)
	assert.Equal(t, 2, pse.Failed)
	assert.Equal(t, errs.ExitPartialFailure, errs.GetExitCode(summary.Err()))
}

// TestEntriesWithoutVersion tests that entries without a string version are
// never queried, mutated or counted.
func TestEntriesWithoutVersion(t *testing.T) {
	content := `[dependencies]
local = { path = "../local" }
git = { git = "https://example.com/x.git", branch = "main" }
ws = { workspace = true }
odd = 7
star = "*"
`
	doc := parse(t, content)
	reg := testutil.NewRegistry().WithVersion("star", "1.0.0")

	summary, err := Run(context.Background(), doc, reg, Options{UpgradeAll: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"star"}, reg.Calls())
	assert.Equal(t, strings.Replace(content, `star = "*"`, `star = "1.0.0"`, 1), output(t, doc))
	assert.Equal(t, 1, summary.Checked)
}

// TestRenamedAndMemoized tests registry name selection and query caching.
//
// It verifies:
//   - a renamed crate is queried by its package name
//   - a crate appearing in two sections is queried once
func TestRenamedAndMemoized(t *testing.T) {
	content := `[dependencies]
json = { package = "serde_json", version = "*" }
serde = "*"

[dev-dependencies]
serde = { version = "*", features = ["derive"] }
`
	doc := parse(t, content)
	reg := testutil.NewRegistry().
		WithVersion("serde_json", "1.0.128").
		WithVersion("serde", "1.0.210")

	summary, err := Run(context.Background(), doc, reg, Options{Sections: []string{"dependencies", "dev-dependencies"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"serde_json", "serde"}, reg.Calls())
	assert.Equal(t, 3, summary.Stabilized)
	assert.Equal(t, 3, summary.Checked)

	var tree map[string]any
	require.NoError(t, toml.Unmarshal([]byte(output(t, doc)), &tree))
	deps := tree["dependencies"].(map[string]any)
	assert.Equal(t, "1.0.128", deps["json"].(map[string]any)["version"])
	assert.Equal(t, "serde_json", deps["json"].(map[string]any)["package"])
	assert.Equal(t, "1.0.210", tree["dev-dependencies"].(map[string]any)["serde"].(map[string]any)["version"])
}

// TestIdempotent tests that a second run finds nothing to do.
func TestIdempotent(t *testing.T) {
	reg := testutil.NewRegistry().WithVersion("foo", "1.2.3").WithVersion("bar", "0.4.0")
	doc := parse(t, "[dependencies]\nfoo = \"*\"\nbar = \"*\"\n")

	first, err := Run(context.Background(), doc, reg, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Stabilized)

	again := parse(t, output(t, doc))
	second, err := Run(context.Background(), again, reg, Options{}, nil)
	require.NoError(t, err)
	assert.Zero(t, second.Stabilized)
	assert.Zero(t, second.Upgraded)
	assert.Equal(t, output(t, doc), output(t, again))

	third, err := Run(context.Background(), again, reg, Options{UpgradeAll: true}, nil)
	require.NoError(t, err)
	assert.Zero(t, third.Changed())
}

// TestCancellation tests that a cancelled context stops before the next
// query and leaves later entries untouched.
func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doc := parse(t, "[dependencies]\na = \"*\"\nb = \"*\"\nc = \"*\"\n")
	reg := testutil.NewRegistry().
		WithVersion("a", "1.0.0").
		WithVersion("b", "1.0.0").
		WithVersion("c", "1.0.0").
		OnCall(func(name string) {
			if name == "b" {
				cancel()
			}
		})

	summary, err := Run(ctx, doc, reg, Options{}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a", "b"}, reg.Calls())
	assert.GreaterOrEqual(t, summary.Stabilized, 1)
	assert.Equal(t, errs.ExitInterrupted, errs.GetExitCode(err))
}

// TestClassify tests the bump classification table.
func TestClassify(t *testing.T) {
	tests := []struct {
		from, to string
		want     Bump
	}{
		{"*", "1.0.0", BumpStabilized},
		{"1.0", "2.0.0", BumpMajor},
		{"^1.2", "1.3.0", BumpMinor},
		{"~1.2.3", "1.2.4", BumpPatch},
		{"=1.2.3", "1.2.3", BumpOther},
		{"1.0.0-beta.1", "1.0.0-beta.2", BumpPrerelease},
		{"1.2.3", "1.2.2", BumpDowngrade},
		{"0.3", "0.4.0", BumpMinor},
		{">=1, <2", "1.5.0", BumpOther},
		{"1.*", "1.5.0", BumpOther},
		{"1.0.0-alpha.next", "1.0.0", BumpPrerelease},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.from, tt.to))
		})
	}
}
