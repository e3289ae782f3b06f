package registry

import (
	"context"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ajxudir/cargo-stabilize/pkg/cmdexec"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// continuationMarker starts the "... and N crates more" line of cargo search.
const continuationMarker = "\n..."

// SearchClient queries a registry through a search command.
//
// Fields:
//   - Registry: Registry id passed as {{registry}}
//   - Command: Command template, see config.DefaultSearchCommand
//   - Limit: Result limit passed as {{limit}}
//   - Env: Extra environment for the command
//   - Dir: Working directory for the command
//   - Timeout: Per-query limit, zero for none
type SearchClient struct {
	Registry string
	Command  string
	Limit    int
	Env      map[string]string
	Dir      string
	Timeout  time.Duration
}

// Latest runs the search command for name and parses its output.
func (c *SearchClient) Latest(ctx context.Context, name string) (string, error) {
	out, err := cmdexec.Run(ctx, cmdexec.Request{
		Command: c.Command,
		Vars:    cmdexec.SearchVars(c.Registry, name, c.Limit),
		Env:     c.Env,
		Dir:     c.Dir,
		Timeout: c.Timeout,
	})
	if err != nil {
		return "", &errs.ClientError{Name: name, Reason: "error running search", Err: err}
	}
	return ParseSearchOutput(Label(c.Registry), name, out)
}

// ParseSearchOutput extracts the version of name from `cargo search` output.
//
// The output is a list of TOML key/value lines, optionally followed by a
// "... and N crates more" line and "note:" lines:
//
//	serde = "1.0.210"    # A generic serialization/deserialization framework
//	serde_json = "1.0.128"    # A JSON serialization file format
//	... and 4920 crates more (use --limit N to see more)
//
// Everything from the continuation marker on is dropped, as are "note:"
// lines. The remainder is decoded as one TOML table and name is looked up
// in it. Crate names that differ only in case or in '-' versus '_' match,
// but an exact key match always wins.
//
// Parameters:
//   - registry: Registry label used in NotFoundError
//   - name: Queried crate name
//   - out: Raw command output
//
// Returns:
//   - string: Version string
//   - error: *errors.NotFoundError when there are no results or none for
//     name, *errors.BadResponseError when the output is not TOML, the value
//     is not a string, or the version is not semver
func ParseSearchOutput(registry, name string, out []byte) (string, error) {
	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	if strings.HasPrefix(text, "...") {
		text = ""
	}
	if i := strings.Index(text, continuationMarker); i >= 0 {
		text = text[:i]
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "note:") {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.TrimSpace(strings.Join(kept, "\n"))

	if text == "" {
		return "", &errs.NotFoundError{Registry: registry, Name: name}
	}

	var results map[string]any
	if err := toml.Unmarshal([]byte(text), &results); err != nil {
		return "", &errs.BadResponseError{Name: name, Reason: "search returned invalid data", Err: err}
	}

	value, ok := lookup(results, name)
	if !ok {
		verbose.Printf("Search for %s returned %d unrelated results", name, len(results))
		return "", &errs.NotFoundError{Registry: registry, Name: name}
	}

	version, ok := value.(string)
	if !ok {
		return "", &errs.BadResponseError{Name: name, Reason: "search returned invalid data"}
	}
	return validateVersion(name, version)
}

// lookup finds name in results, first exactly, then the way crates.io
// compares names.
func lookup(results map[string]any, name string) (any, bool) {
	if v, ok := results[name]; ok {
		return v, true
	}
	want := canonicalName(name)
	for k, v := range results {
		if canonicalName(k) == want {
			return v, true
		}
	}
	return nil, false
}

func canonicalName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
