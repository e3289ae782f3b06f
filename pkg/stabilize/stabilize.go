// Package stabilize rewrites dependency versions of a Cargo manifest.
//
// Run walks the configured dependency sections of a loaded manifest.Document
// in document order, asks a registry.Client for the latest version of every
// wildcard ("*") entry (or of every entry in upgrade mode) and writes the
// answer back into the document. It never touches the file on disk; the
// caller saves the document once Run returns.
//
// Basic usage:
//
//	doc, err := manifest.Load("Cargo.toml")
//	if err != nil {
//	    return err
//	}
//	summary, err := stabilize.Run(ctx, doc, client, stabilize.Options{}, reporter)
//	if err != nil {
//	    return err // cancelled; nothing should be written
//	}
//	err = doc.Save(false)
package stabilize

import (
	"context"

	"github.com/ajxudir/cargo-stabilize/pkg/constants"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/manifest"
	"github.com/ajxudir/cargo-stabilize/pkg/registry"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// Wildcard is the version constraint that means "any version".
const Wildcard = constants.PlaceholderWildcard

// DefaultSections is used when Options.Sections is empty.
var DefaultSections = []string{"dependencies"}

// Options controls a run.
//
// Fields:
//   - UpgradeAll: Query every dependency, not only wildcards
//   - Sections: Dotted section paths to process, DefaultSections when empty
type Options struct {
	UpgradeAll bool
	Sections   []string
}

// Kind tells whether a change stabilized a wildcard or upgraded a version.
type Kind string

const (
	KindStabilized Kind = "stabilized"
	KindUpgraded   Kind = "upgraded"
)

// Change is one rewritten version.
type Change struct {
	Section string
	Name    string
	From    string
	To      string
	Kind    Kind
	Bump    Bump
}

// Failure is one dependency whose lookup failed. Its entry is unchanged.
type Failure struct {
	Section string
	Name    string
	Err     error
}

// Reporter receives events as Run progresses.
type Reporter interface {
	// SectionMissing is called when a section does not exist.
	SectionMissing(section string)

	// SectionInvalid is called when a section is not a table.
	SectionInvalid(section string, err error)

	// Changed is called after a version was rewritten.
	Changed(c Change)

	// Failed is called after a lookup failed.
	Failed(f Failure)
}

// Summary is the outcome of a run.
//
// Fields:
//   - UpgradeAll: Whether the run was in upgrade mode
//   - Checked: Dependencies that were looked up (per entry, not per query)
//   - Stabilized: Wildcards replaced
//   - Upgraded: Non-wildcard versions replaced in upgrade mode
//   - Changes: Every rewrite, in processing order
//   - Failures: Every failed lookup, in processing order
//   - Missing: Sections that do not exist
//   - Invalid: Sections that are not tables
type Summary struct {
	UpgradeAll bool
	Checked    int
	Stabilized int
	Upgraded   int
	Changes    []Change
	Failures   []Failure
	Missing    []string
	Invalid    []string
}

// Failed returns the number of failed lookups.
func (s *Summary) Failed() int {
	return len(s.Failures)
}

// Changed returns the number of rewritten versions.
func (s *Summary) Changed() int {
	return s.Stabilized + s.Upgraded
}

// Err returns a *errors.PartialSuccessError when any lookup failed, nil
// otherwise.
func (s *Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	failed := make([]error, 0, len(s.Failures))
	for _, f := range s.Failures {
		failed = append(failed, f.Err)
	}
	return errs.NewPartialSuccessError(s.Checked-len(s.Failures), len(s.Failures), failed)
}

type lookup struct {
	version string
	err     error
}

// Run rewrites the versions of doc in place.
//
// Per section: a missing section is reported and skipped, as is one that is
// not a table. Per entry: entries without a string version are skipped
// silently; the registry is asked when the version is "*" or opts.UpgradeAll
// is set; a different answer replaces the version and counts as stabilized
// when the old value was "*", upgraded otherwise. Failed lookups are reported
// and leave the entry alone. Each crate is queried at most once per run.
//
// Parameters:
//   - ctx: Cancelling it stops before the next query
//   - doc: Loaded manifest, mutated in place
//   - client: Registry client
//   - opts: Run options
//   - reporter: Event sink, may be nil
//
// Returns:
//   - *Summary: Counts and details, also when cancelled
//   - error: ctx.Err() when cancelled, nil otherwise
func Run(ctx context.Context, doc *manifest.Document, client registry.Client, opts Options, reporter Reporter) (*Summary, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}
	sections := opts.Sections
	if len(sections) == 0 {
		sections = DefaultSections
	}

	summary := &Summary{UpgradeAll: opts.UpgradeAll}
	cache := make(map[string]lookup)

	for _, name := range sections {
		section, err := doc.Section(name)
		if err != nil {
			if errs.IsMissingSection(err) {
				verbose.Printf("Section %s not found", name)
				summary.Missing = append(summary.Missing, name)
				reporter.SectionMissing(name)
			} else {
				verbose.Printf("Section %s: %v", name, err)
				summary.Invalid = append(summary.Invalid, name)
				reporter.SectionInvalid(name, err)
			}
			continue
		}

		for _, dep := range section.Dependencies() {
			if !dep.HasVersion {
				verbose.DependencySkipped(name, dep.Name, "no version string")
				continue
			}
			if dep.Version != Wildcard && !opts.UpgradeAll {
				continue
			}
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			summary.Checked++
			query := dep.QueryName()
			res, cached := cache[query]
			if !cached {
				res.version, res.err = client.Latest(ctx, query)
				cache[query] = res
			}

			if res.err != nil {
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				f := Failure{Section: name, Name: dep.Name, Err: res.err}
				summary.Failures = append(summary.Failures, f)
				reporter.Failed(f)
				continue
			}

			verbose.VersionResolved(query, dep.Version, res.version, cached)
			if res.version == dep.Version {
				continue
			}

			change := Change{Section: name, Name: dep.Name, From: dep.Version, To: res.version}
			change.Bump = Classify(change.From, change.To)
			if change.From == Wildcard {
				change.Kind = KindStabilized
				summary.Stabilized++
			} else {
				change.Kind = KindUpgraded
				summary.Upgraded++
			}
			dep.SetVersion(res.version)
			summary.Changes = append(summary.Changes, change)
			reporter.Changed(change)
		}
	}
	return summary, nil
}

type nopReporter struct{}

func (nopReporter) SectionMissing(string) {}
func (nopReporter) SectionInvalid(string, error) {}
func (nopReporter) Changed(Change) {}
func (nopReporter) Failed(Failure) {}
