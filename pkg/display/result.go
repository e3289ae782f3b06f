package display

import (
	"fmt"

	"github.com/ajxudir/cargo-stabilize/pkg/constants"
	"github.com/ajxudir/cargo-stabilize/pkg/output"
	"github.com/ajxudir/cargo-stabilize/pkg/stabilize"
)

// RunInfo carries the run metadata that the stabilize pass does not know.
//
// Fields:
//   - Manifest: Manifest path as given on the command line
//   - Registry: Registry label, e.g. "crates.io"
//   - DryRun: Whether writing was skipped on purpose
//   - Written: Whether the manifest was saved
type RunInfo struct {
	Manifest string
	Registry string
	DryRun   bool
	Written  bool
}

// RunResult converts a summary into the structured report used by the
// json, csv and xml formats. Missing and invalid sections become warnings.
func RunResult(s *stabilize.Summary, info RunInfo) *output.RunResult {
	result := &output.RunResult{
		Summary: output.RunSummary{
			Manifest:   info.Manifest,
			Mode:       Mode(s.UpgradeAll),
			Registry:   info.Registry,
			Checked:    s.Checked,
			Stabilized: s.Stabilized,
			Upgraded:   s.Upgraded,
			Failed:     s.Failed(),
			DryRun:     info.DryRun,
			Written:    info.Written,
		},
		Changes:  make([]output.ChangeEntry, 0, len(s.Changes)),
		Failures: make([]output.FailureEntry, 0, len(s.Failures)),
	}

	for _, c := range s.Changes {
		result.Changes = append(result.Changes, output.ChangeEntry{
			Section: c.Section,
			Name:    c.Name,
			From:    c.From,
			To:      c.To,
			Kind:    string(c.Kind),
			Bump:    string(c.Bump),
			Status:  ChangeStatus(c, info.DryRun),
		})
	}
	for _, f := range s.Failures {
		result.Failures = append(result.Failures, output.FailureEntry{
			Section: f.Section,
			Name:    f.Name,
			Error:   f.Err.Error(),
		})
	}
	for _, section := range s.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No %s", section))
	}
	for _, section := range s.Invalid {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid %s", section))
	}
	return result
}

// ChangesTable builds the table printed by --output table.
//
// The SECTION column is only shown when changes or failures span more than
// one section. The ERROR column is only shown when something failed.
func ChangesTable(s *stabilize.Summary, dryRun bool) *output.Table {
	sections := make(map[string]struct{})
	for _, c := range s.Changes {
		sections[c.Section] = struct{}{}
	}
	for _, f := range s.Failures {
		sections[f.Section] = struct{}{}
	}

	table := output.NewTable().
		AddConditionalColumn("SECTION", len(sections) > 1).
		AddColumn("NAME").
		AddColumn("FROM").
		AddColumn("TO").
		AddColumn("BUMP").
		AddColumn("STATUS").
		AddConditionalColumn("ERROR", len(s.Failures) > 0)

	for _, c := range s.Changes {
		table.AddRow(c.Section, c.Name, c.From, c.To, string(c.Bump), FormatStatus(ChangeStatus(c, dryRun)), "")
	}
	for _, f := range s.Failures {
		na := constants.PlaceholderNA
		table.AddRow(f.Section, f.Name, na, na, na, FormatStatus(constants.StatusFailed), f.Err.Error())
	}
	return table
}
