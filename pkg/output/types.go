package output

import "encoding/xml"

// RunResult is the structured report of one run.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Counts and run metadata
//   - Changes: One entry per rewritten version
//   - Failures: One entry per failed lookup
//   - Warnings: Section problems and other notices (omitted if empty)
type RunResult struct {
	XMLName  xml.Name       `json:"-" xml:"stabilizeResult"`
	Summary  RunSummary     `json:"summary" xml:"summary"`
	Changes  []ChangeEntry  `json:"changes" xml:"changes>change"`
	Failures []FailureEntry `json:"failures" xml:"failures>failure"`
	Warnings []string       `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// RunSummary holds the counts and metadata of a run.
//
// Fields:
//   - Manifest: Path of the manifest
//   - Mode: "stabilize" or "upgrade"
//   - Registry: Registry label, e.g. "crates.io"
//   - Checked: Dependencies looked up
//   - Stabilized: Wildcards replaced
//   - Upgraded: Pinned versions replaced
//   - Failed: Failed lookups
//   - DryRun: Whether writing was skipped on purpose
//   - Written: Whether the manifest was written
type RunSummary struct {
	Manifest   string `json:"manifest" xml:"manifest"`
	Mode       string `json:"mode" xml:"mode"`
	Registry   string `json:"registry" xml:"registry"`
	Checked    int    `json:"checked" xml:"checked"`
	Stabilized int    `json:"stabilized" xml:"stabilized"`
	Upgraded   int    `json:"upgraded" xml:"upgraded"`
	Failed     int    `json:"failed" xml:"failed"`
	DryRun     bool   `json:"dry_run" xml:"dryRun"`
	Written    bool   `json:"written" xml:"written"`
}

// ChangeEntry is one rewritten version.
//
// Fields:
//   - Section: Dependency table, e.g. "dependencies"
//   - Name: Dependency key
//   - From: Previous constraint
//   - To: New version
//   - Kind: "stabilized" or "upgraded"
//   - Bump: major, minor, patch, prerelease, downgrade, stabilized or other
//   - Status: Stabilized, Upgraded or Planned
type ChangeEntry struct {
	Section string `json:"section" xml:"section"`
	Name    string `json:"name" xml:"name"`
	From    string `json:"from" xml:"from"`
	To      string `json:"to" xml:"to"`
	Kind    string `json:"kind" xml:"kind"`
	Bump    string `json:"bump" xml:"bump"`
	Status  string `json:"status" xml:"status"`
}

// FailureEntry is one failed registry lookup.
type FailureEntry struct {
	Section string `json:"section" xml:"section"`
	Name    string `json:"name" xml:"name"`
	Error   string `json:"error" xml:"error"`
}
