// Package display renders cargo-stabilize runs for humans.
//
// Printer is the stabilize.Reporter used for the default text output. It
// prints one colored line per change, a line per failed lookup and the
// closing summary:
//
//	serde: * -> 1.0.210
//	crates.io has no crate named "serde-jsn"
//	Stabilized 1 dependency
//
// Colors come from fatih/color and switch off with --no-color, NO_COLOR or
// when stdout is not a terminal.
//
// Status Formatting:
//
//	status := display.FormatStatus(constants.StatusStabilized) // "🟢 Stabilized"
//
// For the table and structured formats, use ChangesTable and RunResult,
// which build values for the pkg/output package.
package display
