package output

import (
	"fmt"
	"io"

	"github.com/ajxudir/cargo-stabilize/pkg/constants"
)

// WriteRunResult writes a run report in a structured format.
//
// Parameters:
//   - w: Destination writer for the output
//   - format: FormatJSON, FormatXML, or FormatCSV
//   - result: Report to write
//
// Returns:
//   - error: When format is not structured, returns an error; when write fails, returns the underlying error
func WriteRunResult(w io.Writer, format Format, result *RunResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(normalized(result))
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV:
		return writeRunCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// normalized replaces nil slices so JSON prints [] instead of null.
func normalized(result *RunResult) *RunResult {
	out := *result
	if out.Changes == nil {
		out.Changes = []ChangeEntry{}
	}
	if out.Failures == nil {
		out.Failures = []FailureEntry{}
	}
	return &out
}

// writeRunCSV writes one row per change and one per failure.
func writeRunCSV(f *Formatter, result *RunResult) error {
	headers := []string{"SECTION", "NAME", "FROM", "TO", "KIND", "BUMP", "STATUS", "ERROR"}
	rows := make([][]string, 0, len(result.Changes)+len(result.Failures))
	for _, c := range result.Changes {
		rows = append(rows, []string{c.Section, c.Name, c.From, c.To, c.Kind, c.Bump, c.Status, ""})
	}
	for _, fl := range result.Failures {
		rows = append(rows, []string{fl.Section, fl.Name, "", "", "", "", constants.StatusFailed, fl.Error})
	}
	return f.WriteCSV(headers, rows)
}
