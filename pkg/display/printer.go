package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ajxudir/cargo-stabilize/pkg/constants"
	"github.com/ajxudir/cargo-stabilize/pkg/stabilize"
)

var (
	nameColor    = color.New(color.FgHiYellow)
	oldColor     = color.New(color.FgCyan)
	newColor     = color.New(color.FgHiCyan)
	successColor = color.New(color.FgHiGreen)
	failColor    = color.New(color.FgRed)
)

// SetColor forces colors on or off for every Printer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Printer is the stabilize.Reporter for text output.
//
// Fields:
//   - out: Destination for change lines and the summary
type Printer struct {
	out io.Writer
}

var _ stabilize.Reporter = (*Printer)(nil)

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// SectionMissing prints "No <section>".
func (p *Printer) SectionMissing(section string) {
	_, _ = fmt.Fprintf(p.out, "No %s\n", section)
}

// SectionInvalid prints "Invalid <section>".
func (p *Printer) SectionInvalid(section string, _ error) {
	_, _ = fmt.Fprintf(p.out, "Invalid %s\n", section)
}

// Changed prints "name: old -> new".
func (p *Printer) Changed(c stabilize.Change) {
	_, _ = fmt.Fprintf(p.out, "%s: %s -> %s\n",
		nameColor.Sprint(c.Name), oldColor.Sprint(c.From), newColor.Sprint(c.To))
}

// Failed prints the lookup error. Errors that do not already name the
// crate are prefixed with it.
func (p *Printer) Failed(f stabilize.Failure) {
	msg := f.Err.Error()
	if !mentions(msg, f.Name) {
		msg = fmt.Sprintf("%s: %s", nameColor.Sprint(f.Name), failColor.Sprint(msg))
	} else {
		msg = failColor.Sprint(msg)
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

// Summary prints the closing lines of a run.
//
// Example output:
//
//	Stabilized 2 dependencies
//	Upgraded 1 dependency
func (p *Printer) Summary(s *stabilize.Summary) {
	for _, line := range SummaryLines(s) {
		_, _ = fmt.Fprintln(p.out, successColor.Sprint(line.Lead)+line.Rest)
	}
}

// DryRun prints the note that the manifest was left alone.
func (p *Printer) DryRun(manifestPath string) {
	_, _ = fmt.Fprintf(p.out, "%s Dry run: %s not written\n", constants.IconPending, manifestPath)
}

// SummaryLine is one summary line split into its highlighted lead word and
// the rest.
type SummaryLine struct {
	Lead string
	Rest string
}

// String returns the plain text of the line.
func (l SummaryLine) String() string {
	return l.Lead + l.Rest
}

// SummaryLines returns the closing lines for s.
//
// Stabilized and upgraded counts get one line each when non-zero, each
// pluralized by its own count. With nothing changed the line reads "All
// dependencies are up to date" in upgrade mode and "All dependencies are
// stable" otherwise.
func SummaryLines(s *stabilize.Summary) []SummaryLine {
	var lines []SummaryLine
	if s.Stabilized > 0 {
		lines = append(lines, SummaryLine{"Stabilized", fmt.Sprintf(" %d %s", s.Stabilized, Pluralize(s.Stabilized))})
	}
	if s.Upgraded > 0 {
		lines = append(lines, SummaryLine{"Upgraded", fmt.Sprintf(" %d %s", s.Upgraded, Pluralize(s.Upgraded))})
	}
	if len(lines) == 0 {
		if s.UpgradeAll {
			lines = append(lines, SummaryLine{Lead: "All dependencies are up to date"})
		} else {
			lines = append(lines, SummaryLine{Lead: "All dependencies are stable"})
		}
	}
	return lines
}

// mentions reports whether msg already names the crate, as NotFoundError
// messages do.
func mentions(msg, name string) bool {
	return name != "" && strings.Contains(msg, fmt.Sprintf("%q", name))
}
