package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in characters
//   - hidden: Whether this column should be excluded from output
type Column struct {
	Header string
	Width  int
	hidden bool
}

// Table provides a table formatter with dynamic column widths.
// Widths are measured in terminal cells, so emoji icons and wide
// characters line up.
//
// Fields:
//   - columns: List of columns with their headers, widths, and visibility state
//   - separator: String used to separate columns (default: "  ")
//   - rows: Buffered data rows for Render
type Table struct {
	columns   []Column
	separator string
	rows      [][]string
}

// NewTable creates a new table formatter with a two-space separator.
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// WithSeparator sets a custom column separator and returns the table.
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn adds a column whose initial width is that of its header.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	return t.AddConditionalColumn(header, true)
}

// AddConditionalColumn adds a column with configurable visibility, e.g. a
// SECTION column that is only shown when more than one section was
// processed.
//
// Parameters:
//   - header: The text to display in the column header
//   - visible: Whether the column should be visible
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddConditionalColumn(header string, visible bool) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  DisplayWidth(header),
		hidden: !visible,
	})
	return t
}

// UpdateWidths widens columns to fit a row of values.
//
// Parameters:
//   - values: One value per column, hidden columns included
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i < len(t.columns) {
			if width := DisplayWidth(val); width > t.columns[i].Width {
				t.columns[i].Width = width
			}
		}
	}
	return t
}

// AddRow buffers a row for Render and widens columns to fit it.
func (t *Table) AddRow(values ...string) *Table {
	t.rows = append(t.rows, values)
	return t.UpdateWidths(values...)
}

// HeaderRow returns the formatted header row, skipping hidden columns.
func (t *Table) HeaderRow() string {
	var parts []string
	for _, col := range t.columns {
		if !col.hidden {
			parts = append(parts, ToWidth(col.Header, col.Width))
		}
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow returns a row of dashes matching the visible column widths.
func (t *Table) SeparatorRow() string {
	var parts []string
	for _, col := range t.columns {
		if !col.hidden {
			parts = append(parts, strings.Repeat("-", col.Width))
		}
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row with padding for each visible column.
//
// Values for hidden columns must still be passed; they are skipped. Missing
// values are treated as empty strings. Trailing padding is trimmed.
//
// Parameters:
//   - values: One value per column
//
// Returns:
//   - string: Formatted row
func (t *Table) FormatRow(values ...string) string {
	var parts []string
	for i, col := range t.columns {
		if col.hidden {
			continue
		}
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, ToWidth(val, col.Width))
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// ColumnCount returns the total number of columns including hidden ones.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// GetColumnWidth returns the width of a column by index, 0 if out of range.
func (t *Table) GetColumnWidth(index int) int {
	if index >= 0 && index < len(t.columns) {
		return t.columns[index].Width
	}
	return 0
}

// IsColumnHidden returns whether a column is hidden by index. Out of range
// indexes count as hidden.
func (t *Table) IsColumnHidden(index int) bool {
	if index >= 0 && index < len(t.columns) {
		return t.columns[index].hidden
	}
	return true
}

// Render writes the header, the separator and every buffered row to w.
//
// Parameters:
//   - w: The writer to output to
func (t *Table) Render(w io.Writer) {
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(w, t.FormatRow(row...))
	}
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ToWidth pads s with spaces to width terminal cells. Longer strings are
// returned unchanged.
func ToWidth(s string, width int) string {
	current := DisplayWidth(s)
	if width <= 0 || current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}
