// Package output provides formatters for exporting run reports.
// It supports CSV, JSON, and XML output as alternatives to the default
// colored text, plus a runewidth-aware Table for the aligned "table" format.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the default colored line-per-change output.
	FormatText Format = "text"
	// FormatTable prints changes and failures as an aligned table.
	FormatTable Format = "table"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatXML outputs data as XML.
	FormatXML Format = "xml"
)

// ValidFormats lists the accepted --output values.
var ValidFormats = []string{
	string(FormatText), string(FormatTable), string(FormatJSON), string(FormatCSV), string(FormatXML),
}

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive and an empty string means FormatText.
//
// Parameters:
//   - s: Format string to parse (e.g., "csv", "JSON")
//
// Returns:
//   - Format: The parsed format
//   - bool: false if s names no known format
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, true
	case "table":
		return FormatTable, true
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	case "xml":
		return FormatXML, true
	default:
		return FormatText, false
	}
}

// IsStructuredFormat returns true if the format is meant for machines.
//
// Structured formats (CSV, JSON, XML) replace all human output on stdout;
// the text and table formats do not.
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true if format is CSV, JSON, or XML
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML
}

// Formatter handles writing data in a specific format.
//
// Fields:
//   - format: The output format
//   - writer: Destination for formatted output
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the current format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header row and data rows as CSV.
//
// csv.Writer buffers writes and only reports errors via Error() after Flush().
//
// Parameters:
//   - headers: Column headers
//   - rows: Data rows, each with as many columns as headers
//
// Returns:
//   - error: The first write or flush error, nil otherwise
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes data as indented JSON.
func (f *Formatter) WriteJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteXML writes the XML header followed by data with 2-space indentation
// and a trailing newline.
//
// Parameters:
//   - data: Data structure with xml tags
//
// Returns:
//   - error: When encoding fails, returns the underlying error; otherwise returns nil
func (f *Formatter) WriteXML(data any) error {
	_, _ = fmt.Fprint(f.writer, xml.Header)
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}
