package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// DefaultPath is the manifest file name looked up in the working directory.
const DefaultPath = "Cargo.toml"

// readFile and writeFile are the filesystem seams used by Load and Save.
var (
	readFile  = os.ReadFile
	writeFile = os.WriteFile
)

// Document is a parsed manifest together with its original bytes.
//
// Fields:
//   - Path: File the document was loaded from and is saved to
type Document struct {
	Path string

	raw    []byte
	tree   map[string]any
	layout *layout
	edits  map[uint32]edit

	// unlocated counts edits whose source token could not be found.
	unlocated int
}

// edit is a pending replacement of one string token in raw.
type edit struct {
	at    unstable.Range
	value string
	quote byte
}

// Load reads and parses the manifest at path.
//
// Parameters:
//   - path: Manifest file path
//
// Returns:
//   - *Document: Parsed document
//   - error: *errors.IOError when the file cannot be read, otherwise as Parse
func Load(path string) (*Document, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &errs.IOError{Op: "read", Path: path, Err: err}
	}
	verbose.Printf("Read %d bytes from %s", len(data), path)
	return Parse(path, data)
}

// Parse decodes data as a manifest.
//
// Parameters:
//   - path: Path reported in errors and used by Save
//   - data: Manifest content
//
// Returns:
//   - *Document: Parsed document
//   - error: *errors.ParseError for invalid TOML, *errors.ShapeError when the
//     document cannot be indexed
func Parse(path string, data []byte) (*Document, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		pe := &errs.ParseError{Path: path, Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	if tree == nil {
		tree = make(map[string]any)
	}

	l, err := scanLayout(data)
	if err != nil {
		return nil, &errs.ShapeError{Subject: "manifest", Detail: err.Error()}
	}

	return &Document{
		Path:   path,
		raw:    data,
		tree:   tree,
		layout: l,
		edits:  make(map[uint32]edit),
	}, nil
}

// Tree returns the decoded document. Mutations through SetVersion are
// visible here.
func (d *Document) Tree() map[string]any {
	return d.tree
}

// Changed reports whether any version was edited.
func (d *Document) Changed() bool {
	return len(d.edits) > 0 || d.unlocated > 0
}

// Section returns the dependency table at a dotted path such as
// "dependencies" or "workspace.dependencies".
//
// Parameters:
//   - name: Dotted table path
//
// Returns:
//   - *Section: Entries of the table in document order
//   - error: *errors.MissingSectionError when absent, *errors.ShapeError when
//     the value is not a table
func (d *Document) Section(name string) (*Section, error) {
	path := strings.Split(name, ".")

	var node any = d.tree
	for _, part := range path {
		table, ok := node.(map[string]any)
		if !ok {
			return nil, &errs.ShapeError{Subject: name}
		}
		node, ok = table[part]
		if !ok {
			return nil, &errs.MissingSectionError{Section: name}
		}
	}

	table, ok := node.(map[string]any)
	if !ok {
		return nil, &errs.ShapeError{Subject: name, Detail: fmt.Sprintf("expected a table, found %T", node)}
	}

	return newSection(d, name, path, table), nil
}

// orderedKeys returns the keys of table in document order. Keys the layout
// did not see are appended in sorted order.
func (d *Document) orderedKeys(path []string, table map[string]any) []string {
	keys := make([]string, 0, len(table))
	listed := make(map[string]bool, len(table))
	for _, k := range d.layout.keys(path) {
		if _, ok := table[k]; ok && !listed[k] {
			keys = append(keys, k)
			listed[k] = true
		}
	}

	var rest []string
	for k := range table {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// record remembers a replacement of the token at r.
func (d *Document) record(r unstable.Range, value string) {
	quote := byte('"')
	if int(r.Offset) < len(d.raw) {
		quote = d.raw[r.Offset]
	}
	d.edits[r.Offset] = edit{at: r, value: value, quote: quote}
}

// Bytes returns the original content with every edited version token
// replaced. Untouched bytes are returned as they were read.
func (d *Document) Bytes() []byte {
	if len(d.edits) == 0 {
		return append([]byte(nil), d.raw...)
	}

	ordered := make([]edit, 0, len(d.edits))
	for _, e := range d.edits {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].at.Offset < ordered[j].at.Offset
	})

	var buf bytes.Buffer
	buf.Grow(len(d.raw))
	pos := uint32(0)
	for _, e := range ordered {
		buf.Write(d.raw[pos:e.at.Offset])
		buf.WriteString(quoteString(e.value, e.quote))
		pos = e.at.Offset + e.at.Length
	}
	buf.Write(d.raw[pos:])
	return buf.Bytes()
}

// Canonical re-encodes the decoded tree with go-toml. Keys are sorted and
// comments are dropped.
func (d *Document) Canonical() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(false)
	if err := enc.Encode(d.tree); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.Path, err)
	}
	return buf.Bytes(), nil
}

// Encode returns the bytes Save would write.
//
// Parameters:
//   - normalize: Use the canonical encoding instead of splicing edits
//
// Returns:
//   - []byte: Encoded document
//   - error: Encoding error from the canonical encoder
func (d *Document) Encode(normalize bool) ([]byte, error) {
	if normalize {
		return d.Canonical()
	}
	if d.unlocated > 0 {
		verbose.Printf("%d edited versions have no source position, using canonical encoding", d.unlocated)
		return d.Canonical()
	}
	return d.Bytes(), nil
}

// Save writes the document back to Path, keeping the file's permissions.
//
// Parameters:
//   - normalize: Use the canonical encoding instead of splicing edits
//
// Returns:
//   - error: *errors.IOError when the file cannot be written
func (d *Document) Save(normalize bool) error {
	data, err := d.Encode(normalize)
	if err != nil {
		return &errs.IOError{Op: "write", Path: d.Path, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(d.Path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := writeFile(d.Path, data, mode); err != nil {
		return &errs.IOError{Op: "write", Path: d.Path, Err: err}
	}
	verbose.Printf("Wrote %d bytes to %s (normalize=%t, edits=%d)", len(data), d.Path, normalize, len(d.edits))
	return nil
}
