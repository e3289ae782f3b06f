package manifest

import (
	"github.com/iancoleman/orderedmap"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Form describes how a dependency entry is written.
type Form int

const (
	// FormOther is any value that is neither a string nor a table.
	FormOther Form = iota

	// FormBare is `name = "1.0"`.
	FormBare

	// FormTable is `name = { version = "1.0", ... }` or a `[section.name]` table.
	FormTable
)

// String returns the lowercase form name.
func (f Form) String() string {
	switch f {
	case FormBare:
		return "bare"
	case FormTable:
		return "table"
	default:
		return "other"
	}
}

// Section is one dependency table of a manifest.
//
// Fields:
//   - Name: Dotted table path, e.g. "dependencies"
type Section struct {
	Name string

	entries *orderedmap.OrderedMap
}

func newSection(doc *Document, name string, path []string, table map[string]any) *Section {
	entries := orderedmap.New()
	for _, key := range doc.orderedKeys(path, table) {
		entries.Set(key, newDependency(doc, name, path, table, key))
	}
	return &Section{Name: name, entries: entries}
}

// Len returns the number of entries, including ones without a version.
func (s *Section) Len() int {
	return len(s.entries.Keys())
}

// Names returns the dependency names in document order.
func (s *Section) Names() []string {
	return s.entries.Keys()
}

// Get returns the dependency named name.
func (s *Section) Get(name string) (*Dependency, bool) {
	v, ok := s.entries.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Dependency), true
}

// Dependencies returns every entry in document order.
func (s *Section) Dependencies() []*Dependency {
	keys := s.entries.Keys()
	deps := make([]*Dependency, 0, len(keys))
	for _, k := range keys {
		if dep, ok := s.Get(k); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

// Dependency is one entry of a dependency section.
//
// Fields:
//   - Section: Name of the owning section
//   - Name: Key of the entry
//   - Package: Registry name from `package = "..."`, empty when not renamed
//   - Version: Current version constraint, valid when HasVersion is true
//   - HasVersion: Whether the entry carries a string version
//   - Form: How the entry is written
type Dependency struct {
	Section    string
	Name       string
	Package    string
	Version    string
	HasVersion bool
	Form       Form

	doc     *Document
	table   map[string]any
	key     string
	at      unstable.Range
	located bool
}

func newDependency(doc *Document, section string, path []string, parent map[string]any, key string) *Dependency {
	dep := &Dependency{Section: section, Name: key, doc: doc}
	entryPath := append(append([]string(nil), path...), key)

	switch v := parent[key].(type) {
	case string:
		dep.Form = FormBare
		dep.Version, dep.HasVersion = v, true
		dep.table, dep.key = parent, key
		dep.at, dep.located = doc.layout.stringAt(entryPath)
	case map[string]any:
		dep.Form = FormTable
		if pkg, ok := v["package"].(string); ok {
			dep.Package = pkg
		}
		if version, ok := v["version"].(string); ok {
			dep.Version, dep.HasVersion = version, true
			dep.table, dep.key = v, "version"
			dep.at, dep.located = doc.layout.stringAt(append(entryPath, "version"))
		}
	default:
		dep.Form = FormOther
	}
	return dep
}

// QueryName returns the name to look up on the registry.
func (d *Dependency) QueryName() string {
	if d.Package != "" {
		return d.Package
	}
	return d.Name
}

// SetVersion replaces the version string in the tree and records the edit
// for the splicing writer. Entries without a string version are left alone.
//
// Parameters:
//   - version: New version constraint
//
// Returns:
//   - bool: true if the entry was updated
func (d *Dependency) SetVersion(version string) bool {
	if !d.HasVersion || d.table == nil {
		return false
	}
	d.table[d.key] = version
	d.Version = version
	if d.located {
		d.doc.record(d.at, version)
	} else {
		d.doc.unlocated++
	}
	return true
}
