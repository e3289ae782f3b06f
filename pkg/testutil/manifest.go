package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ManifestBuilder builds Cargo.toml text for tests.
//
// Entries are written in the order they are added, each section as one
// [table] block.
type ManifestBuilder struct {
	name     string
	sections []string
	entries  map[string][]string
}

// NewManifest creates a ManifestBuilder for a package named name.
func NewManifest(name string) *ManifestBuilder {
	return &ManifestBuilder{name: name, entries: make(map[string][]string)}
}

// Dep adds `name = "version"` to section.
//
// Parameters:
//   - section: Section name, e.g. "dependencies"
//   - name: Dependency key
//   - version: Version constraint
//
// Returns:
//   - *ManifestBuilder: Self for method chaining
func (b *ManifestBuilder) Dep(section, name, version string) *ManifestBuilder {
	return b.Raw(section, fmt.Sprintf("%s = %q", name, version))
}

// TableDep adds `name = { version = "...", <extra> }` to section. extra is
// inserted verbatim after the version, e.g. `features = ["derive"]`.
func (b *ManifestBuilder) TableDep(section, name, version, extra string) *ManifestBuilder {
	line := fmt.Sprintf("%s = { version = %q", name, version)
	if extra != "" {
		line += ", " + extra
	}
	return b.Raw(section, line+" }")
}

// Raw adds a verbatim line to section.
func (b *ManifestBuilder) Raw(section, line string) *ManifestBuilder {
	if _, ok := b.entries[section]; !ok {
		b.sections = append(b.sections, section)
	}
	b.entries[section] = append(b.entries[section], line)
	return b
}

// String renders the manifest.
func (b *ManifestBuilder) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n", b.name)
	for _, section := range b.sections {
		fmt.Fprintf(&sb, "\n[%s]\n", section)
		for _, line := range b.entries[section] {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Write writes the manifest as Cargo.toml into dir.
//
// Returns:
//   - string: Path of the written file
func (b *ManifestBuilder) Write(t *testing.T, dir string) string {
	t.Helper()
	return WriteManifest(t, dir, b.String())
}

// WriteManifest writes content as Cargo.toml into dir and returns its path.
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

// ReadManifest returns the content of Cargo.toml in dir.
func ReadManifest(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	return string(data)
}
