package testutil

import (
	"github.com/ajxudir/cargo-stabilize/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// It starts from the built-in defaults so only the values a test cares
// about need setting.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfig creates a ConfigBuilder seeded with config.Default().
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Default()}
}

// WithManifest sets the manifest path.
func (b *ConfigBuilder) WithManifest(path string) *ConfigBuilder {
	b.cfg.Manifest = path
	return b
}

// WithSections replaces the processed sections.
//
// Parameters:
//   - sections: Dotted section paths, e.g. "dev-dependencies"
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithSections(sections ...string) *ConfigBuilder {
	b.cfg.Sections = sections
	return b
}

// WithUpgrade enables upgrade mode.
func (b *ConfigBuilder) WithUpgrade() *ConfigBuilder {
	b.cfg.Upgrade = true
	return b
}

// WithNormalize enables canonical re-encoding on save.
func (b *ConfigBuilder) WithNormalize() *ConfigBuilder {
	b.cfg.Normalize = true
	return b
}

// WithSearchCommand sets the search command template.
func (b *ConfigBuilder) WithSearchCommand(command string) *ConfigBuilder {
	b.cfg.Registry.Source = config.SourceSearch
	b.cfg.Registry.Command = command
	return b
}

// WithAPI switches the registry source to the HTTP API at url.
func (b *ConfigBuilder) WithAPI(url string) *ConfigBuilder {
	b.cfg.Registry.Source = config.SourceAPI
	b.cfg.Registry.URL = url
	return b
}

// Build returns the constructed configuration.
//
// Returns:
//   - *config.Config: The built configuration
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg
}
