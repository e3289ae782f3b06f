package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// DefaultSearchCommand is the search command used when none is configured.
const DefaultSearchCommand = "cargo search --registry {{registry}} --limit {{limit}} {{package}}"

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// loadDefaultConfig decodes the embedded default.yml. The literal fallback
// only applies if the embedded file is broken.
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{
		Manifest: "Cargo.toml",
		Sections: []string{"dependencies"},
		Registry: RegistryConfig{
			Name:    "crates-io",
			Source:  SourceSearch,
			Command: DefaultSearchCommand,
			Limit:   10,
		},
	}
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return loadDefaultConfig()
}

// GetDefaultConfig returns the embedded default configuration YAML.
//
// Returns:
//   - string: the default configuration as YAML
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the commented starter file written by
// `config --init`.
//
// Returns:
//   - string: the template configuration as YAML
func GetTemplateConfig() string {
	return templateConfigYAML
}
