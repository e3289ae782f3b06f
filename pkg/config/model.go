package config

// Registry sources.
const (
	// SourceSearch runs a search command such as `cargo search`.
	SourceSearch = "search"

	// SourceAPI queries the crates.io JSON API over HTTP.
	SourceAPI = "api"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".cargo-stabilize.yml"

// DefaultMaxConfigFileSize is the largest config file LoadConfig will read.
const DefaultMaxConfigFileSize = 1 << 20

// MaxSearchLimit is the largest --limit `cargo search` accepts.
const MaxSearchLimit = 100

// Config is the complete cargo-stabilize configuration.
//
// Fields:
//   - Manifest: Manifest path, relative to the working directory
//   - Sections: Dependency tables to process, as dotted paths
//   - Upgrade: Query every dependency, not only wildcards
//   - Normalize: Re-encode the whole manifest instead of splicing edits
//   - Registry: How to look up latest versions
//   - Source: Path of the config file that was loaded, empty for defaults
type Config struct {
	Manifest  string         `yaml:"manifest"`
	Sections  []string       `yaml:"sections"`
	Upgrade   bool           `yaml:"upgrade"`
	Normalize bool           `yaml:"normalize"`
	Registry  RegistryConfig `yaml:"registry"`

	Source string `yaml:"-"`
}

// RegistryConfig selects and configures the registry client.
//
// Fields:
//   - Name: Registry id for {{registry}}, e.g. "crates-io"
//   - Source: "search" or "api"
//   - Command: Search command template with {{registry}}, {{limit}}, {{package}}
//   - Limit: Number of search results requested
//   - URL: API root for the "api" source
//   - UserAgent: User-Agent header for the "api" source
//   - AuthEnv: Env var holding a bearer token for the "api" source
//   - TimeoutSeconds: Per-query timeout, 0 for none
//   - Env: Extra environment for the search command
type RegistryConfig struct {
	Name           string            `yaml:"name"`
	Source         string            `yaml:"source"`
	Command        string            `yaml:"command"`
	Limit          int               `yaml:"limit"`
	URL            string            `yaml:"url"`
	UserAgent      string            `yaml:"user_agent"`
	AuthEnv        string            `yaml:"auth_env"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Env            map[string]string `yaml:"env,omitempty"`
}
