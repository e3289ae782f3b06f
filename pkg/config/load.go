// Package config loads cargo-stabilize settings.
//
// Settings come from the embedded default.yml, overlaid by a
// .cargo-stabilize.yml in the working directory (or the file named by
// --config). Command-line flags are applied on top by the cmd package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist. Otherwise
// .cargo-stabilize.yml in workDir is used when present. Keys missing from the
// file keep their default value.
//
// Parameters:
//   - configPath: path to the config file, or empty to look in workDir
//   - workDir: directory searched for .cargo-stabilize.yml
//
// Returns:
//   - *Config: the loaded configuration
//   - error: *errors.ExitError with ExitConfigError when the file cannot be
//     read, decoded or validated
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		local := filepath.Join(workDir, DefaultConfigFile)
		if _, err := os.Stat(local); err == nil {
			verbose.Printf("Found local config: %s", local)
			path = local
		}
	}

	if path == "" {
		verbose.Info("Using built-in default configuration")
	} else {
		data, err := readConfigFile(path, DefaultMaxConfigFileSize)
		if err != nil {
			return nil, errs.NewExitError(errs.ExitConfigError, fmt.Errorf("failed to load config %s: %w", path, err))
		}
		if err := decodeInto(cfg, data); err != nil {
			return nil, errs.NewExitError(errs.ExitConfigError, fmt.Errorf("failed to load config %s: %w", path, err))
		}
		cfg.Source = path
		verbose.ConfigLoaded(path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfigFile reads path, refusing files larger than maxSize.
func readConfigFile(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}
	return os.ReadFile(path)
}

// decodeInto overlays YAML data onto cfg. Unknown keys are rejected with a
// *errors.ValidationError that suggests the intended key when it can.
func decodeInto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	verbose.Printf("Config decode failed: %v", err)
	return describeDecodeError(err)
}
