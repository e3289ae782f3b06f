// Package registry looks up the latest published version of a crate.
//
// Two sources are supported: SearchClient runs `cargo search` (or any
// configured command printing the same format) and APIClient asks the
// crates.io JSON API directly. Both return the same error taxonomy:
// *errors.ClientError when the registry could not be asked,
// *errors.NotFoundError when the crate does not exist and
// *errors.BadResponseError when the answer is unusable.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/ajxudir/cargo-stabilize/pkg/config"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
)

// Client resolves crate names to their latest version.
type Client interface {
	// Latest returns the newest version of the named crate.
	Latest(ctx context.Context, name string) (string, error)
}

// New builds the client selected by cfg.Source.
//
// Parameters:
//   - cfg: Registry settings
//
// Returns:
//   - Client: SearchClient for "search", APIClient for "api"
//   - error: *errors.ValidationError for an unknown source
func New(cfg config.RegistryConfig) (Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Source {
	case config.SourceSearch, "":
		return &SearchClient{
			Registry: cfg.Name,
			Command:  cfg.Command,
			Limit:    cfg.Limit,
			Env:      cfg.Env,
			Timeout:  timeout,
		}, nil
	case config.SourceAPI:
		return NewAPIClient(cfg.URL, cfg.UserAgent, cfg.AuthEnv, timeout), nil
	default:
		return nil, errs.NewConfigValidationError("registry.source", "unknown source \""+cfg.Source+"\"", config.SourceSearch, config.SourceAPI)
	}
}

// Label returns the human name of a registry, e.g. "crates.io" for the
// cargo registry id "crates-io".
func Label(registry string) string {
	switch registry {
	case "", "crates-io":
		return "crates.io"
	default:
		return registry
	}
}

// validateVersion checks that a registry answer is a semantic version.
func validateVersion(name, version string) (string, error) {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return "", &errs.BadResponseError{Name: name, Reason: fmt.Sprintf("registry returned invalid version %q", version), Err: err}
	}
	return version, nil
}
