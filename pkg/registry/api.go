package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// DefaultAPIURL is the crates.io API root.
const DefaultAPIURL = "https://crates.io/api/v1"

// crateResponse is the part of GET /crates/{name} we read.
type crateResponse struct {
	Crate struct {
		MaxStableVersion string `json:"max_stable_version"`
		MaxVersion       string `json:"max_version"`
	} `json:"crate"`
}

// APIClient queries the crates.io JSON API.
//
// Fields:
//   - BaseURL: API root, e.g. https://crates.io/api/v1
//   - UserAgent: Sent with every request; crates.io rejects anonymous clients
//   - AuthEnv: Name of an env var holding a bearer token, empty for none
//   - HTTP: Client used for requests
type APIClient struct {
	BaseURL   string
	UserAgent string
	AuthEnv   string
	HTTP      *http.Client
}

// NewAPIClient creates an APIClient. A zero timeout leaves requests bounded
// only by the caller's context.
//
// Parameters:
//   - baseURL: API root, DefaultAPIURL when empty
//   - userAgent: User-Agent header value
//   - authEnv: Env var name holding a bearer token, empty for none
//   - timeout: Per-request timeout
//
// Returns:
//   - *APIClient: Configured client
func NewAPIClient(baseURL, userAgent, authEnv string, timeout time.Duration) *APIClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &APIClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		AuthEnv:   authEnv,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Latest fetches the crate record and returns its newest stable version,
// or the newest version when nothing stable was published.
func (c *APIClient) Latest(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/crates/%s", c.BaseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &errs.ClientError{Name: name, Reason: "error querying registry", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.AuthEnv != "" {
		if token := os.Getenv(c.AuthEnv); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	verbose.Printf("GET %s", endpoint)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &errs.ClientError{Name: name, Reason: "error querying registry", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &errs.NotFoundError{Registry: c.label(), Name: name}
	case resp.StatusCode != http.StatusOK:
		return "", &errs.ClientError{Name: name, Reason: "error querying registry", Err: fmt.Errorf("GET %s: status %d", endpoint, resp.StatusCode)}
	}

	var body crateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &errs.BadResponseError{Name: name, Reason: "registry returned invalid data", Err: err}
	}

	version := body.Crate.MaxStableVersion
	if version == "" {
		version = body.Crate.MaxVersion
	}
	if version == "" {
		return "", &errs.BadResponseError{Name: name, Reason: "registry returned no version"}
	}
	return validateVersion(name, version)
}

// label names the registry in NotFoundError: crates.io, or the API host.
func (c *APIClient) label() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || u.Host == "crates.io" {
		return Label("")
	}
	return u.Host
}
