package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
)

// Validate checks the configuration for values the run cannot use.
//
// Returns:
//   - error: nil when valid, otherwise an *errors.ExitError with
//     ExitConfigError wrapping one *errors.ValidationError per problem
func (c *Config) Validate() error {
	var problems []error
	add := func(field, msg string, valid ...string) {
		problems = append(problems, errs.NewConfigValidationError(field, msg, valid...))
	}

	if strings.TrimSpace(c.Manifest) == "" {
		add("manifest", "must not be empty")
	}

	if len(c.Sections) == 0 {
		add("sections", "at least one section is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		field := fmt.Sprintf("sections[%d]", i)
		switch {
		case strings.TrimSpace(s) == "":
			add(field, "must not be empty")
		case hasEmptySegment(s):
			add(field, fmt.Sprintf("%q has an empty path segment", s))
		case seen[s]:
			add(field, fmt.Sprintf("duplicate section %q", s))
		}
		seen[s] = true
	}

	r := c.Registry
	switch r.Source {
	case SourceSearch:
		if strings.TrimSpace(r.Command) == "" {
			add("registry.command", "must not be empty for the search source")
		} else if !strings.Contains(r.Command, "{{package}}") {
			add("registry.command", "must contain the {{package}} placeholder")
		}
		if strings.Contains(r.Command, "{{registry}}") && strings.TrimSpace(r.Name) == "" {
			add("registry.name", "must not be empty when the command uses {{registry}}")
		}
		if r.Limit < 1 || r.Limit > MaxSearchLimit {
			add("registry.limit", fmt.Sprintf("must be between 1 and %d, got %d", MaxSearchLimit, r.Limit))
		}
	case SourceAPI:
		u, err := url.Parse(r.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			add("registry.url", fmt.Sprintf("%q is not an http(s) URL", r.URL))
		}
	default:
		add("registry.source", fmt.Sprintf("unknown source %q", r.Source), SourceSearch, SourceAPI)
	}

	if r.TimeoutSeconds < 0 {
		add("registry.timeout_seconds", "must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, "  - "+p.Error())
	}
	return &errs.ExitError{
		Code:    errs.ExitConfigError,
		Message: "Configuration validation failed:\n" + strings.Join(msgs, "\n"),
		Err:     errors.Join(problems...),
	}
}

func hasEmptySegment(section string) bool {
	for _, part := range strings.Split(section, ".") {
		if strings.TrimSpace(part) == "" {
			return true
		}
	}
	return false
}

// knownFields lists the keys of each config type for error hints.
var knownFields = map[string][]string{
	"Config":         {"manifest", "sections", "upgrade", "normalize", "registry"},
	"RegistryConfig": {"name", "source", "command", "limit", "url", "user_agent", "auth_env", "timeout_seconds", "env"},
}

// commonTypos maps likely misspellings to the real key.
var commonTypos = map[string]map[string]string{
	"Config": {
		"section":     "sections",
		"dependencies": "sections",
		"upgrade_all": "upgrade",
		"normalise":   "normalize",
		"path":        "manifest",
	},
	"RegistryConfig": {
		"timeout":   "timeout_seconds",
		"cmd":       "command",
		"useragent": "user_agent",
		"registry":  "name",
		"token_env": "auth_env",
	},
}

var lineRe = regexp.MustCompile(`line (\d+):`)

// describeDecodeError turns a yaml.v3 decode error into a ValidationError.
func describeDecodeError(err error) error {
	msg := err.Error()

	field, typeName := extractFieldAndType(msg)
	if field == "" {
		return errs.NewConfigValidationError("", "invalid YAML: "+msg)
	}

	text := fmt.Sprintf("unknown field '%s'", field)
	if line := extractLineNumber(msg); line > 0 {
		text = fmt.Sprintf("unknown field '%s' (line %d)", field, line)
	}
	if suggestion := suggestSimilarField(field, typeName); suggestion != "" {
		text += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return errs.NewConfigValidationError("", text, knownFields[typeName]...)
}

// extractFieldAndType parses "field foo not found in type config.Type".
func extractFieldAndType(msg string) (field, typeName string) {
	idx := strings.Index(msg, "field ")
	if idx < 0 || !strings.Contains(msg, "not found in type") {
		return "", ""
	}
	rest := msg[idx+len("field "):]
	if sp := strings.Index(rest, " "); sp > 0 {
		field = rest[:sp]
	}

	if t := strings.Index(msg, "in type config."); t >= 0 {
		typePart := msg[t+len("in type config."):]
		if end := strings.IndexAny(typePart, " \n"); end > 0 {
			typeName = typePart[:end]
		} else {
			typeName = typePart
		}
	}
	return field, typeName
}

// extractLineNumber returns the first "line N:" in msg, or 0.
func extractLineNumber(msg string) int {
	m := lineRe.FindStringSubmatch(msg)
	if len(m) < 2 {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// suggestSimilarField returns the key field was probably meant to be.
func suggestSimilarField(field, typeName string) string {
	if s, ok := commonTypos[typeName][field]; ok {
		return s
	}
	candidate := strings.ReplaceAll(field, "-", "_")
	if candidate == field {
		return ""
	}
	for _, known := range knownFields[typeName] {
		if known == candidate {
			return known
		}
	}
	return ""
}
