package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when the search command is not found.
var CommandResolutionHints = map[string]string{
	"cargo":  "Install Rust: https://rustup.rs/",
	"rustup": "Install Rust: https://rustup.rs/",
	"curl":   "Install curl: https://curl.se/download.html (often pre-installed)",
	"jq":     "Install jq: https://jqlang.github.io/jq/download/ (JSON processor)",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "failed to parse",
		Hint:       "Check file syntax",
		Resolution: "Run 'cargo metadata --no-deps' to see where the manifest is malformed",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'cargo-stabilize config --show-effective' to validate config, or 'cargo-stabilize config --init' to create one",
	},
	{
		Pattern:    "command timed out",
		Hint:       "Registry search took too long",
		Resolution: "Increase registry.timeout_seconds in .cargo-stabilize.yml or set it to 0",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Run from the crate root or pass --manifest-path",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "status 403",
		Hint:       "Access forbidden",
		Resolution: "crates.io rejects requests without a descriptive User-Agent; set registry.user_agent",
	},
	{
		Pattern:    "status 429",
		Hint:       "Rate limited by the registry",
		Resolution: "Retry later or switch to --source search",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "cargo")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if hint := GetHint(err); hint != "" {
		return errStr + "\n  \U0001F4A1 " + hint
	}

	return errStr
}
