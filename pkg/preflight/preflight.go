// Package preflight checks that a registry configuration can run before any
// dependency is queried.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/cargo-stabilize/pkg/config"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
)

// lookPath and shellHasCommand are replaced in tests.
var (
	lookPath        = exec.LookPath
	shellHasCommand = commandExistsInShell
)

// ValidateResult holds the result of pre-flight validation. None of it is
// fatal.
//
// Fields:
//   - Missing: Commands not found, with resolution hints
//   - Warnings: Other problems worth telling the user about
type ValidateResult struct {
	Missing  []*errs.ValidationError
	Warnings []string
}

// Messages returns every finding as a single warning line each, missing
// commands first.
func (r *ValidateResult) Messages() []string {
	msgs := make([]string, 0, len(r.Missing)+len(r.Warnings))
	for _, m := range r.Missing {
		msgs = append(msgs, strings.ReplaceAll(m.Error(), "\n  ", "; "))
	}
	return append(msgs, r.Warnings...)
}

// ValidateRegistry checks the registry configuration against the host.
//
// For the search source every command named in the template should be on
// PATH or known to the user's shell. For the api source a configured auth_env
// that is unset produces a warning.
//
// Parameters:
//   - cfg: Registry configuration, already validated
//
// Returns:
//   - *ValidateResult: Missing commands and warnings; never nil
func ValidateRegistry(cfg config.RegistryConfig) *ValidateResult {
	result := &ValidateResult{}

	switch cfg.Source {
	case config.SourceAPI:
		if cfg.AuthEnv != "" && os.Getenv(cfg.AuthEnv) == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s is not set; querying %s without a token", cfg.AuthEnv, cfg.URL))
		}
	default:
		commands := extractCommands(cfg.Command)
		verbose.Printf("Preflight: checking %d command(s) in search template", len(commands))
		for _, cmd := range commands {
			if err := validateCommand(cmd); err != nil {
				result.Missing = append(result.Missing, err)
			}
		}
	}
	return result
}

// extractCommands returns the unique command names in a shell template:
// the first word of each line and of each pipe segment. Comment lines and
// continuation lines are skipped. Template placeholders are never treated
// as commands.
func extractCommands(commands string) []string {
	var result []string
	seen := make(map[string]bool)

	trimmed := strings.TrimSpace(commands)
	if trimmed == "" {
		return result
	}

	normalized := strings.ReplaceAll(trimmed, "\r\n", "\n")
	continued := false
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		wasContinued := continued
		continued = strings.HasSuffix(line, "\\")
		if wasContinued || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSuffix(line, "\\")

		for _, part := range strings.Split(line, "|") {
			cmd := commandWord(strings.Fields(part))
			if cmd == "" || seen[cmd] {
				continue
			}
			seen[cmd] = true
			result = append(result, cmd)
		}
	}

	return result
}

// commandWord returns the command of a pipe segment, skipping leading
// VAR=value assignments. Placeholders yield "".
func commandWord(fields []string) string {
	for _, f := range fields {
		if strings.Contains(f, "=") && !strings.HasPrefix(f, "=") {
			continue
		}
		if strings.Contains(f, "{{") {
			return ""
		}
		return f
	}
	return ""
}

// validateCommand checks if a command exists in PATH or as a shell alias.
func validateCommand(cmd string) *errs.ValidationError {
	if cmd == "" {
		return nil
	}

	if _, err := lookPath(cmd); err == nil {
		return nil
	}
	if shellHasCommand(cmd) {
		verbose.Printf("Preflight: %q found as shell alias/function", cmd)
		return nil
	}

	hint := errs.GetHintForCommand(cmd)
	verbose.Printf("Preflight: command %q not found", cmd)
	return errs.NewPreflightValidationError(cmd, hint)
}

// commandExistsInShell asks the user's login shell via `command -v`, which
// also sees aliases and functions.
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	return exec.Command(shell, args...).Run() == nil
}
