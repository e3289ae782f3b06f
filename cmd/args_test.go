package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSplitArgs tests the behavior of splitArgs.
//
// It verifies:
//   - A leading "stabilize" token is dropped
//   - Known flags and their values are kept
//   - Unknown flags and positional tokens are reported in order
//   - Subcommand invocations pass through untouched
func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantKnown   []string
		wantUnknown []string
	}{
		{"empty", nil, nil, nil},
		{"cargo token", []string{"stabilize", "--upgrade"}, []string{"--upgrade"}, nil},
		{"only cargo token", []string{"stabilize"}, nil, nil},
		{"help", []string{"-h"}, []string{"-h"}, nil},
		{"value flag", []string{"--manifest-path", "sub/Cargo.toml", "--dry-run"}, []string{"--manifest-path", "sub/Cargo.toml", "--dry-run"}, nil},
		{"inline value", []string{"--output=json", "-ocsv"}, []string{"--output=json", "-ocsv"}, nil},
		{"short value", []string{"-c", "cfg.yml"}, []string{"-c", "cfg.yml"}, nil},
		{"persistent flag", []string{"--verbose"}, []string{"--verbose"}, nil},
		{"unknown flag", []string{"--frob", "--upgrade"}, []string{"--upgrade"}, []string{"--frob"}},
		{"positional", []string{"foo", "--upgrade", "bar"}, []string{"--upgrade"}, []string{"foo", "bar"}},
		{"double dash", []string{"--upgrade", "--", "x", "--dry-run"}, []string{"--upgrade"}, []string{"x", "--dry-run"}},
		{"subcommand", []string{"config", "--show-defaults"}, []string{"config", "--show-defaults"}, nil},
		{"cargo subcommand", []string{"stabilize", "version"}, []string{"version"}, nil},
		{"stabilize later", []string{"--upgrade", "stabilize"}, []string{"--upgrade"}, []string{"stabilize"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known, unknown := splitArgs(newRootCmd(), tt.args)
			assert.Equal(t, tt.wantKnown, known)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}
