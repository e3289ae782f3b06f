package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusConstants tests the behavior of status constants.
//
// It verifies:
//   - Status constants have the expected string values
//   - Prevents accidental changes to values that appear in structured output
func TestStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"StatusStabilized", StatusStabilized, "Stabilized"},
		{"StatusUpgraded", StatusUpgraded, "Upgraded"},
		{"StatusPlanned", StatusPlanned, "Planned"},
		{"StatusFailed", StatusFailed, "Failed"},
		{"ModeStabilize", ModeStabilize, "stabilize"},
		{"ModeUpgrade", ModeUpgrade, "upgrade"},
		{"PlaceholderNA", PlaceholderNA, "#N/A"},
		{"PlaceholderWildcard", PlaceholderWildcard, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant, "constant %s has unexpected value", tt.name)
		})
	}
}

// TestIconConstants tests that every icon is set and distinct.
func TestIconConstants(t *testing.T) {
	icons := []string{IconSuccess, IconPending, IconError, IconWarn, IconLightbulb}
	seen := make(map[string]bool)
	for _, icon := range icons {
		assert.NotEmpty(t, icon)
		assert.False(t, seen[icon], "duplicate icon %q", icon)
		seen[icon] = true
	}
}
