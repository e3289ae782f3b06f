// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Dependency status constants describe what a run did to one dependency.
const (
	// StatusStabilized indicates a "*" version was replaced.
	StatusStabilized = "Stabilized"

	// StatusUpgraded indicates a pinned version was replaced in upgrade mode.
	StatusUpgraded = "Upgraded"

	// StatusPlanned indicates a change that --dry-run did not write.
	StatusPlanned = "Planned"

	// StatusFailed indicates the registry lookup failed.
	StatusFailed = "Failed"
)

// Run modes.
const (
	// ModeStabilize replaces only wildcard versions.
	ModeStabilize = "stabilize"

	// ModeUpgrade replaces every version.
	ModeUpgrade = "upgrade"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"

	// PlaceholderWildcard is the wildcard version constraint.
	PlaceholderWildcard = "*"
)

// Icon constants for status display.
const (
	// IconSuccess marks a written change.
	IconSuccess = "🟢"

	// IconPending marks a planned (dry-run) change.
	IconPending = "🟡"

	// IconError marks a failed lookup.
	IconError = "❌"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)
