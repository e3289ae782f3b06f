package display

import (
	"fmt"

	"github.com/ajxudir/cargo-stabilize/pkg/constants"
	"github.com/ajxudir/cargo-stabilize/pkg/stabilize"
)

// FormatStatus formats a status string with the appropriate icon.
//
// Parameters:
//   - status: The status string (e.g., "Stabilized", "Failed", "Planned")
//
// Returns:
//   - string: Formatted status with icon prefix (e.g., "🟢 Stabilized")
//
// Example:
//
//	display.FormatStatus("Upgraded") // Returns "🟢 Upgraded"
//	display.FormatStatus("Failed")   // Returns "❌ Failed"
//	display.FormatStatus("Planned")  // Returns "🟡 Planned"
func FormatStatus(status string) string {
	if icon := StatusIcon(status); icon != "" {
		return fmt.Sprintf("%s %s", icon, status)
	}
	return status
}

// StatusIcon returns the icon for a given status, or "" if unknown.
func StatusIcon(status string) string {
	switch status {
	case constants.StatusStabilized, constants.StatusUpgraded:
		return constants.IconSuccess
	case constants.StatusPlanned:
		return constants.IconPending
	case constants.StatusFailed:
		return constants.IconError
	default:
		return ""
	}
}

// ChangeStatus returns the status of a change: Planned on a dry run,
// otherwise Stabilized or Upgraded by kind.
func ChangeStatus(c stabilize.Change, dryRun bool) string {
	switch {
	case dryRun:
		return constants.StatusPlanned
	case c.Kind == stabilize.KindStabilized:
		return constants.StatusStabilized
	default:
		return constants.StatusUpgraded
	}
}

// Pluralize returns "dependency" for 1 and "dependencies" otherwise.
func Pluralize(n int) string {
	if n == 1 {
		return "dependency"
	}
	return "dependencies"
}

// Mode returns the run mode name for reports.
func Mode(upgradeAll bool) string {
	if upgradeAll {
		return constants.ModeUpgrade
	}
	return constants.ModeStabilize
}
