package stabilize

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Bump describes how a version constraint changed. It is informational only;
// the rewrite itself never depends on it.
type Bump string

const (
	BumpStabilized Bump = "stabilized"
	BumpMajor      Bump = "major"
	BumpMinor      Bump = "minor"
	BumpPatch      Bump = "patch"
	BumpPrerelease Bump = "prerelease"
	BumpDowngrade  Bump = "downgrade"
	BumpOther      Bump = "other"
)

// Classify compares the old constraint with the new version.
//
// A wildcard old value is BumpStabilized. Otherwise both sides are reduced to
// canonical semver (a leading ^, ~ or = is dropped, missing minor and patch
// count as zero) and compared. Compound or wildcard-segment constraints such
// as ">=1, <2" or "1.*" are BumpOther.
//
// Parameters:
//   - from: Constraint before the rewrite
//   - to: Version written
//
// Returns:
//   - Bump: Classification of the change
func Classify(from, to string) Bump {
	if from == Wildcard {
		return BumpStabilized
	}

	a, b := canonical(from), canonical(to)
	if a == "" || b == "" {
		return BumpOther
	}

	switch {
	case semver.Compare(b, a) < 0:
		return BumpDowngrade
	case semver.Major(a) != semver.Major(b):
		return BumpMajor
	case semver.MajorMinor(a) != semver.MajorMinor(b):
		return BumpMinor
	case strings.TrimSuffix(a, semver.Prerelease(a)) != strings.TrimSuffix(b, semver.Prerelease(b)):
		return BumpPatch
	case semver.Prerelease(a) != semver.Prerelease(b):
		return BumpPrerelease
	default:
		return BumpOther
	}
}

// canonical returns the x/mod/semver form of a single cargo constraint, or ""
// when it is not one.
func canonical(constraint string) string {
	v := strings.TrimSpace(constraint)
	v = strings.TrimLeft(v, "^~=")
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, " ,<>") {
		return ""
	}
	v = "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
