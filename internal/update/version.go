package update

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// classify determines the update direction between installed and available
// versions. Detection itself is exact string inequality; semver parsing only
// distinguishes upgrade from downgrade. Unparseable versions classify as
// DirectionChanged. Tolerates a leading "v".
func classify(installed, available string) Direction {
	iv, err := parseSemver(installed)
	if err != nil {
		return DirectionChanged
	}
	av, err := parseSemver(available)
	if err != nil {
		return DirectionChanged
	}
	switch {
	case av.GreaterThan(iv):
		return DirectionUpgrade
	case av.LessThan(iv):
		return DirectionDowngrade
	default:
		return DirectionChanged
	}
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
