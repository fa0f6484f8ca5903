package skills

import (
	"github.com/Masterminds/semver/v3"
)

// IsSemVer reports whether version is exactly MAJOR.MINOR.PATCH with
// non-negative integers and no leading "v", pre-release, or build metadata.
func IsSemVer(version string) bool {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return false
	}
	return v.Prerelease() == "" && v.Metadata() == ""
}

// IsNewer reports whether candidate is a higher version than installed.
// An unparseable candidate is never newer; any parseable candidate is newer
// than an unparseable or empty installed version.
func IsNewer(candidate, installed string) bool {
	c, err := semver.NewVersion(candidate)
	if err != nil {
		return false
	}
	i, err := semver.NewVersion(installed)
	if err != nil {
		return true
	}
	return c.GreaterThan(i)
}
