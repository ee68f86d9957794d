package updater

import (
	"fmt"
	"strconv"
	"strings"
)

type semver struct {
	major, minor, patch int
}

// parseSemver parses "1.2.3" or "v1.2.3".
func parseSemver(s string) (semver, error) {
	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return semver{}, fmt.Errorf("invalid semver: %q", s)
	}

	var v semver
	var err error
	if v.major, err = strconv.Atoi(parts[0]); err != nil {
		return semver{}, fmt.Errorf("invalid major version: %w", err)
	}
	if v.minor, err = strconv.Atoi(parts[1]); err != nil {
		return semver{}, fmt.Errorf("invalid minor version: %w", err)
	}
	if v.patch, err = strconv.Atoi(parts[2]); err != nil {
		return semver{}, fmt.Errorf("invalid patch version: %w", err)
	}
	return v, nil
}

func (v semver) lessThan(other semver) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}
