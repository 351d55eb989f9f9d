package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version is a parsed Minecraft version such as "1.21.1" or "26.1-snapshot-1".
// Snapshot suffixes are ignored.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less orders versions by major, then minor, then patch.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// ParseVersion parses a version string like "1.21.1" or "26.1-snapshot-1".
func ParseVersion(version string) (Version, error) {
	// Remove snapshot suffix if present
	base, _, _ := strings.Cut(version, "-")

	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("invalid version format: %s", version)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %s", parts[0])
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %s", parts[1])
	}
	patch := 0
	if len(parts) >= 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil {
			return Version{}, fmt.Errorf("invalid patch version: %s", parts[2])
		}
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// LatestVersion returns the name of the newest version directory directly
// under dataRoot, e.g. "1.21.5" for data/{1.21.1,1.21.5}. Entries that do
// not parse as versions are skipped.
func LatestVersion(dataRoot string) (string, error) {
	entries, err := os.ReadDir(dataRoot)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dataRoot, err)
	}

	var (
		best     string
		bestVers Version
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := ParseVersion(e.Name())
		if err != nil {
			continue
		}
		if best == "" || bestVers.Less(v) {
			best, bestVers = e.Name(), v
		}
	}
	if best == "" {
		return "", fmt.Errorf("%s: no version directories", dataRoot)
	}
	return best, nil
}
