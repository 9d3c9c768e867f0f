package ai

import (
	"strconv"
	"strings"
)

// groqCompatSupported reports whether the configured Groq client library
// version is usable. Versions at or above 0.28, or any 1.x release, hit a
// known breaking change in a transitive dependency and are skipped.
func groqCompatSupported(version string) bool {
	if version == "" {
		return false
	}

	parts := strings.Split(version, ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minor := 0
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return false
		}
	}

	if major > 0 {
		return false
	}
	if minor >= 28 {
		return false
	}
	return true
}
