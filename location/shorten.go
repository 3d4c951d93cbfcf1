package location

import "strings"

// Shorten returns the substring of path after the last occurrence of
// the platform path separator, or path unchanged when no separator is
// present. The separator is fixed at build time (backslash on Windows
// builds, forward slash otherwise), matching the form of the
// compiler-provided file paths this package receives.
func Shorten(path string) string {
	if i := strings.LastIndexByte(path, pathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}
