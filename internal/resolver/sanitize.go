package resolver

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid on Windows plus control characters; POSIX only
	// forbids the slash and NUL, so this set is portable to both.
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// SanitizeFolderName removes or replaces characters that are invalid in
// folder names, producing a name valid on both POSIX and Windows
// filesystems.
//
// Transformations, in order:
//   - Invalid characters (<>:"/\|?* and control chars) become underscore
//   - Multiple whitespace collapses to a single space
//   - Trailing dots and spaces are removed (Windows limitation)
//
// Example:
//
//	SanitizeFolderName("OK Computer: OKNOTOK") // "OK Computer_ OKNOTOK"
//	SanitizeFolderName("Untitled...")          // "Untitled"
func SanitizeFolderName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = multiSpace.ReplaceAllString(name, " ")
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimRight(name, " .")
	return name
}
