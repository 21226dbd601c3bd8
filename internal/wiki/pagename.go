package wiki

import (
	"regexp"
	"strings"
)

// PageExtension is the canonical extension of wiki page files.
const PageExtension = ".md"

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	allowedChars    = regexp.MustCompile(`[A-Za-z0-9_-]`)
)

// NormalizePageName maps a human-supplied page title to its canonical
// file name: every maximal run of whitespace becomes a single hyphen,
// every remaining character outside [A-Za-z0-9_-] is dropped, and the
// canonical markdown extension is appended.
//
// The function is total over all string inputs and idempotent: feeding
// a normalized file name back in yields the same file name. An empty
// title, or one consisting entirely of disallowed characters, maps to
// the bare extension. The mapping is not injective - titles differing
// only in disallowed characters collide, and the later write wins.
//
// Examples:
//
//	NormalizePageName("Architettura del Sistema") == "Architettura-del-Sistema.md"
//	NormalizePageName("API Documentation!!") == "API-Documentation.md"
func NormalizePageName(title string) string {
	// Strip the extension up front so normalizing an already-normalized
	// name is a no-op ("." is not a permitted character).
	base := strings.TrimSuffix(title, PageExtension)

	// A title with no permitted characters at all maps to the bare
	// extension; without this guard its whitespace runs would survive
	// as hyphens.
	if !allowedChars.MatchString(base) {
		return PageExtension
	}

	name := whitespaceRuns.ReplaceAllString(base, "-")
	name = disallowedChars.ReplaceAllString(name, "")

	return name + PageExtension
}

// PageTitle returns the title form of a page file name, i.e. the file
// name with the canonical extension stripped. It is the inverse of the
// extension step of NormalizePageName and is used for list results.
func PageTitle(fileName string) string {
	return strings.TrimSuffix(fileName, PageExtension)
}
