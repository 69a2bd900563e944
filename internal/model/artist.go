package model

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ArtistRef is a provider artist search result.
type ArtistRef struct {
	// ID is the provider's artist identifier.
	ID int64

	// Name is the artist name as reported by the provider.
	Name string
}

// LibraryArtist is one artist folder found in the local library.
type LibraryArtist struct {
	// Name is the folder name, taken as the artist name.
	Name string `json:"name"`

	// Path is the absolute path of the artist folder.
	Path string `json:"path"`
}

var (
	nonWordChars = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace   = regexp.MustCompile(`\s+`)

	// stripMarks removes combining marks after NFD decomposition, so
	// that accented names fold to their ASCII base ("Beyoncé" matches
	// "beyonce").
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeName reduces an artist name to a canonical comparison key:
// diacritics folded, lowercased, punctuation stripped and whitespace
// collapsed. Trivial naming variants of the same artist normalize to
// the same key, which is what the ignore list and artist matching
// compare on.
//
// Example:
//
//	NormalizeName("Beyoncé")   // "beyonce"
//	NormalizeName("A$AP Rocky") // "aap rocky"
func NormalizeName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	folded = nonWordChars.ReplaceAllString(folded, "")
	folded = multiSpace.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}
