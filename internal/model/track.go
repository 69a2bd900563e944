package model

import "fmt"

// Track is a single track within a release, as reported by the catalog
// provider's album-tracks endpoint.
type Track struct {
	// ID is the provider's track identifier, used to fetch the stream.
	ID int64

	// Number is the track number (1-indexed).
	Number int

	// Title is the track title.
	Title string

	// Artist is the track artist. May differ from the release artist on
	// compilations and features.
	Artist string

	// Duration is the track length in seconds.
	Duration int
}

// FileName returns the local file name for the track, "NN Title.mp3"
// with a zero-padded track number. The title is not sanitized here;
// callers pass the result through the resolver's name sanitizer.
func (t Track) FileName() string {
	return fmt.Sprintf("%02d %s.mp3", t.Number, t.Title)
}
