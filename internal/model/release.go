package model

// ReleaseType classifies a release for folder naming and tag metadata.
//
// The classification is derived from track count and the provider-reported
// record type via ClassifyReleaseType. It is never persisted on its own,
// only as part of a resolved release or a cached folder name.
type ReleaseType string

const (
	// ReleaseTypeAlbum is a full-length release (7 or more tracks).
	ReleaseTypeAlbum ReleaseType = "Album"

	// ReleaseTypeEP is an extended play (3 to 6 tracks).
	ReleaseTypeEP ReleaseType = "EP"

	// ReleaseTypeSingle is a single (1 or 2 tracks, or provider-flagged).
	ReleaseTypeSingle ReleaseType = "Single"
)

// Provider-reported record types, as returned by the catalog API.
const (
	RecordTypeAlbum       = "album"
	RecordTypeEP          = "ep"
	RecordTypeSingle      = "single"
	RecordTypeCompilation = "compilation"
)

// Release is a single catalog entry from an artist's discography.
//
// A Release is immutable once fetched from the provider within a sync
// pass. ReleaseDate is the provider's date string in "2006-01-02" form,
// empty when the provider does not report one.
type Release struct {
	// ID is the provider's catalog identifier for this release.
	ID int64

	// Title is the release title as reported by the provider.
	Title string

	// ReleaseDate is the release date in "2006-01-02" form, or empty.
	ReleaseDate string

	// TrackCount is the number of tracks the provider reports.
	TrackCount int

	// RecordType is the provider-reported type: "album", "ep",
	// "single" or "compilation". Track count remains the authoritative
	// tie-break for classification; see ClassifyReleaseType.
	RecordType string

	// CoverURL is the cover art URL, empty if none is available.
	CoverURL string
}

// IsCompilation reports whether the provider flagged this release as a
// compilation, which redirects it under the Various Artists folder.
func (r Release) IsCompilation() bool {
	return r.RecordType == RecordTypeCompilation
}

// ClassifyReleaseType derives the release type from track count and the
// provider-reported record type.
//
// The provider type is consulted first for singles, but track count is
// the authoritative tie-break: providers mislabel borderline releases
// inconsistently, and count-based classification gives reproducible
// results independent of provider metadata quality.
//
// Boundaries:
//   - "single" record type, or 1-2 tracks: Single
//   - 3-6 tracks: EP
//   - 7 or more tracks: Album
func ClassifyReleaseType(trackCount int, recordType string) ReleaseType {
	if recordType == RecordTypeSingle || trackCount <= 2 {
		return ReleaseTypeSingle
	}
	if trackCount <= 6 {
		return ReleaseTypeEP
	}
	return ReleaseTypeAlbum
}

// ResolvedRelease is a Release mapped onto the local folder taxonomy.
//
// A ResolvedRelease is created fresh on every resolution call and never
// mutated after construction; it is owned exclusively by the caller that
// requested the resolution.
type ResolvedRelease struct {
	// Release is the catalog entry this resolution was derived from.
	Release Release

	// ArtistName is the artist the release was resolved for.
	ArtistName string

	// ArtistID is the provider's artist identifier.
	ArtistID int64

	// FolderPath is the absolute on-disk folder for this release.
	FolderPath string

	// ReleaseType is the classification derived from the release.
	ReleaseType ReleaseType

	// Exists reports whether the release folder is already present
	// locally at resolution time.
	Exists bool
}
