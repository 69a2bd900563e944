package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// ErrAuthFailed is returned when the provider rejects the stored
// credential. The orchestrator treats it as fatal: no artist-level work
// is attempted without a valid session.
var ErrAuthFailed = errors.New("catalog authentication failed")

// Session identifies an authenticated catalog session.
type Session struct {
	// UserID is the provider's identifier for the session user.
	UserID int64

	// Name is the session user's display name.
	Name string

	// Country is the account country, which gates catalog availability.
	Country string
}

// Client is the catalog provider surface the sync engine needs.
//
// Expected conditions are data, not errors: an artist nobody has heard
// of is an empty SearchArtist result, not a failure. Errors are reserved
// for transport problems, malformed responses and rejected credentials.
type Client interface {
	// Login exchanges the stored credential for a session. A rejected
	// credential returns ErrAuthFailed.
	Login(ctx context.Context, token string) (Session, error)

	// SearchArtist searches artists by name. An empty result means no
	// match, not an error.
	SearchArtist(ctx context.Context, name string) ([]model.ArtistRef, error)

	// Discography returns every release in the artist's catalog.
	Discography(ctx context.Context, artistID int64) ([]model.Release, error)

	// AlbumTracks returns the track list of one release.
	AlbumTracks(ctx context.Context, albumID int64) ([]model.Track, error)

	// TrackStream opens the decoded audio stream for a track. The
	// caller must Close it.
	TrackStream(ctx context.Context, trackID int64) (io.ReadCloser, error)
}

// ResolveArtistID picks the provider artist for a library artist name.
//
// The policy is deliberately simple and lives here so it is explicit and
// testable: a result whose normalized name equals the normalized query
// wins; otherwise the first search result does. First-result fallback
// can resolve to the wrong same-named artist; that trade-off is
// accepted, and no popularity disambiguation is attempted.
//
// The boolean is false when the search returned nothing.
func ResolveArtistID(ctx context.Context, c Client, name string) (model.ArtistRef, bool, error) {
	refs, err := c.SearchArtist(ctx, name)
	if err != nil {
		return model.ArtistRef{}, false, err
	}
	if len(refs) == 0 {
		return model.ArtistRef{}, false, nil
	}

	want := model.NormalizeName(name)
	for _, ref := range refs {
		if model.NormalizeName(ref.Name) == want {
			return ref, true, nil
		}
	}
	return refs[0], true, nil
}
