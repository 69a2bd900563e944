package catalog

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/charmbracelet/log"

	httpx "github.com/yeagerhaus/yhdl/internal/http"
	"github.com/yeagerhaus/yhdl/internal/model"
)

// Gateway is the HTTP implementation of Client against the provider's
// JSON gateway API. Catalog requests are rate limited; the audio stream
// endpoint shares the same limiter since it is served by the gateway,
// not a CDN.
type Gateway struct {
	http   *httpx.Client
	base   string
	logger *log.Logger
}

// NewGateway creates a Gateway for the API at baseURL, with catalog
// requests capped at requestsPerSecond.
func NewGateway(baseURL string, requestsPerSecond float64, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{
		http:   httpx.NewClient(httpx.WithRateLimit(requestsPerSecond)),
		base:   baseURL,
		logger: logger,
	}
}

// Login implements Client. The provider's crypto handshake happens
// behind the gateway; from here a login is one POST exchanging the
// stored token for a session.
func (g *Gateway) Login(ctx context.Context, token string) (Session, error) {
	var resp loginResponse
	err := g.http.PostJSON(ctx, g.base+"/auth/login", loginRequest{Token: token}, &resp)
	if err != nil {
		return Session{}, fmt.Errorf("login: %w", err)
	}
	if !resp.Success {
		return Session{}, ErrAuthFailed
	}

	g.logger.Debug("logged in", "user", resp.User.Name, "country", resp.User.Country)
	return Session{UserID: resp.User.ID, Name: resp.User.Name, Country: resp.User.Country}, nil
}

// SearchArtist implements Client.
func (g *Gateway) SearchArtist(ctx context.Context, name string) ([]model.ArtistRef, error) {
	u := fmt.Sprintf("%s/search/artist?q=%s", g.base, url.QueryEscape(name))

	var resp searchResponse
	if err := g.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("search artist %q: %w", name, err)
	}

	refs := make([]model.ArtistRef, 0, len(resp.Data))
	for _, d := range resp.Data {
		refs = append(refs, model.ArtistRef{ID: d.ID, Name: d.Name})
	}
	return refs, nil
}

// Discography implements Client.
func (g *Gateway) Discography(ctx context.Context, artistID int64) ([]model.Release, error) {
	u := fmt.Sprintf("%s/artist/%d/albums", g.base, artistID)

	var resp discographyResponse
	if err := g.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("discography of artist %d: %w", artistID, err)
	}

	releases := make([]model.Release, 0, len(resp.Data))
	for _, d := range resp.Data {
		releases = append(releases, model.Release{
			ID:          d.ID,
			Title:       d.Title,
			ReleaseDate: d.ReleaseDate,
			TrackCount:  d.NbTracks,
			RecordType:  d.RecordType,
			CoverURL:    d.CoverURL,
		})
	}
	return releases, nil
}

// AlbumTracks implements Client.
func (g *Gateway) AlbumTracks(ctx context.Context, albumID int64) ([]model.Track, error) {
	u := fmt.Sprintf("%s/album/%d/tracks", g.base, albumID)

	var resp tracksResponse
	if err := g.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("tracks of album %d: %w", albumID, err)
	}

	tracks := make([]model.Track, 0, len(resp.Data))
	for _, d := range resp.Data {
		tracks = append(tracks, model.Track{
			ID:       d.ID,
			Number:   d.Position,
			Title:    d.Title,
			Artist:   d.Artist,
			Duration: d.Duration,
		})
	}
	return tracks, nil
}

// TrackStream implements Client.
func (g *Gateway) TrackStream(ctx context.Context, trackID int64) (io.ReadCloser, error) {
	u := fmt.Sprintf("%s/track/%d/stream", g.base, trackID)
	rc, err := g.http.Stream(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("stream track %d: %w", trackID, err)
	}
	return rc, nil
}
