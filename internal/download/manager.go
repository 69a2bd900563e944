package download

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yeagerhaus/yhdl/internal/audio"
	"github.com/yeagerhaus/yhdl/internal/catalog"
	"github.com/yeagerhaus/yhdl/internal/config"
	httpx "github.com/yeagerhaus/yhdl/internal/http"
	"github.com/yeagerhaus/yhdl/internal/model"
	"github.com/yeagerhaus/yhdl/internal/resolver"
)

// TrackResult is the outcome of one track download within a release.
type TrackResult struct {
	Track model.Track
	Path  string
	Err   error
}

// Manager downloads resolved releases: folder creation, track streams,
// tagging, cover art and optional playlists.
//
// One track's failure never aborts the release; each track gets its own
// TrackResult. Release-level failures (track-list fetch, folder
// creation) return an error and leave the per-track accounting to the
// caller.
type Manager struct {
	client   catalog.Client
	http     *httpx.Client
	tagger   *audio.Tagger
	playlist *audio.PlaylistCreator
	cfg      config.Config
	logger   *log.Logger
}

// NewManager creates a Manager. The unlimited HTTP client here is for
// cover art; track audio comes through the catalog client's stream
// endpoint.
func NewManager(client catalog.Client, cfg config.Config, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		client:   client,
		http:     httpx.NewClient(),
		tagger:   audio.NewTagger(),
		playlist: audio.NewPlaylistCreator(true),
		cfg:      cfg,
		logger:   logger,
	}
}

// DownloadRelease fetches every track of a resolved release into its
// folder. The returned results are ordered by track number. An error
// return means nothing per-track happened: the folder could not be
// created or the track list could not be fetched.
func (m *Manager) DownloadRelease(ctx context.Context, rel model.ResolvedRelease) ([]TrackResult, error) {
	if err := os.MkdirAll(rel.FolderPath, 0755); err != nil {
		return nil, fmt.Errorf("create release folder: %w", err)
	}

	tracks, err := m.client.AlbumTracks(ctx, rel.Release.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch track list: %w", err)
	}

	artwork := m.fetchArtwork(ctx, rel)

	var (
		mu      sync.Mutex
		results = make([]TrackResult, 0, len(tracks))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.cfg.TrackConcurrency, 1))
	for _, track := range tracks {
		g.Go(func() error {
			path, err := m.downloadTrack(gctx, track, rel, artwork)
			mu.Lock()
			results = append(results, TrackResult{Track: track, Path: path, Err: err})
			mu.Unlock()
			// Track failures are carried in the result, not the group.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Track.Number < results[j].Track.Number
	})

	if m.cfg.CreatePlaylist {
		m.writePlaylist(rel, tracks, results)
	}

	return results, nil
}

// downloadTrack fetches one track stream to disk with retry, then tags
// the file. A track already on disk is a success without I/O.
func (m *Manager) downloadTrack(ctx context.Context, track model.Track, rel model.ResolvedRelease, artwork []byte) (string, error) {
	path := filepath.Join(rel.FolderPath, resolver.SanitizeFolderName(track.FileName()))

	if _, err := os.Stat(path); err == nil {
		m.logger.Debug("track already present", "path", path)
		return path, nil
	}

	var err error
	for attempt := 0; attempt < max(m.cfg.DownloadMaxRetries, 1); attempt++ {
		if attempt > 0 {
			m.logger.Warn("retrying track", "title", track.Title, "attempt", attempt)
			if werr := m.waitForRetry(ctx, attempt-1); werr != nil {
				return "", werr
			}
		}
		err = m.saveStream(ctx, track.ID, path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", err
	}

	if tagErr := m.tagger.Tag(path, track, rel, artwork); tagErr != nil {
		// The audio made it to disk; a tagging failure is not worth
		// re-downloading over.
		m.logger.Warn("tagging failed", "path", path, "err", tagErr)
	}

	m.logger.Debug("downloaded track", "path", path)
	return path, nil
}

func (m *Manager) saveStream(ctx context.Context, trackID int64, path string) error {
	stream, err := m.client.TrackStream(ctx, trackID)
	if err != nil {
		return err
	}
	defer stream.Close()

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, stream); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// fetchArtwork downloads and prepares cover art for the release.
// Artwork is best-effort: any failure logs and returns nil.
func (m *Manager) fetchArtwork(ctx context.Context, rel model.ResolvedRelease) []byte {
	if rel.Release.CoverURL == "" || (!m.cfg.EmbedCoverArt && !m.cfg.SaveCoverArt) {
		return nil
	}

	raw, err := m.http.Get(ctx, rel.Release.CoverURL)
	if err != nil {
		m.logger.Warn("cover art download failed", "release", rel.Release.Title, "err", err)
		return nil
	}

	art, err := resizeJPEG(raw, m.cfg.CoverArtMaxSize, m.cfg.CoverArtMaxSize)
	if err != nil {
		m.logger.Warn("cover art decode failed", "release", rel.Release.Title, "err", err)
		return nil
	}

	if m.cfg.SaveCoverArt {
		coverPath := filepath.Join(rel.FolderPath, "cover.jpg")
		if err := os.WriteFile(coverPath, art, 0644); err != nil {
			m.logger.Warn("saving cover art failed", "path", coverPath, "err", err)
		}
	}

	if !m.cfg.EmbedCoverArt {
		return nil
	}
	return art
}

func (m *Manager) writePlaylist(rel model.ResolvedRelease, tracks []model.Track, results []TrackResult) {
	fileNames := make([]string, len(tracks))
	for i, track := range tracks {
		fileNames[i] = resolver.SanitizeFolderName(track.FileName())
	}
	content := m.playlist.CreatePlaylist(rel, tracks, fileNames)

	path := filepath.Join(rel.FolderPath, resolver.SanitizeFolderName(rel.Release.Title)+".m3u")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		m.logger.Warn("writing playlist failed", "path", path, "err", err)
	}
}

// waitForRetry sleeps out the backoff for the given zero-based attempt:
// cooldown * exponent^attempt seconds.
func (m *Manager) waitForRetry(ctx context.Context, attempt int) error {
	cooldown := m.cfg.RetryCooldown * math.Pow(m.cfg.RetryExponent, float64(attempt))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}
