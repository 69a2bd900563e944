package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yeagerhaus/yhdl/internal/batch"
	"github.com/yeagerhaus/yhdl/internal/catalog"
	"github.com/yeagerhaus/yhdl/internal/config"
	"github.com/yeagerhaus/yhdl/internal/download"
	"github.com/yeagerhaus/yhdl/internal/errlog"
	"github.com/yeagerhaus/yhdl/internal/model"
	"github.com/yeagerhaus/yhdl/internal/resolver"
	"github.com/yeagerhaus/yhdl/internal/scanner"
	"github.com/yeagerhaus/yhdl/internal/state"
)

// ErrArtistNotFound marks an artist the provider's search could not
// resolve. It is recorded per artist, never aborting the batch.
var ErrArtistNotFound = errors.New("artist not found in catalog")

// Downloader fetches one resolved release to disk. Satisfied by
// download.Manager; tests substitute fakes.
type Downloader interface {
	DownloadRelease(ctx context.Context, rel model.ResolvedRelease) ([]download.TrackResult, error)
}

// Options wires an Orchestrator. Config, Client, Downloader and Store
// are required; the rest default sensibly.
type Options struct {
	Config     config.Config
	Client     catalog.Client
	Downloader Downloader
	Store      *state.Store
	Logger     *log.Logger

	// Observer receives progress events; nil means none.
	Observer Observer

	// Scan overrides the library scanner, for tests.
	Scan func(root string) ([]model.LibraryArtist, error)

	// ErrorLog receives failure entries; nil disables the log file.
	ErrorLog *errlog.Writer

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Orchestrator runs one end-to-end sync pass: authenticate, acquire the
// artist list, filter the ignore list, batch-check for new releases,
// download them, persist state and summarize.
type Orchestrator struct {
	cfg    config.Config
	client catalog.Client
	dl     Downloader
	store  *state.Store
	res    *resolver.Resolver
	scan   func(string) ([]model.LibraryArtist, error)
	errs   *errlog.Writer
	obs    Observer
	logger *log.Logger
	now    func() time.Time
}

// New creates an Orchestrator from Options.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		cfg:    opts.Config,
		client: opts.Client,
		dl:     opts.Downloader,
		store:  opts.Store,
		res:    resolver.New(opts.Config.MusicDir, opts.Config.VariousArtistsFolder),
		scan:   opts.Scan,
		errs:   opts.ErrorLog,
		obs:    opts.Observer,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if o.scan == nil {
		o.scan = scanner.Scan
	}
	if o.obs == nil {
		o.obs = NopObserver{}
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// RunOptions selects the shape of one sync pass.
type RunOptions struct {
	// Artist restricts the pass to a single named artist. Empty means
	// the whole library.
	Artist string

	// FullSync forces every artist to be checked, bypassing the
	// check-interval skip and the library scan cache.
	FullSync bool

	// DryRun identifies and reports new releases without creating
	// folders or transferring bytes.
	DryRun bool
}

// checkResult is one artist's outcome from the batch phase. The artist
// identity travels in the result because batch results arrive in
// completion order, not input order.
type checkResult struct {
	artist      model.LibraryArtist
	artistID    int64
	skipped     bool
	newReleases []model.ResolvedRelease
	err         error
}

// Run executes one sync pass and always returns a summary once past
// authentication, even if every artist failed. The returned error is
// non-nil only for the fatal cases: authentication, acquiring the
// artist list, and persisting state (the summary accompanies a persist
// failure so the caller can still report the work done).
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	start := o.now()

	// Authenticate first; nothing is attempted without a session.
	session, err := o.client.Login(ctx, o.cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	o.logger.Info("authenticated", "user", session.Name, "country", session.Country)

	artists, err := o.artistList(opts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalArtists: len(artists)}

	// Ignored artists are excluded before scheduling and counted apart
	// from interval-skipped ones: two distinct reasons, reported
	// distinctly.
	candidates := make([]model.LibraryArtist, 0, len(artists))
	for _, a := range artists {
		if o.store.IsArtistIgnored(a.Name) {
			o.logger.Debug("artist ignored", "name", a.Name)
			summary.IgnoredArtists++
			continue
		}
		candidates = append(candidates, a)
	}

	results := batch.Run(ctx, candidates, o.cfg.Concurrency, func(ctx context.Context, a model.LibraryArtist) checkResult {
		return o.checkArtist(ctx, a, opts.FullSync)
	})

	var logEntries []errlog.Entry
	for _, r := range results {
		switch {
		case r.err != nil:
			summary.CheckedArtists++
			summary.Errors = append(summary.Errors, ArtistError{Artist: r.artist.Name, Err: r.err})
			entry := errlog.NewEntry(errlog.TypeArtistCheck, r.artist.Name, r.err)
			entry.ArtistID = r.artistID
			logEntries = append(logEntries, entry)
			o.logger.Warn("artist check failed", "name", r.artist.Name, "err", r.err)
		case r.skipped:
			summary.SkippedArtists++
		default:
			summary.CheckedArtists++
			summary.NewReleases += len(r.newReleases)
		}
	}

	for _, r := range results {
		if r.err != nil || r.skipped {
			continue
		}

		for _, rel := range r.newReleases {
			logEntries = append(logEntries, o.fetchRelease(ctx, rel, opts.DryRun, summary)...)
		}

		// Downloads changed the artist's folder listing; re-list so the
		// cached snapshot keeps matching the disk and the next pass does
		// not re-report what this one fetched.
		if len(r.newReleases) > 0 && !opts.DryRun {
			if names, lerr := o.res.ExistingReleases(r.artist.Path); lerr == nil && names != nil {
				o.store.CacheArtistReleases(r.artistID, r.artist.Name, names)
			}
		}

		o.store.UpdateArtistCheck(r.artistID, r.artist.Name, latestReleaseDate(r.newReleases))
	}

	if opts.Artist == "" {
		o.store.SetLastFullSync(o.now())
	}

	if o.errs != nil && len(logEntries) > 0 {
		if err := o.errs.Append(logEntries...); err != nil {
			o.logger.Warn("writing error log failed", "err", err)
		}
	}

	summary.Duration = o.now().Sub(start)

	if err := o.store.Save(); err != nil {
		// Fatal for the run, but the work already happened: hand the
		// summary back alongside the error.
		return summary, fmt.Errorf("persist sync state: %w", err)
	}

	return summary, nil
}

// artistList acquires the artists for the pass: the single named one,
// a valid cached scan, or a fresh traversal that refreshes the cache.
func (o *Orchestrator) artistList(opts RunOptions) ([]model.LibraryArtist, error) {
	if opts.Artist != "" {
		return []model.LibraryArtist{{
			Name: opts.Artist,
			Path: o.res.ArtistFolder(opts.Artist),
		}}, nil
	}

	root := o.cfg.MusicDir
	if !opts.FullSync {
		if cached := o.store.CachedLibraryScan(root, o.cfg.LibraryCacheTTL()); cached != nil {
			o.obs.ScanFinished(len(cached), true)
			o.logger.Debug("reusing cached library scan", "artists", len(cached))
			return cached, nil
		}
	}

	o.obs.ScanStarted(root)
	artists, err := o.scan(root)
	if err != nil {
		return nil, fmt.Errorf("scan library %s: %w", root, err)
	}
	o.store.CacheLibraryScan(root, artists)
	o.obs.ScanFinished(len(artists), false)
	return artists, nil
}

// checkArtist is the per-artist worker: resolve the provider ID, apply
// the skip policy, fetch the discography and resolve it against the
// local library. Failures land in the result; they never escape the
// worker.
func (o *Orchestrator) checkArtist(ctx context.Context, a model.LibraryArtist, force bool) checkResult {
	res := checkResult{artist: a}
	o.obs.ArtistChecking(a.Name)

	ref, found, err := catalog.ResolveArtistID(ctx, o.client, a.Name)
	if err != nil {
		res.err = fmt.Errorf("search: %w", err)
		return res
	}
	if !found {
		res.err = fmt.Errorf("%w: %q", ErrArtistNotFound, a.Name)
		return res
	}
	res.artistID = ref.ID

	if !force && o.store.ShouldSkipArtist(ref.ID, o.cfg.CheckInterval()) {
		o.obs.ArtistSkipped(a.Name)
		res.skipped = true
		return res
	}

	releases, err := o.client.Discography(ctx, ref.ID)
	if err != nil {
		res.err = fmt.Errorf("discography: %w", err)
		return res
	}

	// One directory listing per artist beats one stat per release, and
	// the snapshot feeds the next pass's fast path too.
	cached := o.store.CachedArtistReleases(ref.ID)
	if cached == nil {
		if names, lerr := o.res.ExistingReleases(a.Path); lerr == nil && names != nil {
			o.store.CacheArtistReleases(ref.ID, a.Name, names)
			cached = names
		}
	}

	for _, rel := range o.res.ResolveArtistReleases(a.Name, ref.ID, releases, cached) {
		if rel.Exists {
			continue
		}
		o.obs.ReleaseFound(rel)
		res.newReleases = append(res.newReleases, rel)
	}
	return res
}

// fetchRelease downloads one new release (or synthesizes results in dry
// run), updates the summary and returns error-log entries for whatever
// failed. A release-level failure becomes synthetic per-track failures
// so the summary totals stay consistent, and the remaining releases
// continue.
func (o *Orchestrator) fetchRelease(ctx context.Context, rel model.ResolvedRelease, dryRun bool, summary *Summary) []errlog.Entry {
	if dryRun {
		summary.DownloadedTracks += rel.Release.TrackCount
		summary.Downloaded = append(summary.Downloaded, downloadedRelease(rel, rel.Release.TrackCount))
		o.obs.ReleaseDownloaded(rel, rel.Release.TrackCount, 0)
		return nil
	}

	results, err := o.dl.DownloadRelease(ctx, rel)
	if err != nil {
		summary.FailedTracks += rel.Release.TrackCount
		o.obs.ReleaseDownloaded(rel, 0, rel.Release.TrackCount)
		o.logger.Warn("release download failed", "artist", rel.ArtistName, "release", rel.Release.Title, "err", err)

		entry := errlog.NewEntry(errlog.TypeReleaseDownload, rel.ArtistName, err)
		entry.ArtistID = rel.ArtistID
		entry.Release = rel.Release.Title
		entry.ReleaseID = rel.Release.ID
		return []errlog.Entry{entry}
	}

	var entries []errlog.Entry
	downloaded, failed := 0, 0
	for _, tr := range results {
		if tr.Err != nil {
			failed++
			entry := errlog.NewEntry(errlog.TypeTrackDownload, rel.ArtistName, tr.Err)
			entry.ArtistID = rel.ArtistID
			entry.Release = rel.Release.Title
			entry.ReleaseID = rel.Release.ID
			entries = append(entries, entry)
			continue
		}
		downloaded++
	}

	summary.DownloadedTracks += downloaded
	summary.FailedTracks += failed
	summary.Downloaded = append(summary.Downloaded, downloadedRelease(rel, downloaded))
	o.obs.ReleaseDownloaded(rel, downloaded, failed)
	o.logger.Info("release downloaded", "artist", rel.ArtistName, "release", rel.Release.Title, "tracks", downloaded, "failed", failed)
	return entries
}

func downloadedRelease(rel model.ResolvedRelease, tracks int) DownloadedRelease {
	return DownloadedRelease{
		Artist:      rel.ArtistName,
		Release:     rel.Release.Title,
		ReleaseID:   rel.Release.ID,
		ReleaseDate: rel.Release.ReleaseDate,
		Tracks:      tracks,
		ReleaseType: rel.ReleaseType,
	}
}

// latestReleaseDate returns the newest known date among the releases,
// empty when none carry one. ISO dates compare lexically.
func latestReleaseDate(releases []model.ResolvedRelease) string {
	latest := ""
	for _, rel := range releases {
		if rel.Release.ReleaseDate > latest {
			latest = rel.Release.ReleaseDate
		}
	}
	return latest
}
