package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every knob the sync engine and its collaborators take.
//
// There is no ambient global: callers construct a Config (usually via
// Default + Load + ApplyEnv) and pass it by value into the orchestrator.
type Config struct {
	// MusicDir is the library root releases are organized under.
	MusicDir string `toml:"music_dir"`

	// Token is the stored provider credential exchanged for a session.
	Token string `toml:"token"`

	// APIBaseURL is the catalog gateway base URL.
	APIBaseURL string `toml:"api_base_url"`

	// CheckIntervalHours is the minimum time between re-checking the
	// same artist for new releases.
	CheckIntervalHours int `toml:"check_interval_hours"`

	// LibraryCacheTTLHours bounds the age of a reusable library scan.
	LibraryCacheTTLHours int `toml:"library_cache_ttl_hours"`

	// Concurrency caps parallel artist checks.
	Concurrency int `toml:"concurrency"`

	// TrackConcurrency caps parallel track downloads within a release.
	TrackConcurrency int `toml:"track_concurrency"`

	// RequestsPerSecond rate-limits catalog API calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// DownloadMaxRetries, RetryCooldown and RetryExponent shape the
	// per-track retry backoff: cooldown * exponent^attempt seconds.
	DownloadMaxRetries int     `toml:"download_max_retries"`
	RetryCooldown      float64 `toml:"retry_cooldown"`
	RetryExponent      float64 `toml:"retry_exponent"`

	// VariousArtistsFolder redirects compilations under a shared
	// folder; empty keeps them under their artist.
	VariousArtistsFolder string `toml:"various_artists_folder"`

	// EmbedCoverArt embeds the (resized) cover into each track's tags.
	EmbedCoverArt bool `toml:"embed_cover_art"`

	// SaveCoverArt writes cover.jpg into each release folder.
	SaveCoverArt bool `toml:"save_cover_art"`

	// CoverArtMaxSize bounds embedded cover art dimensions in pixels.
	CoverArtMaxSize int `toml:"cover_art_max_size"`

	// CreatePlaylist writes an M3U playlist into each release folder.
	CreatePlaylist bool `toml:"create_playlist"`

	// StateFile and ErrorLogFile override the default locations under
	// <music_dir>/.yhdl/.
	StateFile    string `toml:"state_file"`
	ErrorLogFile string `toml:"error_log_file"`
}

// Default returns the baseline configuration a partial file or the
// environment overlays.
func Default() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		MusicDir:             filepath.Join(homeDir, "Music"),
		APIBaseURL:           "http://127.0.0.1:8090/api/v1",
		CheckIntervalHours:   24,
		LibraryCacheTTLHours: 24,
		Concurrency:          5,
		TrackConcurrency:     3,
		RequestsPerSecond:    4,
		DownloadMaxRetries:   3,
		RetryCooldown:        0.5,
		RetryExponent:        3,
		VariousArtistsFolder: "Various Artists",
		EmbedCoverArt:        true,
		SaveCoverArt:         false,
		CoverArtMaxSize:      1000,
	}
}

// Load reads a TOML config file over the defaults. Absent fields keep
// their default values; a missing file is an error so a mistyped path
// doesn't silently run on defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays YHDL_* environment variables for CLI use. File and
// default values lose to the environment, matching the usual precedence
// of containerized deployments.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("YHDL_MUSIC_DIR"); v != "" {
		c.MusicDir = v
	}
	if v := os.Getenv("YHDL_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("YHDL_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("YHDL_CHECK_INTERVAL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CheckIntervalHours = n
		}
	}
	if v := os.Getenv("YHDL_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	return c
}

// CheckInterval returns the artist check interval as a duration.
func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalHours) * time.Hour
}

// LibraryCacheTTL returns the scan cache TTL as a duration.
func (c Config) LibraryCacheTTL() time.Duration {
	return time.Duration(c.LibraryCacheTTLHours) * time.Hour
}

// StatePath returns the state file location, defaulting to the dotfile
// directory under the music root.
func (c Config) StatePath() string {
	if c.StateFile != "" {
		return c.StateFile
	}
	return filepath.Join(c.MusicDir, ".yhdl", "state.json")
}

// ErrorLogPath returns the error log location, defaulting to the
// dotfile directory under the music root.
func (c Config) ErrorLogPath() string {
	if c.ErrorLogFile != "" {
		return c.ErrorLogFile
	}
	return filepath.Join(c.MusicDir, ".yhdl", "errors.json")
}

// WriteExample writes a fully commented example config to path,
// refusing to overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(exampleConfig), 0644)
}

const exampleConfig = `# yhdl configuration

# Library root. Artist folders live directly under it.
music_dir = "~/Music"

# Provider credential. Can also be set via YHDL_TOKEN.
token = ""

# Catalog gateway endpoint.
api_base_url = "http://127.0.0.1:8090/api/v1"

# Minimum hours between re-checking the same artist.
check_interval_hours = 24

# Hours a library scan stays reusable before a fresh traversal.
library_cache_ttl_hours = 24

# Parallel artist checks per sync pass.
concurrency = 5

# Parallel track downloads within one release.
track_concurrency = 3

# Catalog API request budget.
requests_per_second = 4.0

# Per-track retry backoff: retry_cooldown * retry_exponent^attempt seconds.
download_max_retries = 3
retry_cooldown = 0.5
retry_exponent = 3.0

# Compilations are filed under this shared folder. Empty disables it.
various_artists_folder = "Various Artists"

embed_cover_art = true
save_cover_art = false
cover_art_max_size = 1000
create_playlist = false
`
