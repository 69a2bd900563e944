package audio

import (
	"fmt"
	"strings"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// PlaylistCreator generates an M3U playlist per downloaded release.
//
// Track paths in the playlist are relative (just the file name), since
// the playlist sits in the release folder next to the tracks.
type PlaylistCreator struct {
	// extended includes #EXTINF lines with duration and display title.
	extended bool
}

// NewPlaylistCreator creates a PlaylistCreator. extended enables
// #EXTINF metadata lines.
func NewPlaylistCreator(extended bool) *PlaylistCreator {
	return &PlaylistCreator{extended: extended}
}

// CreatePlaylist renders the playlist content for a release's tracks,
// ready to be written next to them. fileNames must be parallel to
// tracks and hold the sanitized on-disk names.
func (p *PlaylistCreator) CreatePlaylist(rel model.ResolvedRelease, tracks []model.Track, fileNames []string) string {
	var b strings.Builder
	if p.extended {
		b.WriteString("#EXTM3U\n")
	}
	for i, track := range tracks {
		if p.extended {
			fmt.Fprintf(&b, "#EXTINF:%d,%s - %s\n", track.Duration, trackArtist(track, rel), track.Title)
		}
		b.WriteString(fileNames[i])
		b.WriteByte('\n')
	}
	return b.String()
}
