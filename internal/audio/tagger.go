package audio

import (
	"fmt"
	"os"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/yeagerhaus/yhdl/internal/model"
)

// Tagger writes ID3 tags to downloaded MP3 files: title, artist, album
// artist, album, track number, release date and an embedded front cover
// when artwork is supplied. The release type goes into a user-defined
// RELEASETYPE frame so library managers can distinguish albums, EPs and
// singles.
type Tagger struct{}

// NewTagger creates a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag writes the track's metadata to the MP3 at path. artwork is
// JPEG-encoded cover art, nil to skip embedding.
func (t *Tagger) Tag(path string, track model.Track, rel model.ResolvedRelease, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		tag = id3v2.NewEmptyTag()
	}
	defer tag.Close()

	tag.SetTitle(track.Title)
	tag.SetAlbum(rel.Release.Title)
	tag.SetArtist(trackArtist(track, rel))
	tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, rel.ArtistName)
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d/%d", track.Number, rel.Release.TrackCount))

	if date := rel.Release.ReleaseDate; date != "" {
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, date)
		if year, _, _ := strings.Cut(date, "-"); len(year) == 4 {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, year)
		}
	}

	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: "RELEASETYPE",
		Value:       string(rel.ReleaseType),
	})

	if artwork != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return tag.Save()
}

// trackArtist prefers the per-track artist, which differs from the
// release artist on compilations and features.
func trackArtist(track model.Track, rel model.ResolvedRelease) string {
	if track.Artist != "" {
		return track.Artist
	}
	return rel.ArtistName
}
