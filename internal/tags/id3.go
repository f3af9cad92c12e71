package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readID3v2 covers MP3 files whose ID3 frames dhowden/tag rejects, which
// happens with some UTF-16 encodings.
func readID3v2(path string) (*Track, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	text := func(id string) string {
		if tf, ok := id3tag.GetLastFrame(id).(id3v2.TextFrame); ok {
			return tf.Text
		}
		return ""
	}

	t := &Track{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: text("TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		// ID3v2.4 recording time, else the v2.3 year.
		Date: text("TDRC"),
	}
	if y := id3tag.Year(); t.Date == "" && len(y) >= 4 {
		t.Date = y[:4]
	}
	t.TrackNumber, _ = parseNumberPair(text("TRCK"))
	t.DiscNumber, _ = parseNumberPair(text("TPOS"))
	return t, nil
}

// id3Picture returns the front cover of an ID3v2 tag, else its first picture.
func id3Picture(path string) (data []byte, mimeType string) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Attached picture"}})
	if err != nil {
		return nil, ""
	}
	defer id3tag.Close()

	var chosen *id3v2.PictureFrame
	for _, f := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		switch {
		case !ok:
		case pic.PictureType == id3v2.PTFrontCover:
			return pic.Picture, pic.MimeType
		case chosen == nil:
			chosen = &pic
		}
	}
	if chosen == nil {
		return nil, ""
	}
	return chosen.Picture, chosen.MimeType
}
