package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// ReadTrack reads tags and stream properties of a music file. A file whose
// tags cannot be parsed still yields a track titled after its file name;
// only a missing or unreadable file is an error.
func ReadTrack(path string) (*Track, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := readTags(path)
	if err != nil {
		t = &Track{Path: path}
	}
	if t.Title == "" {
		t.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	t.Size = fi.Size()

	if info, err := ReadAudioInfo(path); err == nil {
		t.Duration = info.Duration
		t.Format = info.Format
	}
	return t, nil
}

func readTags(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if ft, ok := formatOf(path); ok && ft.fallback != nil {
			return ft.fallback(path)
		}
		return nil, err
	}

	t := &Track{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
	}
	if y := m.Year(); y > 0 {
		t.Date = strconv.Itoa(y)
	}
	t.TrackNumber, _ = m.Track()
	t.DiscNumber, _ = m.Disc()
	return t, nil
}

// taglibTags is the property map returned by TagLib.
type taglibTags map[string][]string

// get returns the first value of the first key present.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if v := t[key]; len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (t taglibTags) number(key string) int {
	n, _ := parseNumberPair(t.get(key))
	return n
}

func readTaglib(path string) (*Track, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	p := taglibTags(raw)
	return &Track{
		Path:        path,
		Title:       p.get(taglib.Title),
		Artist:      p.get(taglib.Artist),
		AlbumArtist: p.get(taglib.AlbumArtist),
		Album:       p.get(taglib.Album),
		Genre:       p.get(taglib.Genre),
		Date:        p.get(taglib.Date, taglib.OriginalDate),
		TrackNumber: p.number(taglib.TrackNumber),
		DiscNumber:  p.number(taglib.DiscNumber),
	}, nil
}
