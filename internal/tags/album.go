package tags

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// ErrNoTracks is returned when a directory holds no music files.
var ErrNoTracks = errors.New("no music files")

// Album is a directory of tracks sharing a cover.
type Album struct {
	Dir    string
	Title  string
	Artist string
	Year   int
	Tracks []Track
	Cover  Cover
}

// Duration is the total running time of the album.
func (a *Album) Duration() time.Duration {
	var d time.Duration
	for _, t := range a.Tracks {
		d += t.Duration
	}
	return d
}

// Size is the total size of the album's files in bytes.
func (a *Album) Size() int64 {
	var n int64
	for _, t := range a.Tracks {
		n += t.Size
	}
	return n
}

// LoadAlbum reads every music file directly inside dir, ordered by disc,
// track number, then file name. The album title and artist are the most
// common tag values, falling back to the directory name.
func LoadAlbum(dir string) (*Album, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tracks []Track
	for _, e := range entries {
		if e.IsDir() || !IsMusicFile(e.Name()) {
			continue
		}
		t, err := ReadTrack(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		tracks = append(tracks, *t)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoTracks)
	}

	slices.SortStableFunc(tracks, func(a, b Track) int {
		return cmp.Or(
			cmp.Compare(a.DiscNumber, b.DiscNumber),
			cmp.Compare(a.TrackNumber, b.TrackNumber),
			cmp.Compare(filepath.Base(a.Path), filepath.Base(b.Path)),
		)
	})

	album := &Album{
		Dir:    dir,
		Tracks: tracks,
		Title:  mostCommon(tracks, func(t Track) string { return t.Album }),
		Artist: mostCommon(tracks, func(t Track) string { return t.AlbumArtist }),
	}
	if album.Title == "" {
		album.Title = filepath.Base(filepath.Clean(dir))
	}
	for _, t := range tracks {
		album.Year = max(album.Year, t.Year())
	}

	paths := make([]string, len(tracks))
	for i, t := range tracks {
		paths[i] = t.Path
	}
	album.Cover, err = FindCover(dir, paths)
	if err != nil {
		return nil, fmt.Errorf("find cover: %w", err)
	}
	return album, nil
}

// mostCommon returns the most frequent non-empty value. On a tie the value
// that reached the count first wins.
func mostCommon(tracks []Track, field func(Track) string) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, t := range tracks {
		v := field(t)
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
