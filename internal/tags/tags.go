// Package tags reads album metadata and cover art from music files.
// MP3, FLAC, Opus/Ogg and M4A files are supported.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Track is one music file of an album.
type Track struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string // YYYY-MM-DD or YYYY

	TrackNumber int
	DiscNumber  int

	Duration time.Duration
	Format   string // MP3, FLAC, OPUS, AAC, ALAC
	Size     int64  // bytes on disk
}

// Year is the leading year of Date, or 0.
func (t *Track) Year() int {
	y, _ := strconv.Atoi(t.Date[:min(len(t.Date), 4)])
	return y
}

// format tells how to read one kind of music file. dhowden/tag is tried
// first for tags and art; fallback and art take over when it fails.
type format struct {
	info     func(path string) (*AudioInfo, error)
	fallback func(path string) (*Track, error)
	art      func(path string) (data []byte, mimeType string)
}

var formats = map[string]format{
	".mp3":  {info: audioInfoMP3, fallback: readID3v2, art: id3Picture},
	".flac": {info: audioInfoFLAC, fallback: readTaglib},
	".opus": {info: audioInfoOgg, fallback: readTaglib},
	".ogg":  {info: audioInfoOgg, fallback: readTaglib},
	".oga":  {info: audioInfoOgg, fallback: readTaglib},
	".m4a":  {info: audioInfoM4A, fallback: readTaglib},
	".mp4":  {info: audioInfoM4A, fallback: readTaglib},
}

func formatOf(path string) (format, bool) {
	f, ok := formats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// IsMusicFile reports whether path has a supported extension.
func IsMusicFile(path string) bool {
	_, ok := formatOf(path)
	return ok
}

// parseNumberPair parses "5" or "5/10".
func parseNumberPair(s string) (num, total int) {
	n, t, _ := strings.Cut(s, "/")
	num, _ = strconv.Atoi(strings.TrimSpace(n))
	total, _ = strconv.Atoi(strings.TrimSpace(t))
	return num, total
}
