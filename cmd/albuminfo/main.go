// Debug program that prints what the sheet would show for an album directory.
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/coverscroll/internal/tags"
	"github.com/llehouerou/coverscroll/internal/ui/cover"
	"github.com/llehouerou/coverscroll/internal/ui/render"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <album-dir>", filepath.Base(os.Args[0]))
	}
	dir := os.Args[1]

	album, err := tags.LoadAlbum(dir)
	if err != nil {
		log.Fatalf("Failed to load album: %v", err)
	}

	log.Printf("Album: %s - %s (%d)", album.Artist, album.Title, album.Year)
	log.Printf("%d tracks, %s, %s",
		len(album.Tracks), render.Duration(album.Duration()), humanize.Bytes(uint64(album.Size()))) //nolint:gosec // sizes are non-negative

	for _, t := range album.Tracks {
		log.Printf("  %d.%02d %s [%s %s]", t.DiscNumber, t.TrackNumber, t.Title, t.Format, render.Duration(t.Duration))
		info, err := tags.ReadAudioInfo(t.Path)
		if err != nil {
			log.Printf("    stream: %v", err)
			continue
		}
		log.Printf("    stream: %s %d Hz %s", info.Format, info.SampleRate, render.Duration(info.Duration))
	}

	img, err := cover.Decode(album.Cover)
	switch {
	case errors.Is(err, cover.ErrNoCover):
		log.Println("No cover art, the header shows a placeholder")
	case err != nil:
		log.Printf("Warning: cover from %s does not decode: %v", album.Cover.Source, err)
	default:
		b := img.Bounds()
		log.Printf("Cover: %dx%d %s from %s (%s)",
			b.Dx(), b.Dy(), album.Cover.MIMEType, album.Cover.Source, humanize.Bytes(uint64(len(album.Cover.Data))))
	}
}
