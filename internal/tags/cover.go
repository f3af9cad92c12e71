package tags

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// MIME types of cover images.
const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// Folder image names tried, in order, with each extension in folderArtExts.
var (
	folderArtNames = []string{"cover", "folder", "album", "front", "artwork"}
	folderArtExts  = []string{".jpg", ".jpeg", ".png"}
)

// Cover is album cover image data.
type Cover struct {
	Data     []byte
	MIMEType string
	// Source is the file the image was read from.
	Source string
}

// Empty reports whether no cover was found.
func (c Cover) Empty() bool { return len(c.Data) == 0 }

// FindCover returns the first embedded picture among trackPaths, else a
// cover image file in dir. An album without a cover yields an empty Cover
// and no error.
func FindCover(dir string, trackPaths []string) (Cover, error) {
	for _, p := range trackPaths {
		if data, mimeType := embeddedArt(p); len(data) > 0 {
			return Cover{Data: data, MIMEType: mimeType, Source: p}, nil
		}
	}
	return folderArt(dir)
}

func embeddedArt(path string) (data []byte, mimeType string) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if ft, ok := formatOf(path); ok && ft.art != nil {
			return ft.art(path)
		}
		return nil, ""
	}
	if pic := m.Picture(); pic != nil {
		return pic.Data, pic.MIMEType
	}
	return nil, ""
}

func folderArt(dir string) (Cover, error) {
	for _, name := range folderArtNames {
		for _, ext := range folderArtExts {
			for _, file := range []string{name + ext, strings.ToUpper(name + ext)} {
				p := filepath.Join(dir, file)
				data, err := os.ReadFile(p)
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				if err != nil {
					return Cover{}, err
				}
				return Cover{Data: data, MIMEType: imageMIME(ext), Source: p}, nil
			}
		}
	}
	return Cover{}, nil
}

func imageMIME(ext string) string {
	if ext == ".png" {
		return mimePNG
	}
	return mimeJPEG
}
