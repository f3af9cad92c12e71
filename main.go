package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/coverscroll/internal/app"
	"github.com/llehouerou/coverscroll/internal/config"
	"github.com/llehouerou/coverscroll/internal/errmsg"
	"github.com/llehouerou/coverscroll/internal/state"
	"github.com/llehouerou/coverscroll/internal/tags"
	"github.com/llehouerou/coverscroll/internal/ui/cover"
	"github.com/llehouerou/coverscroll/internal/ui/styles"
)

const recentLimit = 20

// placeholderColor fills the header of an album without cover art.
var placeholderColor = color.RGBA{R: 0x3a, G: 0x3a, B: 0x4a, A: 0xff}

func main() {
	debug := flag.Bool("debug", false, "write a debug log to the XDG state directory")
	twoPanel := flag.Bool("two-panel", false, "show the photo beside the track list")
	openSquare := flag.Bool("open-square", false, "open with the full square photo")
	recent := flag.Bool("recent", false, "list recently opened albums and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: coverscroll [flags] [album-dir]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	closeLog, err := setupLogging(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLogOpen, err))
		os.Exit(1)
	}
	defer closeLog()

	if err := run(flag.Arg(0), *twoPanel, *openSquare, *recent); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1) //nolint:gocritic // closeLog already ran
	}
}

func setupLogging(enabled bool) (func(), error) {
	if !enabled {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	path, err := xdg.StateFile(filepath.Join("coverscroll", "debug.log"))
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}

func run(dir string, twoPanel, openSquare, listRecent bool) error {
	cfg, err := config.Load()
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}

	stateMgr, err := state.Open()
	if err != nil {
		return errmsg.Wrap(errmsg.OpStateOpen, err)
	}
	defer stateMgr.Close()

	if listRecent {
		return printRecent(os.Stdout, stateMgr)
	}

	// Determine album: argument > last opened > config default > cwd
	if dir == "" {
		dir = startDir(stateMgr, cfg.DefaultFolder)
	}
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return errmsg.Wrap(errmsg.OpInitialize, err)
		}
	}

	album, err := tags.LoadAlbum(dir)
	if err != nil {
		return errmsg.WrapWith(errmsg.OpAlbumLoad, dir, err)
	}
	slog.Debug("album loaded", "dir", album.Dir, "title", album.Title, "tracks", len(album.Tracks))

	photo := loadPhoto(album)

	sc := cfg.GetScrollerConfig()
	if twoPanel {
		sc.Layout = config.LayoutTwoPanel
	}
	if openSquare {
		sc.HeaderMode = config.HeaderOpenSquare
	}
	theme := cfg.GetThemeConfig()
	styles.T().Configure(theme.Accent, theme.Backdrop)

	stateMgr.SaveLastAlbum(state.LastAlbum{Dir: album.Dir, Title: album.Title})

	m := app.New(album, photo, app.Options{Scroller: sc, Theme: theme})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	return nil
}

// startDir is the last opened album if it still exists, else the
// configured default folder.
func startDir(stateMgr state.Interface, defaultFolder string) string {
	last, err := stateMgr.GetLastAlbum()
	if err != nil {
		slog.Debug(errmsg.Format(errmsg.OpStateLoad, err))
	}
	if last != nil {
		if _, statErr := os.Stat(last.Dir); statErr == nil {
			return last.Dir
		}
	}
	return defaultFolder
}

// loadPhoto decodes the album cover. A missing or broken cover yields a
// placeholder so the sheet still opens.
func loadPhoto(album *tags.Album) *cover.Photo {
	cache, err := cover.NewCache("")
	if err != nil {
		slog.Debug(errmsg.Format(errmsg.OpCoverCache, err))
	} else {
		go func() {
			if err := cache.PruneDue(cover.DefaultMaxAge); err != nil {
				slog.Debug(errmsg.Format(errmsg.OpCoverCache, err))
			}
		}()
	}
	img, err := cover.Decode(album.Cover)
	if err != nil {
		if !errors.Is(err, cover.ErrNoCover) {
			slog.Debug(errmsg.FormatWith(errmsg.OpCoverLoad, album.Cover.Source, err))
		}
		return cover.New(nil, "", placeholderColor, cache)
	}
	return cover.New(img, album.Cover.Source, placeholderColor, cache)
}

func printRecent(w io.Writer, stateMgr state.Interface) error {
	albums, err := stateMgr.RecentAlbums(recentLimit)
	if err != nil {
		return errmsg.Wrap(errmsg.OpRecentsLoad, err)
	}
	if len(albums) == 0 {
		fmt.Fprintln(w, "No albums opened yet.")
		return nil
	}
	for _, a := range albums {
		title := a.Title
		if title == "" {
			title = filepath.Base(a.Dir)
		}
		fmt.Fprintf(w, "%-40s  %s  (%s, %s)\n",
			title, a.Dir, humanize.Time(a.LastOpened), pluralOpens(a.OpenCount))
	}
	return nil
}

func pluralOpens(n int) string {
	if n == 1 {
		return "opened once"
	}
	return fmt.Sprintf("opened %d times", n)
}
