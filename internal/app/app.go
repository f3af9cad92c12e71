// internal/app/app.go
package app

import (
	"image/color"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/coverscroll/internal/config"
	"github.com/llehouerou/coverscroll/internal/keymap"
	"github.com/llehouerou/coverscroll/internal/tags"
	"github.com/llehouerou/coverscroll/internal/ui/cover"
	"github.com/llehouerou/coverscroll/internal/ui/helpbindings"
)

// helpContexts are the binding groups listed in the help popup.
var helpContexts = []string{"global", "sheet"}

// Options configure the sheet.
type Options struct {
	Scroller config.ScrollerConfig
	Theme    config.ThemeConfig
	// Now is the clock used for gestures and animations. Defaults to time.Now.
	Now func() time.Time
}

// Model is the application state. The sheet is built on the first window
// size, since every dimension depends on the terminal.
type Model struct {
	Album *tags.Album
	Photo *cover.Photo

	opts  Options
	keys  *keymap.Resolver
	sheet *sheet
	// tint arrived before the sheet was built.
	tint *color.RGBA

	Help     *helpbindings.Model
	ShowHelp bool

	Width, Height int
	Quitting      bool
}

// New creates the application model for album.
func New(album *tags.Album, photo *cover.Photo, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	keys := keymap.NewResolver(keymap.Bindings)
	help := helpbindings.New(keys)
	help.SetContexts(helpContexts)
	return Model{
		Album: album,
		Photo: photo,
		opts:  opts,
		keys:  keys,
		Help:  &help,
	}
}

// Init implements tea.Model. Without a configured tint it starts
// averaging the cover colors for the header tint.
func (m Model) Init() tea.Cmd {
	if m.opts.Theme.Tint != "" || m.Photo == nil {
		return nil
	}
	return TintCmd(m.Photo)
}

// Fullscreen reports whether the sheet covers the whole terminal.
func (m Model) Fullscreen() bool {
	return m.sheet != nil && m.sheet.fullscreen
}

// Scroll returns the composite scroll position in engine units.
func (m Model) Scroll() int {
	if m.sheet == nil {
		return 0
	}
	return m.sheet.engine.Scroll()
}
