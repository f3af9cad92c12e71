// internal/app/sheet.go
package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/coverscroll/internal/anim"
	"github.com/llehouerou/coverscroll/internal/config"
	"github.com/llehouerou/coverscroll/internal/edgeglow"
	"github.com/llehouerou/coverscroll/internal/scroller"
	"github.com/llehouerou/coverscroll/internal/tags"
	"github.com/llehouerou/coverscroll/internal/ui/cover"
	"github.com/llehouerou/coverscroll/internal/ui/layout"
	"github.com/llehouerou/coverscroll/internal/ui/list"
	"github.com/llehouerou/coverscroll/internal/ui/styles"
	"github.com/llehouerou/coverscroll/internal/velocity"
)

// sheet owns the scroll engine and plays every collaborator role the
// engine needs from its host: it records region sizes and visuals for the
// view, schedules frames and receives listener events. It is created on
// the first window size and shared by every copy of the Model.
type sheet struct {
	grid   layout.Grid
	geo    layout.Sheet
	cfg    config.ScrollerConfig
	engine *scroller.Engine
	list   *list.Model
	photo  *cover.Photo
	anim   *anim.Animator
	glow   *edgeglow.Glow
	vel    *velocity.Tracker
	now    func() time.Time

	minHeader int
	viewport  int
	cols      int
	gradient  bool

	// Written by the engine.
	transparent int
	header      int
	visuals     scroller.Visuals
	scrim       float64
	fullscreen  bool
	offBottom   bool
	exiting     bool

	frameRequested bool
	tickPending    bool
	press          pointer
}

// pointer is the cell a mouse press started on.
type pointer struct {
	down     bool
	col, row int
}

var (
	_ scroller.Layout     = (*sheet)(nil)
	_ scroller.Surface    = (*sheet)(nil)
	_ scroller.HeaderView = (*sheet)(nil)
	_ scroller.Listener   = (*sheet)(nil)
)

func newSheet(album *tags.Album, photo *cover.Photo, opts Options, cols, rows int) *sheet {
	sc := opts.Scroller
	s := &sheet{
		grid:  layout.Grid{UnitsPerRow: sc.UnitsPerRow},
		cfg:   sc,
		photo: photo,
		now:   opts.Now,
		vel:   &velocity.Tracker{},
	}
	if s.now == nil {
		s.now = time.Now
	}

	panel := scroller.SinglePanel
	if sc.Layout == config.LayoutTwoPanel {
		panel = scroller.TwoPanel
	}
	mode := scroller.IntermediateMode
	if sc.HeaderMode == config.HeaderOpenSquare {
		mode = scroller.OpenSquareMode
	}

	s.geo = layout.ForPanel(panel, cols, rows)
	s.cols = cols
	s.viewport = s.grid.Rows(rows)
	s.minHeader = s.grid.Rows(sc.MinHeaderRows)
	photo.SetSize(s.geo.PhotoCols)

	s.list = list.New(album, sc.UnitsPerRow, s.listVisible)
	s.list.SetSize(s.geo.ListWidth, rows)
	s.anim = anim.New(s.now)
	s.glow = edgeglow.New(sc.RefreshRate)
	s.gradient = !opts.Theme.HideGradient

	s.engine = scroller.New(scroller.Config{
		MinHeader:        s.minHeader,
		TransparentStart: s.grid.TransparentStart(sc.TransparentRows, rows),
		TouchSlop:        sc.TouchSlop,
		MinFlingVelocity: sc.MinFlingVelocity,
		MaxFlingVelocity: sc.MaxFlingVelocity,
		Density:          sc.Density,
		HeaderMode:       mode,
		Panel:            panel,
		Tint:             headerTint(opts.Theme.Tint, photo),
		ExitDuration:     sc.ExitDuration(),
		HeaderDuration:   sc.HeaderDuration(),
		EntranceDuration: sc.EntranceDuration(),
	}, scroller.Deps{
		Layout:   s,
		Content:  s.list,
		Surface:  s,
		Animator: s.anim,
		Image:    photo,
		Header:   s,
		Edge:     s.glow,
		Velocity: s.vel,
	}, s)
	s.engine.SetUseGradient(s.gradient)

	s.layout()
	return s
}

// headerTint is the configured tint. Without one the placeholder color
// stands in until the cover's average color arrives in a TintMsg.
func headerTint(hex string, photo *cover.Photo) color.RGBA {
	if hex != "" {
		return styles.ToRGBA(lipgloss.Color(hex))
	}
	return photo.PlaceholderColor()
}

// toggleGradient shows or hides the shade under the title.
func (s *sheet) toggleGradient() {
	s.gradient = !s.gradient
	s.engine.SetUseGradient(s.gradient)
}

// layout pushes the current viewport to the engine and list.
func (s *sheet) layout() {
	leftover := layout.LeftoverSpace(s.geo.Panel, s.viewport, s.minHeader, s.list.RowsHeight())
	s.list.SetLeftover(leftover)
	s.engine.SetLeftoverSpace(leftover)
	s.engine.OnLayout(s.grid.HeaderWidth(s.geo), s.viewport, s.grid.TitleGeometry(s.geo, s.minHeader))
	s.list.Clamp()
}

// resize keeps the sheet width chosen at startup, since the header limits
// are fixed on first layout, and recenters it.
func (s *sheet) resize(cols, rows int) {
	s.cols = cols
	s.viewport = s.grid.Rows(rows)
	if s.geo.Panel == scroller.SinglePanel {
		s.geo.Left = max((cols-s.geo.Width)/2, 0)
	}
	s.list.SetSize(s.geo.ListWidth, rows)
	s.layout()
}

// listVisible is how much of the list is on screen, in units. It reads the
// engine's header height, which changes in the middle of a scroll step
// before the header size is published.
func (s *sheet) listVisible() int {
	if s.geo.Panel == scroller.TwoPanel {
		return s.viewport
	}
	header := s.header
	if s.engine != nil {
		header = s.engine.HeaderHeight()
	}
	return max(s.viewport-header, 0)
}

// SetSize implements scroller.Layout.
func (s *sheet) SetSize(r scroller.Region, size int) {
	switch r {
	case scroller.RegionTransparent:
		s.transparent = size
	case scroller.RegionHeader:
		s.header = size
	}
}

// RequestFrame implements scroller.Surface.
func (s *sheet) RequestFrame() {
	s.frameRequested = true
}

// Now implements scroller.Surface.
func (s *sheet) Now() time.Time {
	return s.now()
}

// RefreshRate implements scroller.Surface.
func (s *sheet) RefreshRate() float64 {
	return float64(s.cfg.RefreshRate)
}

// SetVisuals implements scroller.HeaderView.
func (s *sheet) SetVisuals(v scroller.Visuals) {
	s.visuals = v
}

// OnScrolledOffBottom implements scroller.Listener.
func (s *sheet) OnScrolledOffBottom() {
	slog.Debug("sheet scrolled off bottom")
	s.offBottom = true
}

// OnStartScrollOffBottom implements scroller.Listener.
func (s *sheet) OnStartScrollOffBottom() {
	slog.Debug("sheet exit started", "scroll", s.engine.Scroll())
	s.exiting = true
}

// OnEnterFullscreen implements scroller.Listener.
func (s *sheet) OnEnterFullscreen() {
	slog.Debug("sheet entered fullscreen")
	s.fullscreen = true
}

// OnExitFullscreen implements scroller.Listener.
func (s *sheet) OnExitFullscreen() {
	slog.Debug("sheet left fullscreen")
	s.fullscreen = false
}

// OnTransparentHeightChange implements scroller.Listener.
func (s *sheet) OnTransparentHeightChange(ratio float64) {
	s.scrim = ratio
}

// frame advances animations, the edge glow and the engine by one frame.
// It reports whether another frame is needed.
func (s *sheet) frame() bool {
	s.glow.Step()
	s.anim.Tick(s.now())
	if s.frameRequested {
		s.frameRequested = false
		s.engine.OnFrame()
	}
	return s.busy()
}

// busy reports whether anything is still moving.
func (s *sheet) busy() bool {
	return s.frameRequested || s.anim.Running() || !s.glow.IsFinished()
}

// pointerUnits maps a terminal cell to engine coordinates. The engine's
// x axis starts at the left edge of the sheet.
func (s *sheet) pointerUnits(col, row int) (x, y float64) {
	return s.grid.Pointer(col-s.geo.Left, row)
}

// hit names what lies under a terminal cell.
type hit int

const (
	hitOutside hit = iota
	hitTransparent
	hitHeader
	hitList
)

func (s *sheet) hitTest(col, row int) hit {
	y := s.grid.RowCenter(row)
	x := col - s.geo.Left
	if x < 0 || x >= s.geo.Width {
		if y < s.transparent {
			return hitTransparent
		}
		return hitOutside
	}
	switch {
	case y < s.transparent:
		return hitTransparent
	case s.geo.Panel == scroller.TwoPanel && x < s.geo.PhotoCols:
		if y < s.transparent+s.header {
			return hitHeader
		}
		return hitOutside
	case s.geo.Panel == scroller.TwoPanel:
		return hitList
	case y < s.transparent+s.header:
		return hitHeader
	default:
		return hitList
	}
}
