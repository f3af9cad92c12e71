// Package list provides the album track list shown below the header.
//
// The list scrolls in engine units, UnitsPerRow per terminal row, and
// implements scroller.Content so the scroll engine can drive it directly.
package list

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/coverscroll/internal/scroller"
	"github.com/llehouerou/coverscroll/internal/tags"
	"github.com/llehouerou/coverscroll/internal/ui"
	"github.com/llehouerou/coverscroll/internal/ui/render"
	"github.com/llehouerou/coverscroll/internal/ui/styles"
)

var _ scroller.Content = (*Model)(nil)

type rowKind int

const (
	rowInfo rowKind = iota
	rowBlank
	rowDisc
	rowTrack
	rowFooter
)

type row struct {
	kind  rowKind
	track int // index into album.Tracks for rowTrack
	disc  int
}

// Model is the track list.
type Model struct {
	ui.Base
	unitsPerRow int
	album       *tags.Album
	rows        []row

	offset   int
	leftover int
	// visible returns how much of the list is on screen, in units.
	visible func() int
}

// New builds the list rows for album. visible reports the on-screen list
// height in units and bounds the scroll offset.
func New(album *tags.Album, unitsPerRow int, visible func() int) *Model {
	m := &Model{
		unitsPerRow: max(unitsPerRow, 1),
		album:       album,
		visible:     visible,
	}
	m.rows = buildRows(album)
	return m
}

func buildRows(album *tags.Album) []row {
	rows := []row{{kind: rowInfo}, {kind: rowBlank}}

	multiDisc := false
	for _, t := range album.Tracks {
		if t.DiscNumber > 1 {
			multiDisc = true
			break
		}
	}

	disc := -1
	for i, t := range album.Tracks {
		if multiDisc && t.DiscNumber != disc {
			if disc != -1 {
				rows = append(rows, row{kind: rowBlank})
			}
			disc = t.DiscNumber
			rows = append(rows, row{kind: rowDisc, disc: max(disc, 1)})
		}
		rows = append(rows, row{kind: rowTrack, track: i})
	}
	return append(rows, row{kind: rowBlank}, row{kind: rowFooter})
}

// Title returns the album title.
func (m *Model) Title() string {
	return m.album.Title
}

// Len returns the number of rows, not counting leftover padding.
func (m *Model) Len() int {
	return len(m.rows)
}

// RowsHeight is the height of the real rows in units.
func (m *Model) RowsHeight() int {
	return len(m.rows) * m.unitsPerRow
}

// SetLeftover sets the padding below the last row, in units.
func (m *Model) SetLeftover(units int) {
	m.leftover = max(units, 0)
}

// IntrinsicHeight implements scroller.Content.
func (m *Model) IntrinsicHeight() int {
	return m.RowsHeight() + m.leftover
}

// Offset implements scroller.Content.
func (m *Model) Offset() int {
	return m.offset
}

// MaxOffset is the furthest the list scrolls. Leftover padding is never
// scrolled into view.
func (m *Model) MaxOffset() int {
	visible := 0
	if m.visible != nil {
		visible = m.visible()
	}
	return max(m.RowsHeight()-visible, 0)
}

// ScrollBy implements scroller.Content.
func (m *Model) ScrollBy(delta int) {
	m.offset = min(max(m.offset+delta, 0), m.MaxOffset())
}

// Clamp pulls the offset back within MaxOffset, for when the visible
// height grew.
func (m *Model) Clamp() {
	m.ScrollBy(0)
}

// Line renders row i at the list width. Rows past the end render as blank
// sheet. shadow darkens the row background.
func (m *Model) Line(i int, shadow bool) string {
	s := styles.T().S()
	bg := func(st lipgloss.Style) lipgloss.Style {
		if shadow {
			return st.Background(styles.T().BgShadow)
		}
		return st
	}
	fill := bg(s.Base)
	width := m.Width()
	if i < 0 || i >= len(m.rows) {
		return fill.Render(render.Blank(width))
	}

	r := m.rows[i]
	switch r.kind {
	case rowInfo:
		var right []segment
		if m.album.Year > 0 {
			right = []segment{{strconv.Itoa(m.album.Year) + " ", bg(s.Muted)}}
		}
		return layoutLine(width, fill, []segment{{" " + m.album.Artist, bg(s.Muted)}}, right, 0)
	case rowDisc:
		return layoutLine(width, fill, []segment{{fmt.Sprintf(" Disc %d", r.disc), bg(s.Subtle)}}, nil, 0)
	case rowTrack:
		return m.trackLine(r.track, width, fill, bg)
	case rowFooter:
		return fill.Render(render.Center(render.Truncate(m.footer(), width), width))
	default:
		return fill.Render(render.Blank(width))
	}
}

func (m *Model) trackLine(idx, width int, fill lipgloss.Style, bg func(lipgloss.Style) lipgloss.Style) string {
	s := styles.T().S()
	t := m.album.Tracks[idx]

	num := t.TrackNumber
	if num <= 0 {
		num = idx + 1
	}
	left := []segment{
		{fmt.Sprintf(" %2d  ", num), bg(s.Number)},
		{t.Title, bg(s.Base)},
	}
	if t.Artist != "" && t.Artist != m.album.Artist {
		left = append(left, segment{" · " + t.Artist, bg(s.Muted)})
	}

	right := []segment{{render.Duration(t.Duration) + " ", bg(s.Muted)}}
	if width >= 40 && t.Size > 0 {
		right = append([]segment{{humanize.Bytes(uint64(t.Size)) + "  ", bg(s.Subtle)}}, right...) //nolint:gosec // file sizes are non-negative
	}
	return layoutLine(width, fill, left, right, 1)
}

func (m *Model) footer() string {
	n := len(m.album.Tracks)
	noun := "tracks"
	if n == 1 {
		noun = "track"
	}
	text := fmt.Sprintf("%d %s · %s", n, noun, render.Duration(m.album.Duration()))
	if size := m.album.Size(); size > 0 {
		text += " · " + humanize.Bytes(uint64(size)) //nolint:gosec // file sizes are non-negative
	}
	return text
}

type segment struct {
	text  string
	style lipgloss.Style
}

// layoutLine places left segments at the start and right segments at the
// end of a width-wide line. The flex segment of left is truncated to make
// room; segments after it are dropped if they still do not fit.
func layoutLine(width int, fill lipgloss.Style, left, right []segment, flex int) string {
	rightW := 0
	for _, seg := range right {
		rightW += lipgloss.Width(seg.text)
	}
	if rightW >= width {
		right, rightW = nil, 0
	}

	fixed := 0
	for i, seg := range left {
		if i != flex {
			fixed += lipgloss.Width(seg.text)
		}
	}
	avail := width - rightW - 1
	if fixed > avail && len(left) > flex+1 {
		left = left[:flex+1]
		fixed = 0
		for i, seg := range left {
			if i != flex {
				fixed += lipgloss.Width(seg.text)
			}
		}
	}
	if flex < len(left) {
		left[flex].text = render.Truncate(left[flex].text, max(avail-fixed, 0))
	}

	var out string
	used := 0
	for _, seg := range left {
		if used+lipgloss.Width(seg.text) > width {
			break
		}
		out += seg.style.Render(seg.text)
		used += lipgloss.Width(seg.text)
	}
	if used+rightW > width {
		right, rightW = nil, 0
	}
	if gap := width - used - rightW; gap > 0 {
		out += fill.Render(render.Blank(gap))
	}
	for _, seg := range right {
		out += seg.style.Render(seg.text)
	}
	return out
}
