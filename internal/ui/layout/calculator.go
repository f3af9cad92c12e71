// Package layout provides pure functions for sheet dimension calculations.
//
// The scroll engine works in integer units. A terminal row is UnitsPerRow
// units tall and a column is half as wide, so a square photo of N columns
// spans N/2 rows.
package layout

import "github.com/llehouerou/coverscroll/internal/scroller"

// MinSheetWidth is the narrowest single-panel sheet, in columns.
const MinSheetWidth = 20

// Grid converts between terminal cells and engine units.
type Grid struct {
	UnitsPerRow int
}

// ColUnits returns the width of one column in units.
func (g Grid) ColUnits() int {
	return max(g.UnitsPerRow/2, 1)
}

// Rows converts a row count to units.
func (g Grid) Rows(rows int) int {
	return rows * g.UnitsPerRow
}

// Cols converts a column count to units.
func (g Grid) Cols(cols int) int {
	return cols * g.ColUnits()
}

// RowAt returns the row containing unit y. Negative units map to negative rows.
func (g Grid) RowAt(y int) int {
	return floorDiv(y, g.UnitsPerRow)
}

// RowCenter returns the unit at the vertical center of row.
func (g Grid) RowCenter(row int) int {
	return row*g.UnitsPerRow + g.UnitsPerRow/2
}

// ColAt returns the column containing unit x.
func (g Grid) ColAt(x int) int {
	return floorDiv(x, g.ColUnits())
}

// Pointer maps a mouse cell to the unit coordinates of its center.
func (g Grid) Pointer(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * float64(g.ColUnits())
	y = (float64(row) + 0.5) * float64(g.UnitsPerRow)
	return x, y
}

// RoundRows converts units to the nearest whole row count.
func (g Grid) RoundRows(units int) int {
	return floorDiv(units+g.UnitsPerRow/2, g.UnitsPerRow)
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Sheet describes where the sheet sits in the terminal, in columns.
type Sheet struct {
	Panel scroller.PanelMode
	// Left is the first terminal column of the sheet.
	Left  int
	Width int
	// PhotoCols is the photo width. The photo is square: PhotoCols/2 rows.
	PhotoCols int
	// ListLeft is the first column of the track list, relative to Left.
	ListLeft  int
	ListWidth int
}

// PhotoRows returns the photo height in rows.
func (s Sheet) PhotoRows() int {
	return s.PhotoCols / 2
}

// SingleSheet centers a sheet with the photo above the list. The sheet is
// never wider than the terminal or narrower than MinSheetWidth, and at most
// as wide as the terminal is tall so the square photo leaves room for the list.
func SingleSheet(cols, rows int) Sheet {
	w := min(cols, max(rows, MinSheetWidth))
	if w > 1 {
		w -= w % 2
	}
	w = max(w, 0)
	return Sheet{
		Panel:     scroller.SinglePanel,
		Left:      max((cols-w)/2, 0),
		Width:     w,
		PhotoCols: w,
		ListLeft:  0,
		ListWidth: w,
	}
}

// TwoPanelSheet spans the terminal with the photo on the left and the list
// on the right, separated by one column.
func TwoPanelSheet(cols, rows int) Sheet {
	photo := min(cols/2, rows*2)
	if photo > 1 {
		photo -= photo % 2
	}
	photo = max(photo, 0)
	list := max(cols-photo-1, 0)
	return Sheet{
		Panel:     scroller.TwoPanel,
		Left:      0,
		Width:     cols,
		PhotoCols: photo,
		ListLeft:  photo + 1,
		ListWidth: list,
	}
}

// ForPanel picks the sheet for the given panel mode.
func ForPanel(panel scroller.PanelMode, cols, rows int) Sheet {
	if panel == scroller.TwoPanel {
		return TwoPanelSheet(cols, rows)
	}
	return SingleSheet(cols, rows)
}

// HeaderWidth returns the header container width in units, which is also
// the tallest the square photo can grow.
func (g Grid) HeaderWidth(s Sheet) int {
	return s.PhotoRows() * g.UnitsPerRow
}

// TitleGeometry measures the title for a header collapsed to minHeader
// units. The full-size title is one row tall; collapsed, it sits centered
// in the header, two columns in, at three quarters scale.
func (g Grid) TitleGeometry(s Sheet, minHeader int) scroller.TitleGeometry {
	collapsed := g.UnitsPerRow * 3 / 4
	header := scroller.Rect{W: g.HeaderWidth(s), H: minHeader}
	placeholder := scroller.Rect{
		X: g.Cols(2),
		Y: (minHeader - collapsed) / 2,
		W: max(g.Cols(s.PhotoCols-4), 0),
		H: collapsed,
	}
	return scroller.TitleGeometry{
		Collapsed:   scroller.MeasureCollapsedTitle(header, placeholder, g.UnitsPerRow),
		MaxMargin:   g.UnitsPerRow,
		MaxTextSize: g.UnitsPerRow,
	}
}

// TransparentStart returns the resting spacer height in units. rows <= 0
// selects a third of the terminal height.
func (g Grid) TransparentStart(rows, termRows int) int {
	if rows <= 0 {
		rows = termRows / 3
	}
	return g.Rows(min(rows, termRows))
}

// LeftoverSpace returns the padding the list needs so the sheet always
// reaches the bottom of the viewport, in units.
func LeftoverSpace(panel scroller.PanelMode, viewport, minHeader, content int) int {
	if panel == scroller.TwoPanel {
		return max(viewport-content, 0)
	}
	return max(viewport-minHeader-content, 0)
}
