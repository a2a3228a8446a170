package ui

import (
	"geopicker/internal/geo"
	"geopicker/internal/render"

	"github.com/gdamore/tcell/v2"
)

// ListView displays a scrollable list of places
type ListView struct {
	places        []geo.Place
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewListView creates a new place list view
func NewListView(places []geo.Place, x, y, width, height int) *ListView {
	l := &ListView{places: places}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// Len returns the number of places listed
func (l *ListView) Len() int {
	return len(l.places)
}

// SelectNext moves selection down
func (l *ListView) SelectNext() {
	if l.selectedIndex < len(l.places)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves selection up
func (l *ListView) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll adjusts scroll offset to keep selected item visible
func (l *ListView) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// GetSelected returns the highlighted place
func (l *ListView) GetSelected() (geo.Place, bool) {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.places) {
		return l.places[l.selectedIndex], true
	}
	return geo.Place{}, false
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	clearPanel(screen, l.x, l.y, l.width, l.height)
	drawBorder(screen, l.x, l.y, l.width, l.height, "Places")

	if len(l.places) == 0 {
		drawClipped(screen, l.x+1, l.y+1, l.width-2, "no places loaded", render.StyleLabel)
		return
	}

	visibleCount := min(l.maxVisible, len(l.places)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := l.scrollOffset + i

		style := render.StyleListItem
		if index == l.selectedIndex {
			style = render.StyleListSelected
		}

		row := []rune(l.places[index].Name)
		for len(row) < l.width-2 {
			row = append(row, ' ')
		}
		drawClipped(screen, l.x+1, l.y+i+1, l.width-2, string(row), style)
	}

	if len(l.places) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = max(height-2, 1)
	l.adjustScroll()
}

// clearPanel blanks the inside of a panel so it is opaque over the map
func clearPanel(screen tcell.Screen, x, y, width, height int) {
	for row := y + 1; row < y+height-1; row++ {
		for col := x + 1; col < x+width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

// drawClipped writes text from (x, y), cut to width cells
func drawClipped(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

// drawBorder draws a box with a centered title
func drawBorder(screen tcell.Screen, x, y, width, height int, title string) {
	style := render.StyleLabel

	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+width-1, y, '┐', nil, style)
	screen.SetContent(x, y+height-1, '└', nil, style)
	screen.SetContent(x+width-1, y+height-1, '┘', nil, style)

	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, '─', nil, style)
		screen.SetContent(x+i, y+height-1, '─', nil, style)
	}

	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, '│', nil, style)
		screen.SetContent(x+width-1, y+i, '│', nil, style)
	}

	if title != "" {
		drawClipped(screen, x+(width-len(title))/2, y, width-2, title, style)
	}
}
